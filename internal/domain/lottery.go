package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Lottery struct {
	ID           uint64
	TicketPrice  *big.Int
	MaxTickets   uint64
	EndTime      time.Time
	TotalTickets uint64
	PrizePool    *big.Int
	Winner       common.Address
	IsActive     bool
	IsCompleted  bool
}

// Cost returns the wei value required to buy count tickets.
func (l Lottery) Cost(count uint64) *big.Int {
	price := l.TicketPrice
	if price == nil {
		price = new(big.Int)
	}
	return new(big.Int).Mul(price, new(big.Int).SetUint64(count))
}

func (l Lottery) RemainingTickets() uint64 {
	if l.TotalTickets >= l.MaxTickets {
		return 0
	}
	return l.MaxTickets - l.TotalTickets
}

func (l Lottery) HasWinner() bool {
	return l.Winner != (common.Address{})
}

func (l Lottery) Ended(now time.Time) bool {
	return !l.EndTime.IsZero() && !now.Before(l.EndTime)
}

func (l Lottery) Clone() Lottery {
	out := l
	out.TicketPrice = cloneBig(l.TicketPrice)
	out.PrizePool = cloneBig(l.PrizePool)
	return out
}

func (l Lottery) Equal(other Lottery) bool {
	return l.ID == other.ID &&
		bigEqual(l.TicketPrice, other.TicketPrice) &&
		l.MaxTickets == other.MaxTickets &&
		l.EndTime.Equal(other.EndTime) &&
		l.TotalTickets == other.TotalTickets &&
		bigEqual(l.PrizePool, other.PrizePool) &&
		l.Winner == other.Winner &&
		l.IsActive == other.IsActive &&
		l.IsCompleted == other.IsCompleted
}

// UserPosition is the connected account's stake in the current lottery. A
// position that is not Known must be rendered as unavailable, never as zero.
type UserPosition struct {
	Known       bool
	Account     common.Address
	LotteryID   uint64
	TicketCount uint64
	Winnings    *big.Int
}

func (p UserPosition) Matches(account common.Address, lotteryID uint64) bool {
	return p.Known && p.Account == account && p.LotteryID == lotteryID
}

type GlobalStatistics struct {
	LotteriesCompleted uint64
	Participants       uint64
	TotalPrizePool     *big.Int
	ActiveDraws        uint64
}

type UserStatistics struct {
	Account          common.Address
	Participations   uint64
	TicketsPurchased uint64
	Wins             uint64
	TotalWinnings    *big.Int
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func bigEqual(a, b *big.Int) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil:
		return b.Sign() == 0
	case b == nil:
		return a.Sign() == 0
	default:
		return a.Cmp(b) == 0
	}
}
