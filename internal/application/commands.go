package application

import (
	"math/big"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
)

// BuyTicketsCommand buys Count tickets in LotteryID. A zero LotteryID targets
// the current lottery.
type BuyTicketsCommand struct {
	LotteryID uint64
	Count     uint64
}

func (c BuyTicketsCommand) Validate() error {
	if c.Count < 1 {
		return domain.ErrInvalidTicketCount
	}
	return nil
}

type CompleteLotteryCommand struct {
	LotteryID uint64
}

type CreateLotteryCommand struct {
	TicketPrice *big.Int
	MaxTickets  uint64
	Duration    time.Duration
}

func (c CreateLotteryCommand) DurationSeconds() *big.Int {
	return big.NewInt(int64(c.Duration / time.Second))
}
