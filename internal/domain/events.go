package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type ContractEventKind string

const (
	EventTicketPurchased  ContractEventKind = "TicketPurchased"
	EventLotteryCompleted ContractEventKind = "LotteryCompleted"
	EventLotteryCreated   ContractEventKind = "LotteryCreated"
)

// ContractEvent flattens the lottery contract's logs. Fields that do not
// apply to Kind are left zero.
type ContractEvent struct {
	Kind         ContractEventKind
	LotteryID    uint64
	Buyer        common.Address
	TicketNumber uint64
	Amount       *big.Int
	Winner       common.Address
	PrizeAmount  *big.Int
	TicketPrice  *big.Int
	MaxTickets   uint64
	EndTime      time.Time
	TxHash       common.Hash
	BlockNumber  uint64
}
