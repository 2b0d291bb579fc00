package ports

import (
	"context"
	"math/big"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

type LotteryReader interface {
	TotalLotteries(ctx context.Context) (uint64, error)
	Lottery(ctx context.Context, id uint64) (domain.Lottery, error)
	UserTicketCount(ctx context.Context, lotteryID uint64, user common.Address) (uint64, error)
	UserWinnings(ctx context.Context, user common.Address) (*big.Int, error)
	CanCompleteLottery(ctx context.Context, id uint64) (bool, error)
	Owner(ctx context.Context) (common.Address, error)
	Paused(ctx context.Context) (bool, error)
}

type LotteryContract interface {
	LotteryReader
	Address() common.Address
	EstimateGas(ctx context.Context, call domain.ContractCall) (uint64, error)
	Submit(ctx context.Context, sender TxSender, call domain.ContractCall, opts domain.TxOptions) (domain.PendingTx, error)
	WaitMined(ctx context.Context, tx domain.PendingTx) (domain.Receipt, error)
	WatchEvents(ctx context.Context, sink chan<- domain.ContractEvent) (event.Subscription, error)
}
