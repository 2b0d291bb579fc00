package lottery

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

type ticketPurchasedLog struct {
	LotteryId    *big.Int
	Buyer        common.Address
	TicketNumber *big.Int
	Amount       *big.Int
}

type lotteryCompletedLog struct {
	LotteryId   *big.Int
	Winner      common.Address
	PrizeAmount *big.Int
}

type lotteryCreatedLog struct {
	LotteryId   *big.Int
	TicketPrice *big.Int
	MaxTickets  *big.Int
	EndTime     *big.Int
}

// WatchEvents streams decoded TicketPurchased, LotteryCompleted and
// LotteryCreated logs into sink. The backend must support subscriptions.
func (c *Contract) WatchEvents(ctx context.Context, sink chan<- domain.ContractEvent) (event.Subscription, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics: [][]common.Hash{{
			c.abi.Events[string(domain.EventTicketPurchased)].ID,
			c.abi.Events[string(domain.EventLotteryCompleted)].ID,
			c.abi.Events[string(domain.EventLotteryCreated)].ID,
		}},
	}

	logs := make(chan types.Log, 16)
	sub, err := c.backend.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return nil, fmt.Errorf("subscribe lottery events: %w", err)
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case lg := <-logs:
				ev, err := c.DecodeEvent(lg)
				if err != nil {
					llog.Warn("skipping undecodable lottery log", "tx_hash", lg.TxHash.Hex(), "err", err)
					continue
				}
				select {
				case sink <- ev:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

func (c *Contract) DecodeEvent(lg types.Log) (domain.ContractEvent, error) {
	if len(lg.Topics) == 0 {
		return domain.ContractEvent{}, fmt.Errorf("decode lottery log: no topics")
	}

	base := domain.ContractEvent{TxHash: lg.TxHash, BlockNumber: lg.BlockNumber}

	switch lg.Topics[0] {
	case c.abi.Events[string(domain.EventTicketPurchased)].ID:
		var raw ticketPurchasedLog
		if err := c.bound.UnpackLog(&raw, string(domain.EventTicketPurchased), lg); err != nil {
			return domain.ContractEvent{}, fmt.Errorf("decode TicketPurchased: %w", err)
		}
		base.Kind = domain.EventTicketPurchased
		base.LotteryID = bigToUint64(raw.LotteryId)
		base.Buyer = raw.Buyer
		base.TicketNumber = bigToUint64(raw.TicketNumber)
		base.Amount = raw.Amount
	case c.abi.Events[string(domain.EventLotteryCompleted)].ID:
		var raw lotteryCompletedLog
		if err := c.bound.UnpackLog(&raw, string(domain.EventLotteryCompleted), lg); err != nil {
			return domain.ContractEvent{}, fmt.Errorf("decode LotteryCompleted: %w", err)
		}
		base.Kind = domain.EventLotteryCompleted
		base.LotteryID = bigToUint64(raw.LotteryId)
		base.Winner = raw.Winner
		base.PrizeAmount = raw.PrizeAmount
	case c.abi.Events[string(domain.EventLotteryCreated)].ID:
		var raw lotteryCreatedLog
		if err := c.bound.UnpackLog(&raw, string(domain.EventLotteryCreated), lg); err != nil {
			return domain.ContractEvent{}, fmt.Errorf("decode LotteryCreated: %w", err)
		}
		base.Kind = domain.EventLotteryCreated
		base.LotteryID = bigToUint64(raw.LotteryId)
		base.TicketPrice = raw.TicketPrice
		base.MaxTickets = bigToUint64(raw.MaxTickets)
		if end := bigToUint64(raw.EndTime); end > 0 {
			base.EndTime = time.Unix(int64(end), 0).UTC()
		}
	default:
		return domain.ContractEvent{}, fmt.Errorf("decode lottery log: unknown topic %s", lg.Topics[0].Hex())
	}

	return base, nil
}

func bigToUint64(v *big.Int) uint64 {
	if v == nil || v.Sign() < 0 || !v.IsUint64() {
		return 0
	}
	return v.Uint64()
}
