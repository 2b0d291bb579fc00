package testchain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func (c *Chain) decode(data []byte) (*abi.Method, []any, error) {
	if len(data) < 4 {
		return nil, nil, errUnknownMethod
	}
	method, err := c.abi.MethodById(data[:4])
	if err != nil {
		return nil, nil, errUnknownMethod
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("unpack %s arguments: %w", method.Name, err)
	}
	return method, args, nil
}

func (c *Chain) call(_ common.Address, data []byte) ([]byte, error) {
	method, args, err := c.decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.failCalls[method.Name]; err != nil {
		return nil, err
	}

	switch method.Name {
	case "getTotalLotteries":
		return method.Outputs.Pack(big.NewInt(int64(len(c.lotteries))))
	case "getLottery":
		state, ok := c.lotteryLocked(args[0].(*big.Int).Uint64())
		if !ok {
			return nil, &revertError{reason: "Lottery does not exist"}
		}
		l := state.lottery
		var end int64
		if !l.EndTime.IsZero() {
			end = l.EndTime.Unix()
		}
		return method.Outputs.Pack(
			new(big.Int).SetUint64(l.ID),
			l.TicketPrice,
			new(big.Int).SetUint64(l.MaxTickets),
			big.NewInt(end),
			new(big.Int).SetUint64(l.TotalTickets),
			l.PrizePool,
			l.Winner,
			l.IsActive,
			l.IsCompleted,
		)
	case "getUserTicketCount":
		var count uint64
		if state, ok := c.lotteryLocked(args[0].(*big.Int).Uint64()); ok {
			count = state.tickets[args[1].(common.Address)]
		}
		return method.Outputs.Pack(new(big.Int).SetUint64(count))
	case "getUserWinnings":
		w := c.winnings[args[0].(common.Address)]
		if w == nil {
			w = new(big.Int)
		}
		return method.Outputs.Pack(w)
	case "canCompleteLottery":
		state, ok := c.lotteryLocked(args[0].(*big.Int).Uint64())
		return method.Outputs.Pack(ok && state.canComplete)
	case "owner":
		return method.Outputs.Pack(c.owner)
	case "paused":
		return method.Outputs.Pack(c.paused)
	default:
		return nil, &revertError{reason: method.Name + " is not a view"}
	}
}

func (c *Chain) estimate(data []byte) (uint64, error) {
	method, _, err := c.decode(data)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if reason, ok := c.failEstimates[method.Name]; ok {
		return 0, &revertError{reason: reason}
	}
	return c.gasEstimate, nil
}

// execute applies a transaction and records its receipt.
func (c *Chain) execute(from, to common.Address, value *big.Int, data []byte, hash common.Hash) (common.Hash, error) {
	if value == nil {
		value = new(big.Int)
	}

	var method *abi.Method
	var args []any
	if to == c.contract {
		var err error
		method, args, err = c.decode(data)
		if err != nil {
			return common.Hash{}, err
		}
	}

	c.mu.Lock()
	c.nonces[from]++
	c.block++
	c.sent = append(c.sent, hash)

	status := types.ReceiptStatusSuccessful
	var logs []*types.Log
	if method != nil {
		if c.revertOnChain[method.Name] {
			status = types.ReceiptStatusFailed
		} else {
			logs = c.applyLocked(from, value, method.Name, args)
		}
	}
	if status == types.ReceiptStatusSuccessful {
		balance := new(big.Int).Sub(c.balanceLocked(from), value)
		c.balances[from] = balance
	}

	for i, lg := range logs {
		lg.Address = c.contract
		lg.TxHash = hash
		lg.BlockNumber = c.block
		lg.Index = uint(i)
	}
	receiptLogs := make([]*types.Log, len(logs))
	copy(receiptLogs, logs)
	c.receipts[hash] = &types.Receipt{
		Type:              types.DynamicFeeTxType,
		Status:            status,
		CumulativeGasUsed: c.gasEstimate,
		Logs:              receiptLogs,
		TxHash:            hash,
		GasUsed:           c.gasEstimate,
		BlockNumber:       new(big.Int).SetUint64(c.block),
	}
	c.mu.Unlock()

	for _, lg := range logs {
		c.logFeed.Send(*lg)
	}

	return hash, nil
}

func (c *Chain) applyLocked(from common.Address, value *big.Int, method string, args []any) []*types.Log {
	switch method {
	case "buyTickets":
		state, ok := c.lotteryLocked(args[0].(*big.Int).Uint64())
		if !ok {
			return nil
		}
		count := args[1].(*big.Int).Uint64()
		if _, seen := state.tickets[from]; !seen {
			state.buyers = append(state.buyers, from)
		}
		state.tickets[from] += count
		state.lottery.TotalTickets += count
		state.lottery.PrizePool = new(big.Int).Add(state.lottery.PrizePool, value)
		return []*types.Log{c.eventLog(string(domain.EventTicketPurchased),
			[]common.Hash{uint256Topic(state.lottery.ID), addressTopic(from)},
			new(big.Int).SetUint64(state.lottery.TotalTickets), value)}
	case "withdrawWinnings":
		w := c.winnings[from]
		if w != nil {
			c.balances[from] = new(big.Int).Add(c.balanceLocked(from), w)
		}
		delete(c.winnings, from)
	case "completeLottery":
		state, ok := c.lotteryLocked(args[0].(*big.Int).Uint64())
		if !ok {
			return nil
		}
		state.lottery.IsActive = false
		state.lottery.IsCompleted = true
		if len(state.buyers) > 0 {
			state.lottery.Winner = state.buyers[0]
			prev := c.winnings[state.lottery.Winner]
			if prev == nil {
				prev = new(big.Int)
			}
			c.winnings[state.lottery.Winner] = new(big.Int).Add(prev, state.lottery.PrizePool)
		}
		return []*types.Log{c.eventLog(string(domain.EventLotteryCompleted),
			[]common.Hash{uint256Topic(state.lottery.ID), addressTopic(state.lottery.Winner)},
			state.lottery.PrizePool)}
	case "createLottery":
		price := args[0].(*big.Int)
		maxTickets := args[1].(*big.Int).Uint64()
		duration := args[2].(*big.Int).Int64()
		l := domain.Lottery{
			ID:          uint64(len(c.lotteries) + 1),
			TicketPrice: new(big.Int).Set(price),
			MaxTickets:  maxTickets,
			EndTime:     c.now().Add(time.Duration(duration) * time.Second).UTC().Truncate(time.Second),
			PrizePool:   new(big.Int),
			IsActive:    true,
		}
		c.lotteries = append(c.lotteries, &lotteryState{lottery: l, tickets: map[common.Address]uint64{}})
		return []*types.Log{c.eventLog(string(domain.EventLotteryCreated),
			[]common.Hash{uint256Topic(l.ID)},
			price, new(big.Int).SetUint64(maxTickets), big.NewInt(l.EndTime.Unix()))}
	case "pause":
		c.paused = true
	case "unpause":
		c.paused = false
	}
	return nil
}

func (c *Chain) eventLog(name string, indexed []common.Hash, data ...any) *types.Log {
	ev := c.abi.Events[name]
	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		panic(fmt.Sprintf("pack %s event: %v", name, err))
	}
	return &types.Log{
		Topics: append([]common.Hash{ev.ID}, indexed...),
		Data:   packed,
	}
}

func uint256Topic(v uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(v))
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}
