package lottery

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/rpcerr"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/inconshreveable/log15"
)

//go:embed lottery.abi.json
var abiJSON string

var (
	parsedABI, parseErr = abi.JSON(strings.NewReader(abiJSON))

	llog = log.New("module", "contract.lottery")
)

const defaultReceiptPollInterval = time.Second

// ABI returns the parsed lottery contract ABI.
func ABI() (abi.ABI, error) {
	return parsedABI, parseErr
}

// Backend is the subset of an ethclient the binding needs. Reads and gas
// estimation never involve the wallet.
type Backend interface {
	bind.ContractCaller
	bind.ContractFilterer
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Contract struct {
	address      common.Address
	abi          abi.ABI
	backend      Backend
	bound        *bind.BoundContract
	pollInterval time.Duration
}

type Option func(*Contract)

func WithReceiptPollInterval(d time.Duration) Option {
	return func(c *Contract) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

var _ ports.LotteryContract = (*Contract)(nil)

func New(address common.Address, backend Backend, opts ...Option) (*Contract, error) {
	if parseErr != nil {
		return nil, fmt.Errorf("parse lottery abi: %w", parseErr)
	}
	if backend == nil {
		return nil, errors.New("lottery contract backend is nil")
	}
	if address == (common.Address{}) {
		return nil, errors.New("lottery contract address is empty")
	}

	c := &Contract{
		address:      address,
		abi:          parsedABI,
		backend:      backend,
		pollInterval: defaultReceiptPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bound = bind.NewBoundContract(address, parsedABI, backend, nil, backend)

	return c, nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) TotalLotteries(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "getTotalLotteries")
	if err != nil {
		return 0, err
	}
	return uint64Output("getTotalLotteries", out[0])
}

func (c *Contract) Lottery(ctx context.Context, id uint64) (domain.Lottery, error) {
	out, err := c.call(ctx, "getLottery", new(big.Int).SetUint64(id))
	if err != nil {
		return domain.Lottery{}, err
	}

	lotteryID, err := uint64Output("getLottery.id", out[0])
	if err != nil {
		return domain.Lottery{}, err
	}
	maxTickets, err := uint64Output("getLottery.maxTickets", out[2])
	if err != nil {
		return domain.Lottery{}, err
	}
	endTime, err := uint64Output("getLottery.endTime", out[3])
	if err != nil {
		return domain.Lottery{}, err
	}
	totalTickets, err := uint64Output("getLottery.totalTickets", out[4])
	if err != nil {
		return domain.Lottery{}, err
	}

	lottery := domain.Lottery{
		ID:           lotteryID,
		TicketPrice:  *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		MaxTickets:   maxTickets,
		TotalTickets: totalTickets,
		PrizePool:    *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		Winner:       *abi.ConvertType(out[6], new(common.Address)).(*common.Address),
		IsActive:     *abi.ConvertType(out[7], new(bool)).(*bool),
		IsCompleted:  *abi.ConvertType(out[8], new(bool)).(*bool),
	}
	if endTime > 0 {
		lottery.EndTime = time.Unix(int64(endTime), 0).UTC()
	}

	return lottery, nil
}

func (c *Contract) UserTicketCount(ctx context.Context, lotteryID uint64, user common.Address) (uint64, error) {
	out, err := c.call(ctx, "getUserTicketCount", new(big.Int).SetUint64(lotteryID), user)
	if err != nil {
		return 0, err
	}
	return uint64Output("getUserTicketCount", out[0])
}

func (c *Contract) UserWinnings(ctx context.Context, user common.Address) (*big.Int, error) {
	out, err := c.call(ctx, "getUserWinnings", user)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (c *Contract) CanCompleteLottery(ctx context.Context, id uint64) (bool, error) {
	out, err := c.call(ctx, "canCompleteLottery", new(big.Int).SetUint64(id))
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *Contract) Owner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *Contract) Paused(ctx context.Context) (bool, error) {
	out, err := c.call(ctx, "paused")
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *Contract) EstimateGas(ctx context.Context, call domain.ContractCall) (uint64, error) {
	data, err := c.pack(call)
	if err != nil {
		return 0, err
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  call.From,
		To:    &c.address,
		Value: call.Value,
		Data:  data,
	})
	if err != nil {
		return 0, fmt.Errorf("estimate gas for %s: %w", call.Method, rpcerr.Classify(err))
	}

	return gas, nil
}

func (c *Contract) Submit(ctx context.Context, sender ports.TxSender, call domain.ContractCall, opts domain.TxOptions) (domain.PendingTx, error) {
	if sender == nil {
		return domain.PendingTx{}, fmt.Errorf("submit %s: %w", call.Method, domain.ErrNotConnected)
	}

	data, err := c.pack(call)
	if err != nil {
		return domain.PendingTx{}, err
	}

	hash, err := sender.SendTransaction(ctx, domain.TxRequest{
		From:      call.From,
		To:        c.address,
		Value:     call.Value,
		Data:      data,
		Gas:       opts.GasLimit,
		GasFeeCap: opts.GasFeeCap,
		GasTipCap: opts.GasTipCap,
	})
	if err != nil {
		return domain.PendingTx{}, fmt.Errorf("send %s: %w", call.Method, err)
	}
	llog.Info("transaction sent", "method", call.Method, "tx_hash", hash.Hex(), "account", call.From.Hex())

	return domain.PendingTx{
		Hash:     hash,
		From:     call.From,
		Method:   call.Method,
		Value:    call.Value,
		GasLimit: opts.GasLimit,
	}, nil
}

// WaitMined polls for the receipt of tx until it is available or ctx ends.
func (c *Contract) WaitMined(ctx context.Context, tx domain.PendingTx) (domain.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, tx.Hash)
		switch {
		case err == nil && receipt != nil:
			out := domain.Receipt{
				TxHash:  receipt.TxHash,
				GasUsed: receipt.GasUsed,
				Status:  receipt.Status,
			}
			if receipt.BlockNumber != nil {
				out.BlockNumber = receipt.BlockNumber.Uint64()
			}
			if receipt.Status == types.ReceiptStatusFailed {
				return out, fmt.Errorf("%s %s: %w", tx.Method, tx.Hash.Hex(), domain.ErrTransactionReverted)
			}
			llog.Debug("transaction mined", "method", tx.Method, "tx_hash", tx.Hash.Hex(), "block", out.BlockNumber)
			return out, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			llog.Debug("receipt retrieval failed", "tx_hash", tx.Hash.Hex(), "err", err)
		}

		select {
		case <-ctx.Done():
			return domain.Receipt{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Contract) pack(call domain.ContractCall) ([]byte, error) {
	data, err := c.abi.Pack(call.Method, call.Args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", call.Method, err)
	}
	return data, nil
}

func (c *Contract) call(ctx context.Context, method string, args ...any) ([]any, error) {
	var out []any
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%w: call %s: %w", domain.ErrReadFailure, method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: call %s: empty result", domain.ErrReadFailure, method)
	}
	return out, nil
}

func uint64Output(name string, v any) (uint64, error) {
	n := *abi.ConvertType(v, new(*big.Int)).(**big.Int)
	if n == nil || n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s out of range: %v", domain.ErrReadFailure, name, n)
	}
	return n.Uint64(), nil
}
