// Package testchain serves the lottery contract from memory over JSON-RPC so
// adapter and CLI tests can run against real go-ethereum clients.
package testchain

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	lotterycontract "github.com/bnema/nexus-lottery-cli/internal/adapters/contract/lottery"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
)

const DefaultGasEstimate = 100_000

type lotteryState struct {
	lottery     domain.Lottery
	tickets     map[common.Address]uint64
	buyers      []common.Address
	canComplete bool
}

type Chain struct {
	mu sync.Mutex

	chainID  *big.Int
	contract common.Address
	abi      abi.ABI
	now      func() time.Time

	owner       common.Address
	paused      bool
	lotteries   []*lotteryState
	winnings    map[common.Address]*big.Int
	balances    map[common.Address]*big.Int
	nonces      map[common.Address]uint64
	receipts    map[common.Hash]*types.Receipt
	sent        []common.Hash
	block       uint64
	gasEstimate uint64

	failCalls     map[string]error
	failEstimates map[string]string
	revertOnChain map[string]bool
	holdReceipts  bool

	logFeed event.Feed
	server  *rpc.Server
}

func New(chainID uint64, contract common.Address) (*Chain, error) {
	parsed, err := lotterycontract.ABI()
	if err != nil {
		return nil, err
	}

	c := &Chain{
		chainID:       new(big.Int).SetUint64(chainID),
		contract:      contract,
		abi:           parsed,
		now:           time.Now,
		winnings:      map[common.Address]*big.Int{},
		balances:      map[common.Address]*big.Int{},
		nonces:        map[common.Address]uint64{},
		receipts:      map[common.Hash]*types.Receipt{},
		gasEstimate:   DefaultGasEstimate,
		failCalls:     map[string]error{},
		failEstimates: map[string]string{},
		revertOnChain: map[string]bool{},
		block:         1,
	}

	c.server = rpc.NewServer()
	if err := c.server.RegisterName("eth", &ethAPI{chain: c}); err != nil {
		return nil, fmt.Errorf("register eth api: %w", err)
	}
	if err := c.server.RegisterName("net", &netAPI{chain: c}); err != nil {
		return nil, fmt.Errorf("register net api: %w", err)
	}

	return c, nil
}

func (c *Chain) ChainID() uint64 {
	return c.chainID.Uint64()
}

func (c *Chain) Contract() common.Address {
	return c.contract
}

func (c *Chain) Server() *rpc.Server {
	return c.server
}

// Handler exposes the chain over HTTP, for use with httptest.
func (c *Chain) Handler() http.Handler {
	return c.server
}

func (c *Chain) Client() *ethclient.Client {
	return ethclient.NewClient(rpc.DialInProc(c.server))
}

func (c *Chain) Close() {
	c.server.Stop()
}

func (c *Chain) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// AddLottery appends l and returns its id. l.ID is overwritten.
func (c *Chain) AddLottery(l domain.Lottery) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	l = l.Clone()
	l.ID = uint64(len(c.lotteries) + 1)
	if l.TicketPrice == nil {
		l.TicketPrice = new(big.Int)
	}
	if l.PrizePool == nil {
		l.PrizePool = new(big.Int)
	}
	c.lotteries = append(c.lotteries, &lotteryState{lottery: l, tickets: map[common.Address]uint64{}})
	return l.ID
}

func (c *Chain) Lottery(id uint64) (domain.Lottery, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.lotteryLocked(id)
	if !ok {
		return domain.Lottery{}, false
	}
	return state.lottery.Clone(), true
}

func (c *Chain) SetTickets(id uint64, user common.Address, count uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state, ok := c.lotteryLocked(id); ok {
		if _, seen := state.tickets[user]; !seen {
			state.buyers = append(state.buyers, user)
		}
		state.tickets[user] = count
	}
}

func (c *Chain) SetCanComplete(id uint64, can bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state, ok := c.lotteryLocked(id); ok {
		state.canComplete = can
	}
}

func (c *Chain) SetBalance(account common.Address, wei *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[account] = new(big.Int).Set(wei)
}

func (c *Chain) Balance(account common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.balanceLocked(account))
}

func (c *Chain) SetWinnings(account common.Address, wei *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.winnings[account] = new(big.Int).Set(wei)
}

func (c *Chain) SetOwner(owner common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owner = owner
}

func (c *Chain) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Chain) SetGasEstimate(gas uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gasEstimate = gas
}

// FailCall makes every eth_call to method fail with err.
func (c *Chain) FailCall(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failCalls, method)
		return
	}
	c.failCalls[method] = err
}

// FailEstimate makes gas estimation for method revert with reason.
func (c *Chain) FailEstimate(method, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failEstimates[method] = reason
}

// RevertOnChain makes transactions calling method mine with status 0.
func (c *Chain) RevertOnChain(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revertOnChain[method] = true
}

// HoldReceipts keeps receipts unavailable until ReleaseReceipts is called.
func (c *Chain) HoldReceipts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holdReceipts = true
}

func (c *Chain) ReleaseReceipts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holdReceipts = false
}

func (c *Chain) SentTransactions() []common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]common.Hash(nil), c.sent...)
}

func (c *Chain) lotteryLocked(id uint64) (*lotteryState, bool) {
	if id == 0 || id > uint64(len(c.lotteries)) {
		return nil, false
	}
	return c.lotteries[id-1], true
}

func (c *Chain) balanceLocked(account common.Address) *big.Int {
	if b, ok := c.balances[account]; ok {
		return b
	}
	return new(big.Int)
}

type revertError struct {
	reason string
}

func (e *revertError) Error() string  { return "execution reverted: " + e.reason }
func (e *revertError) ErrorCode() int { return 3 }

var errUnknownMethod = errors.New("unknown method selector")
