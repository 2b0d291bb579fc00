package lottery_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/contract/lottery"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/testchain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contractAddress = common.HexToAddress("0xCAfEBc845Ad14d60174f3E87A9A01ccE135D58cf")
	player          = common.HexToAddress("0x1000000000000000000000000000000000000001")
	oneHundredth    = big.NewInt(10_000_000_000_000_000)
)

type fakeSender struct {
	requests []domain.TxRequest
	send     func(req domain.TxRequest) (common.Hash, error)
}

func (s *fakeSender) SendTransaction(_ context.Context, req domain.TxRequest) (common.Hash, error) {
	s.requests = append(s.requests, req)
	return s.send(req)
}

func newTestContract(t *testing.T) (*lottery.Contract, *testchain.Chain) {
	t.Helper()

	chain, err := testchain.New(uint64(domain.NexusTestnetChainID), contractAddress)
	require.NoError(t, err)
	t.Cleanup(chain.Close)

	client := chain.Client()
	t.Cleanup(client.Close)

	c, err := lottery.New(contractAddress, client, lottery.WithReceiptPollInterval(10*time.Millisecond))
	require.NoError(t, err)
	return c, chain
}

func TestContractReadsLottery(t *testing.T) {
	c, chain := newTestContract(t)
	end := time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)

	id := chain.AddLottery(domain.Lottery{
		TicketPrice:  oneHundredth,
		MaxTickets:   100,
		EndTime:      end,
		TotalTickets: 12,
		PrizePool:    big.NewInt(120_000_000_000_000_000),
		IsActive:     true,
	})
	chain.SetTickets(id, player, 3)
	chain.SetWinnings(player, big.NewInt(42))

	total, err := c.TotalLotteries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	got, err := c.Lottery(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Lottery{
		ID:           1,
		TicketPrice:  oneHundredth,
		MaxTickets:   100,
		EndTime:      end,
		TotalTickets: 12,
		PrizePool:    big.NewInt(120_000_000_000_000_000),
		IsActive:     true,
	}), "unexpected lottery %+v", got)

	count, err := c.UserTicketCount(context.Background(), id, player)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	winnings, err := c.UserWinnings(context.Background(), player)
	require.NoError(t, err)
	assert.Equal(t, int64(42), winnings.Int64())
}

func TestContractReadsAdminState(t *testing.T) {
	c, chain := newTestContract(t)
	owner := common.HexToAddress("0x2000000000000000000000000000000000000002")
	chain.SetOwner(owner)
	id := chain.AddLottery(domain.Lottery{IsActive: true})
	chain.SetCanComplete(id, true)

	got, err := c.Owner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	paused, err := c.Paused(context.Background())
	require.NoError(t, err)
	assert.False(t, paused)

	can, err := c.CanCompleteLottery(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, can)
}

func TestContractReadFailureIsClassified(t *testing.T) {
	c, chain := newTestContract(t)
	chain.FailCall("getTotalLotteries", errors.New("upstream unavailable"))

	_, err := c.TotalLotteries(context.Background())
	require.ErrorIs(t, err, domain.ErrReadFailure)
	assert.ErrorContains(t, err, "getTotalLotteries")
}

func TestContractEstimateGasRevertIsClassified(t *testing.T) {
	c, chain := newTestContract(t)
	chain.AddLottery(domain.Lottery{TicketPrice: oneHundredth, IsActive: true})
	chain.FailEstimate("buyTickets", "Lottery full")

	_, err := c.EstimateGas(context.Background(), domain.ContractCall{
		Method: "buyTickets",
		Args:   []any{big.NewInt(1), big.NewInt(1)},
		From:   player,
		Value:  oneHundredth,
	})
	require.ErrorIs(t, err, domain.ErrTransactionReverted)
	assert.ErrorContains(t, err, "Lottery full")
}

func TestContractSubmitPacksCallForSender(t *testing.T) {
	c, _ := newTestContract(t)
	hash := common.HexToHash("0xabc")
	sender := &fakeSender{send: func(domain.TxRequest) (common.Hash, error) { return hash, nil }}

	pending, err := c.Submit(context.Background(), sender, domain.ContractCall{
		Method: "buyTickets",
		Args:   []any{big.NewInt(1), big.NewInt(3)},
		From:   player,
		Value:  big.NewInt(30_000_000_000_000_000),
	}, domain.TxOptions{GasLimit: 120_000, GasFeeCap: big.NewInt(20_000_000_000), GasTipCap: big.NewInt(2_000_000_000)})
	require.NoError(t, err)

	assert.Equal(t, hash, pending.Hash)
	assert.Equal(t, "buyTickets", pending.Method)
	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, contractAddress, req.To)
	assert.Equal(t, player, req.From)
	assert.Equal(t, uint64(120_000), req.Gas)
	assert.Equal(t, "30000000000000000", req.Value.String())

	parsed, err := lottery.ABI()
	require.NoError(t, err)
	assert.Equal(t, parsed.Methods["buyTickets"].ID, req.Data[:4])
}

func TestContractSubmitWithoutSenderIsNotConnected(t *testing.T) {
	c, _ := newTestContract(t)

	_, err := c.Submit(context.Background(), nil, domain.ContractCall{Method: "withdrawWinnings"}, domain.TxOptions{})
	require.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestContractSubmitRejectsUnknownMethod(t *testing.T) {
	c, _ := newTestContract(t)
	sender := &fakeSender{send: func(domain.TxRequest) (common.Hash, error) { return common.Hash{}, nil }}

	_, err := c.Submit(context.Background(), sender, domain.ContractCall{Method: "drainContract"}, domain.TxOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "pack drainContract")
	assert.Empty(t, sender.requests)
}

func TestContractWaitMinedTimesOutWhileReceiptPending(t *testing.T) {
	c, _ := newTestContract(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.WaitMined(ctx, domain.PendingTx{Hash: common.HexToHash("0xdead"), Method: "buyTickets"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

type signingSender struct {
	t      *testing.T
	chain  *testchain.Chain
	nonce  uint64
	signer func(*types.Transaction) *types.Transaction
}

func newSigningSender(t *testing.T, chain *testchain.Chain) (*signingSender, common.Address) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	chainID := new(big.Int).SetUint64(chain.ChainID())
	signer := types.LatestSignerForChainID(chainID)

	return &signingSender{
		t:     t,
		chain: chain,
		signer: func(tx *types.Transaction) *types.Transaction {
			signed, err := types.SignTx(tx, signer, key)
			require.NoError(t, err)
			return signed
		},
	}, crypto.PubkeyToAddress(key.PublicKey)
}

func (s *signingSender) SendTransaction(ctx context.Context, req domain.TxRequest) (common.Hash, error) {
	to := req.To
	tx := s.signer(types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).SetUint64(s.chain.ChainID()),
		Nonce:     s.nonce,
		GasTipCap: req.GasTipCap,
		GasFeeCap: req.GasFeeCap,
		Gas:       req.Gas,
		To:        &to,
		Value:     req.Value,
		Data:      req.Data,
	}))
	s.nonce++

	client := s.chain.Client()
	defer client.Close()
	if err := client.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}

func TestContractBuyTicketsMinesAndEmitsEvent(t *testing.T) {
	c, chain := newTestContract(t)
	id := chain.AddLottery(domain.Lottery{TicketPrice: oneHundredth, MaxTickets: 100, IsActive: true})
	sender, buyer := newSigningSender(t, chain)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan domain.ContractEvent, 4)
	sub, err := c.WatchEvents(ctx, events)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	value := big.NewInt(30_000_000_000_000_000)
	pending, err := c.Submit(ctx, sender, domain.ContractCall{
		Method: "buyTickets",
		Args:   []any{new(big.Int).SetUint64(id), big.NewInt(3)},
		From:   buyer,
		Value:  value,
	}, domain.TxOptions{GasLimit: 120_000, GasFeeCap: big.NewInt(20_000_000_000), GasTipCap: big.NewInt(2_000_000_000)})
	require.NoError(t, err)

	receipt, err := c.WaitMined(ctx, pending)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, pending.Hash, receipt.TxHash)

	select {
	case ev := <-events:
		assert.Equal(t, domain.EventTicketPurchased, ev.Kind)
		assert.Equal(t, id, ev.LotteryID)
		assert.Equal(t, buyer, ev.Buyer)
		assert.Equal(t, uint64(3), ev.TicketNumber)
		assert.Equal(t, value.String(), ev.Amount.String())
		assert.Equal(t, pending.Hash, ev.TxHash)
	case <-ctx.Done():
		t.Fatal("TicketPurchased event not delivered")
	}

	count, err := c.UserTicketCount(ctx, id, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestContractWaitMinedReportsRevertedReceipt(t *testing.T) {
	c, chain := newTestContract(t)
	chain.RevertOnChain("withdrawWinnings")
	sender, from := newSigningSender(t, chain)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pending, err := c.Submit(ctx, sender, domain.ContractCall{Method: "withdrawWinnings", From: from},
		domain.TxOptions{GasLimit: 60_000, GasFeeCap: big.NewInt(20_000_000_000), GasTipCap: big.NewInt(2_000_000_000)})
	require.NoError(t, err)

	receipt, err := c.WaitMined(ctx, pending)
	require.ErrorIs(t, err, domain.ErrTransactionReverted)
	assert.False(t, receipt.Succeeded())
}

func TestContractDecodeEventLotteryCreated(t *testing.T) {
	c, chain := newTestContract(t)
	sender, owner := newSigningSender(t, chain)
	chain.SetNow(func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan domain.ContractEvent, 4)
	sub, err := c.WatchEvents(ctx, events)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	_, err = c.Submit(ctx, sender, domain.ContractCall{
		Method: "createLottery",
		Args:   []any{oneHundredth, big.NewInt(50), big.NewInt(24 * 3600)},
		From:   owner,
	}, domain.TxOptions{GasLimit: 200_000, GasFeeCap: big.NewInt(20_000_000_000), GasTipCap: big.NewInt(2_000_000_000)})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, domain.EventLotteryCreated, ev.Kind)
		assert.Equal(t, uint64(1), ev.LotteryID)
		assert.Equal(t, uint64(50), ev.MaxTickets)
		assert.Equal(t, oneHundredth.String(), ev.TicketPrice.String())
		assert.Equal(t, time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC), ev.EndTime)
	case <-ctx.Done():
		t.Fatal("LotteryCreated event not delivered")
	}
}
