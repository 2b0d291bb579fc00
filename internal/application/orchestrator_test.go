package application

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/bnema/nexus-lottery-cli/internal/ports/mocks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orchestratorFixture struct {
	conn     *fakeConnection
	contract *mocks.MockLotteryContract
	clock    *fakeClock
	notes    *NotificationCenter
	trace    *trace
	o        *SessionOrchestrator
}

func newOrchestratorFixture(t *testing.T, conn *fakeConnection) *orchestratorFixture {
	t.Helper()

	f := &orchestratorFixture{
		conn:     conn,
		contract: mocks.NewMockLotteryContract(t),
		clock:    newFakeClock(),
		trace:    &trace{},
	}
	f.notes = NewNotificationCenter(f.clock, DefaultNotificationTTL)
	t.Cleanup(f.notes.Close)
	f.o = NewSessionOrchestrator(conn, f.contract, tracingNotifier{NotificationCenter: f.notes, trace: f.trace}, f.clock, DefaultGasPolicy())
	return f
}

// lotteryReads wires the next lottery refresh to report current as the newest lottery.
func (f *orchestratorFixture) lotteryReads(current domain.Lottery) {
	f.contract.EXPECT().TotalLotteries(mockAnyContext()).Run(func(context.Context) {
		f.trace.add("lottery")
	}).Return(current.ID, nil).Once()
	f.contract.EXPECT().Lottery(mockAnyContext(), current.ID).Return(current, nil).Once()
}

func (f *orchestratorFixture) userReads(lotteryID, tickets uint64, winnings int64) {
	f.contract.EXPECT().UserTicketCount(mockAnyContext(), lotteryID, player).Run(func(context.Context, uint64, common.Address) {
		f.trace.add("user")
	}).Return(tickets, nil).Once()
	f.contract.EXPECT().UserWinnings(mockAnyContext(), player).Return(big.NewInt(winnings), nil).Once()
}

func (f *orchestratorFixture) loaded(t *testing.T, current domain.Lottery, tickets uint64) {
	t.Helper()

	f.lotteryReads(current)
	f.userReads(current.ID, tickets, 0)
	require.NoError(t, f.o.Refresh(context.Background()))
}

func TestRefreshLotteryDataWithoutLotteries(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.contract.EXPECT().TotalLotteries(mockAnyContext()).Return(0, nil).Once()

	snapshot, err := f.o.RefreshLotteryData(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snapshot)
	assert.Nil(t, f.o.Lottery())
	assert.False(t, f.o.View().CanBuy(f.clock.Now()))
	assert.False(t, f.o.View().BuyEnabled)
}

func TestRefreshLotteryDataIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.lotteryReads(testLottery(5))
	f.lotteryReads(testLottery(5))

	first, err := f.o.RefreshLotteryData(context.Background())
	require.NoError(t, err)
	second, err := f.o.RefreshLotteryData(context.Background())
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Equal(*second))
	assert.Equal(t, uint64(5), f.o.Lottery().ID)
}

func TestRefreshLotteryDataKeepsSnapshotOnReadFailure(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.lotteryReads(testLottery(5))
	_, err := f.o.RefreshLotteryData(context.Background())
	require.NoError(t, err)

	f.contract.EXPECT().TotalLotteries(mockAnyContext()).Return(0, errors.New("rpc timeout")).Once()
	snapshot, err := f.o.RefreshLotteryData(context.Background())
	require.ErrorIs(t, err, domain.ErrReadFailure)
	require.NotNil(t, snapshot)
	assert.Equal(t, uint64(5), snapshot.ID)
	assert.Equal(t, uint64(5), f.o.Lottery().ID)
}

func TestRefreshLotteryDataDiscardsStaleResult(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	entered := make(chan struct{})
	release := make(chan struct{})
	f.contract.EXPECT().TotalLotteries(mockAnyContext()).RunAndReturn(func(context.Context) (uint64, error) {
		close(entered)
		<-release
		return 5, nil
	}).Once()
	f.contract.EXPECT().TotalLotteries(mockAnyContext()).Return(6, nil).Once()
	f.contract.EXPECT().Lottery(mockAnyContext(), uint64(6)).Return(testLottery(6), nil).Once()
	f.contract.EXPECT().Lottery(mockAnyContext(), uint64(5)).Return(testLottery(5), nil).Once()

	done := make(chan *domain.Lottery, 1)
	go func() {
		snapshot, _ := f.o.RefreshLotteryData(context.Background())
		done <- snapshot
	}()
	<-entered

	fresh, err := f.o.RefreshLotteryData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(6), fresh.ID)

	close(release)
	stale := <-done
	assert.Equal(t, uint64(6), stale.ID)
	assert.Equal(t, uint64(6), f.o.Lottery().ID)
}

func TestResetInvalidatesInFlightRefresh(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	entered := make(chan struct{})
	release := make(chan struct{})
	f.contract.EXPECT().TotalLotteries(mockAnyContext()).RunAndReturn(func(context.Context) (uint64, error) {
		close(entered)
		<-release
		return 5, nil
	}).Once()
	f.contract.EXPECT().Lottery(mockAnyContext(), uint64(5)).Return(testLottery(5), nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.o.RefreshLotteryData(context.Background())
	}()
	<-entered
	f.o.Reset()
	close(release)
	<-done

	assert.Nil(t, f.o.Lottery())
}

func TestRefreshUserDataWhileDisconnectedIsNoop(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, &fakeConnection{})

	require.NoError(t, f.o.RefreshUserData(context.Background()))
	assert.False(t, f.o.Position().Known)
	assert.Nil(t, f.o.Balance())
}

func TestRefreshUserDataReadsPosition(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.loaded(t, testLottery(5), 2)

	position := f.o.Position()
	require.True(t, position.Known)
	assert.Equal(t, player, position.Account)
	assert.Equal(t, uint64(5), position.LotteryID)
	assert.Equal(t, uint64(2), position.TicketCount)
	assert.Equal(t, "2000000000000000000", f.o.Balance().String())
	assert.True(t, f.o.View().BuyEnabled)
}

func TestRefreshUserDataOnWrongNetworkReadsBalanceOnly(t *testing.T) {
	t.Parallel()

	conn := newConnectedFake()
	conn.setChain(1)
	f := newOrchestratorFixture(t, conn)

	require.NoError(t, f.o.RefreshUserData(context.Background()))
	assert.False(t, f.o.Position().Known)
	assert.NotNil(t, f.o.Balance())
}

func TestRefreshUserDataFailureKeepsPosition(t *testing.T) {
	t.Parallel()

	conn := newConnectedFake()
	f := newOrchestratorFixture(t, conn)
	f.loaded(t, testLottery(5), 2)

	f.contract.EXPECT().UserTicketCount(mockAnyContext(), uint64(5), player).Return(0, errors.New("rpc timeout")).Once()
	err := f.o.RefreshUserData(context.Background())
	require.ErrorIs(t, err, domain.ErrReadFailure)
	assert.Equal(t, uint64(2), f.o.Position().TicketCount)
}

func TestChainChangeMakesPositionUnknownUntilSwitchBack(t *testing.T) {
	t.Parallel()

	conn := newConnectedFake()
	f := newOrchestratorFixture(t, conn)
	f.loaded(t, testLottery(5), 2)
	require.True(t, f.o.Position().Known)

	conn.setChain(1)
	f.lotteryReads(testLottery(5))
	f.o.HandleSessionEvent(context.Background(), domain.SessionEvent{Kind: domain.SessionChainChanged, Session: conn.Session()})

	assert.False(t, f.o.Position().Known)
	assert.Equal(t, domain.StateConnectedWrongNetwork, f.o.View().State)

	f.lotteryReads(testLottery(5))
	f.userReads(5, 2, 0)
	session, err := f.o.SwitchNetwork(context.Background())
	require.NoError(t, err)
	assert.True(t, session.Ready())
	assert.True(t, f.o.Position().Known)
}

func TestAccountChangeRefreshesUserData(t *testing.T) {
	t.Parallel()

	conn := newConnectedFake()
	f := newOrchestratorFixture(t, conn)
	f.loaded(t, testLottery(5), 2)

	conn.mu.Lock()
	conn.session.Account = other
	conn.mu.Unlock()
	assert.False(t, f.o.Position().Known, "position of the previous account must not leak")

	f.contract.EXPECT().UserTicketCount(mockAnyContext(), uint64(5), other).Return(7, nil).Once()
	f.contract.EXPECT().UserWinnings(mockAnyContext(), other).Return(big.NewInt(0), nil).Once()
	f.o.HandleSessionEvent(context.Background(), domain.SessionEvent{Kind: domain.SessionAccountChanged, Session: conn.Session()})

	assert.Equal(t, uint64(7), f.o.Position().TicketCount)
}

func TestDisconnectClearsUserData(t *testing.T) {
	t.Parallel()

	conn := newConnectedFake()
	f := newOrchestratorFixture(t, conn)
	f.loaded(t, testLottery(5), 2)

	f.o.Disconnect()

	assert.False(t, f.o.Position().Known)
	assert.Nil(t, f.o.Balance())
	require.NotNil(t, f.o.Lottery(), "lottery data does not depend on the wallet")
}

func TestConnectNotifications(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session domain.Session
		err     error
		want    string
	}{
		{
			name:    "success",
			session: domain.Session{Connected: true, Account: player, ChainID: domain.NexusTestnetChainID, IsCorrectNetwork: true},
			want:    "Wallet connected successfully!",
		},
		{
			name:    "wrong network",
			session: domain.Session{Connected: true, Account: player, ChainID: 1},
			err:     domain.ErrWrongNetwork,
			want:    "Please switch to Nexus Testnet III",
		},
		{
			name: "failure",
			err:  domain.ErrProviderNotFound,
			want: "Failed to connect: wallet provider not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conn := &fakeConnection{connectSession: tt.session, connectErr: tt.err, balance: big.NewInt(1)}
			f := newOrchestratorFixture(t, conn)
			if tt.session.Connected {
				f.contract.EXPECT().TotalLotteries(mockAnyContext()).Return(0, nil).Once()
				if tt.session.IsCorrectNetwork {
					f.contract.EXPECT().UserWinnings(mockAnyContext(), player).Return(big.NewInt(0), nil).Once()
				}
			}

			_, err := f.o.Connect(context.Background())
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, []string{tt.want}, messages(f.notes.Active()))
		})
	}
}

func TestBuyTicketsEndToEnd(t *testing.T) {
	t.Parallel()

	conn := newConnectedFake()
	f := newOrchestratorFixture(t, conn)
	before := testLottery(5)
	f.loaded(t, before, 0)

	cost := big.NewInt(30_000_000_000_000_000)
	isBuy := mock.MatchedBy(func(call domain.ContractCall) bool {
		return call.Method == "buyTickets" &&
			call.From == player &&
			call.Value.Cmp(cost) == 0 &&
			len(call.Args) == 2 &&
			call.Args[0].(*big.Int).Uint64() == 5 &&
			call.Args[1].(*big.Int).Uint64() == 3
	})
	pending := domain.PendingTx{Hash: common.HexToHash("0xbeef"), From: player, Method: "buyTickets", Value: cost, GasLimit: 120_000}

	f.contract.EXPECT().EstimateGas(mockAnyContext(), isBuy).Return(100_000, nil).Once()
	f.contract.EXPECT().Submit(mockAnyContext(), mock.Anything, isBuy, mock.MatchedBy(func(opts domain.TxOptions) bool {
		return opts.GasLimit == 120_000 &&
			opts.GasFeeCap.Cmp(big.NewInt(20_000_000_000)) == 0 &&
			opts.GasTipCap.Cmp(big.NewInt(2_000_000_000)) == 0
	})).RunAndReturn(func(_ context.Context, sender ports.TxSender, _ domain.ContractCall, _ domain.TxOptions) (domain.PendingTx, error) {
		assert.Same(t, conn, sender)
		return pending, nil
	}).Once()

	got, err := f.o.BuyTickets(context.Background(), BuyTicketsCommand{Count: 3})
	require.NoError(t, err)
	assert.Equal(t, pending, got)

	after := before
	after.TotalTickets = 13
	f.contract.EXPECT().WaitMined(mockAnyContext(), pending).Return(domain.Receipt{TxHash: pending.Hash, BlockNumber: 7, Status: 1}, nil).Once()
	f.lotteryReads(after)
	f.userReads(5, 3, 0)

	receipt, err := f.o.Await(context.Background(), got)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())

	assert.Equal(t, []string{
		"lottery",
		"user",
		"notify: Buying 3 ticket(s)...",
		"notify: Transaction sent! Waiting for confirmation...",
		"lottery",
		"user",
		"notify: Tickets purchased successfully!",
	}, f.trace.list())
	assert.Equal(t, uint64(13), f.o.Lottery().TotalTickets)
	assert.Equal(t, uint64(3), f.o.Position().TicketCount)
}

func TestBuyTicketsForOtherLotteryUsesItsPrice(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.loaded(t, testLottery(5), 0)

	older := testLottery(4)
	older.TicketPrice = big.NewInt(1_000)
	f.contract.EXPECT().Lottery(mockAnyContext(), uint64(4)).Return(older, nil).Once()
	f.contract.EXPECT().EstimateGas(mockAnyContext(), mock.Anything).Return(50_000, nil).Once()
	f.contract.EXPECT().Submit(mockAnyContext(), mock.Anything, mock.MatchedBy(func(call domain.ContractCall) bool {
		return call.Value.Cmp(big.NewInt(2_000)) == 0 && call.Args[0].(*big.Int).Uint64() == 4
	}), mock.Anything).Return(domain.PendingTx{Method: "buyTickets"}, nil).Once()

	_, err := f.o.BuyTickets(context.Background(), BuyTicketsCommand{LotteryID: 4, Count: 2})
	require.NoError(t, err)
}

func TestBuyTicketsPreconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		conn    func() *fakeConnection
		load    bool
		count   uint64
		wantErr error
		want    string
	}{
		{
			name:    "zero tickets",
			conn:    newConnectedFake,
			load:    true,
			count:   0,
			wantErr: domain.ErrInvalidTicketCount,
			want:    "Failed to buy tickets: ticket count must be at least 1",
		},
		{
			name:    "disconnected",
			conn:    func() *fakeConnection { return &fakeConnection{} },
			count:   1,
			wantErr: domain.ErrNotConnected,
			want:    "Failed to buy tickets: wallet not connected",
		},
		{
			name: "wrong network",
			conn: func() *fakeConnection {
				c := newConnectedFake()
				c.setChain(1)
				return c
			},
			count:   1,
			wantErr: domain.ErrWrongNetwork,
			want:    "Failed to buy tickets: wrong network",
		},
		{
			name:    "no lottery",
			conn:    newConnectedFake,
			count:   1,
			wantErr: domain.ErrNoActiveLottery,
			want:    "No active lottery available",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newOrchestratorFixture(t, tt.conn())
			if tt.load {
				f.lotteryReads(testLottery(5))
				_, err := f.o.RefreshLotteryData(context.Background())
				require.NoError(t, err)
			}

			_, err := f.o.BuyTickets(context.Background(), BuyTicketsCommand{Count: tt.count})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{tt.want}, messages(f.notes.Active()))
			f.contract.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBuyTicketsRejectedIsNotRetried(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.loaded(t, testLottery(5), 0)

	f.contract.EXPECT().EstimateGas(mockAnyContext(), mock.Anything).Return(100_000, nil).Once()
	f.contract.EXPECT().Submit(mockAnyContext(), mock.Anything, mock.Anything, mock.Anything).
		Return(domain.PendingTx{}, domain.ErrTransactionRejected).Once()

	_, err := f.o.BuyTickets(context.Background(), BuyTicketsCommand{Count: 1})
	require.ErrorIs(t, err, domain.ErrTransactionRejected)

	notes := messages(f.notes.Active())
	require.Len(t, notes, 2)
	assert.Equal(t, "Buying 1 ticket(s)...", notes[0])
	assert.Contains(t, notes[1], "Failed to buy tickets: ")
	f.contract.AssertNumberOfCalls(t, "Submit", 1)
}

func TestAwaitRevertedSkipsRefresh(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	pending := domain.PendingTx{Hash: common.HexToHash("0x01"), Method: "withdrawWinnings"}
	f.contract.EXPECT().WaitMined(mockAnyContext(), pending).
		Return(domain.Receipt{Status: 0}, domain.ErrTransactionReverted).Once()

	_, err := f.o.Await(context.Background(), pending)
	require.ErrorIs(t, err, domain.ErrTransactionReverted)
	assert.Equal(t, []string{"Failed to withdraw winnings: transaction reverted"}, messages(f.notes.Active()))
	f.contract.AssertNotCalled(t, "TotalLotteries", mock.Anything)
}

func TestWithdrawWinnings(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.contract.EXPECT().EstimateGas(mockAnyContext(), domain.ContractCall{Method: "withdrawWinnings", From: player}).Return(30_000, nil).Once()
	f.contract.EXPECT().Submit(mockAnyContext(), mock.Anything, domain.ContractCall{Method: "withdrawWinnings", From: player}, mock.MatchedBy(func(opts domain.TxOptions) bool {
		return opts.GasLimit == 36_000
	})).Return(domain.PendingTx{Method: "withdrawWinnings"}, nil).Once()

	pending, err := f.o.WithdrawWinnings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "withdrawWinnings", pending.Method)
}

func TestCompleteLottery(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, newConnectedFake())
	f.loaded(t, testLottery(5), 0)

	f.contract.EXPECT().CanCompleteLottery(mockAnyContext(), uint64(5)).Return(false, nil).Once()
	_, err := f.o.CompleteLottery(context.Background(), CompleteLotteryCommand{})
	require.ErrorIs(t, err, domain.ErrLotteryNotCompletable)

	f.contract.EXPECT().CanCompleteLottery(mockAnyContext(), uint64(5)).Return(true, nil).Once()
	f.contract.EXPECT().EstimateGas(mockAnyContext(), mock.Anything).Return(80_000, nil).Once()
	f.contract.EXPECT().Submit(mockAnyContext(), mock.Anything, mock.MatchedBy(func(call domain.ContractCall) bool {
		return call.Method == "completeLottery" && call.Args[0].(*big.Int).Uint64() == 5
	}), mock.Anything).Return(domain.PendingTx{Method: "completeLottery"}, nil).Once()

	_, err = f.o.CompleteLottery(context.Background(), CompleteLotteryCommand{})
	require.NoError(t, err)
}

func TestGasPolicyLimit(t *testing.T) {
	t.Parallel()

	policy := DefaultGasPolicy()
	assert.Equal(t, uint64(120_000), policy.GasLimit(100_000))
	assert.Equal(t, uint64(25_200), policy.GasLimit(21_000))

	policy.LimitMarginPercent = 0
	assert.Equal(t, uint64(21_000), policy.GasLimit(21_000))
}
