package application

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/mock"
)

var (
	player = common.HexToAddress("0x1000000000000000000000000000000000000001")
	other  = common.HexToAddress("0x2000000000000000000000000000000000000002")
	owner  = common.HexToAddress("0x3000000000000000000000000000000000000003")

	oneHundredth = big.NewInt(10_000_000_000_000_000)
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

// fakeClock fires AfterFunc callbacks only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	for _, timer := range due {
		timer.f()
	}
}

// fakeConnection is an in-memory Connection whose session the test drives.
type fakeConnection struct {
	mu             sync.Mutex
	session        domain.Session
	connectSession domain.Session
	connectErr     error
	switchErr      error
	balance        *big.Int
	balanceErr     error
	feed           event.Feed
}

func newConnectedFake() *fakeConnection {
	return &fakeConnection{
		session: domain.Session{
			Connected:        true,
			Account:          player,
			ChainID:          domain.NexusTestnetChainID,
			IsCorrectNetwork: true,
		},
		balance: big.NewInt(2_000_000_000_000_000_000),
	}
}

func (f *fakeConnection) setSession(s domain.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
}

func (f *fakeConnection) setChain(id domain.ChainID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session.ChainID = id
	f.session.IsCorrectNetwork = id == domain.NexusTestnetChainID
}

func (f *fakeConnection) Connect(context.Context) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectSession.Connected {
		f.session = f.connectSession
	}
	return f.connectSession, f.connectErr
}

func (f *fakeConnection) SwitchNetwork(context.Context) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.session.Connected {
		return domain.Session{}, domain.ErrNotConnected
	}
	if f.switchErr != nil {
		return f.session, f.switchErr
	}
	f.session.ChainID = domain.NexusTestnetChainID
	f.session.IsCorrectNetwork = true
	return f.session, nil
}

func (f *fakeConnection) Disconnect() {
	f.setSession(domain.Session{})
}

func (f *fakeConnection) Session() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeConnection) State() domain.ConnectionState {
	return f.Session().State()
}

func (f *fakeConnection) Network() domain.Network {
	return domain.NexusTestnet()
}

func (f *fakeConnection) Balance(context.Context, common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.session.Connected {
		return nil, domain.ErrNotConnected
	}
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return new(big.Int).Set(f.balance), nil
}

func (f *fakeConnection) SubscribeSessionEvents(ch chan<- domain.SessionEvent) event.Subscription {
	return f.feed.Subscribe(ch)
}

func (f *fakeConnection) SendTransaction(context.Context, domain.TxRequest) (common.Hash, error) {
	return common.Hash{}, nil
}

// trace records the order in which reads and notifications happen.
type trace struct {
	mu    sync.Mutex
	steps []string
}

func (t *trace) add(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, step)
}

func (t *trace) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.steps...)
}

type tracingNotifier struct {
	*NotificationCenter
	trace *trace
}

func (n tracingNotifier) Push(message string, severity domain.Severity) domain.Notification {
	n.trace.add("notify: " + message)
	return n.NotificationCenter.Push(message, severity)
}

func messages(notes []domain.Notification) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Message)
	}
	return out
}

func testLottery(id uint64) domain.Lottery {
	return domain.Lottery{
		ID:           id,
		TicketPrice:  new(big.Int).Set(oneHundredth),
		MaxTickets:   100,
		EndTime:      time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC),
		TotalTickets: 10,
		PrizePool:    big.NewInt(100_000_000_000_000_000),
		IsActive:     true,
	}
}
