package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	log "github.com/inconshreveable/log15"
)

var olog = log.New("module", "application.orchestrator")

const sessionEventBuffer = 16

// Connection is the part of ConnectionManager the orchestrator depends on.
type Connection interface {
	ports.TxSender
	Connect(ctx context.Context) (domain.Session, error)
	SwitchNetwork(ctx context.Context) (domain.Session, error)
	Disconnect()
	Session() domain.Session
	State() domain.ConnectionState
	Network() domain.Network
	Balance(ctx context.Context, account common.Address) (*big.Int, error)
	SubscribeSessionEvents(ch chan<- domain.SessionEvent) event.Subscription
}

// SessionOrchestrator keeps the lottery snapshot and the user's position in
// step with the chain and the wallet session.
//
// Every refresh takes a request token when it starts. Its result is committed
// only if no refresh that started later has committed already and no Reset
// happened in between, so a slow stale read can never overwrite fresher data.
type SessionOrchestrator struct {
	conn     Connection
	contract ports.LotteryContract
	notifier Notifier
	clock    ports.Clock
	tx       transactor

	mu           sync.Mutex
	nextToken    uint64
	epoch        uint64
	lotteryToken uint64
	userToken    uint64
	lottery      *domain.Lottery
	position     domain.UserPosition
	balance      *big.Int
	balanceOf    common.Address
	updatedAt    time.Time

	viewFeed event.Feed
}

func NewSessionOrchestrator(conn Connection, contract ports.LotteryContract, notifier Notifier, clock ports.Clock, gas GasPolicy) *SessionOrchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionOrchestrator{
		conn:     conn,
		contract: contract,
		notifier: notifier,
		clock:    clock,
		tx:       transactor{contract: contract, sender: conn, gas: gas},
	}
}

// SubscribeViews delivers a fresh View after every committed change.
func (o *SessionOrchestrator) SubscribeViews(ch chan<- View) event.Subscription {
	return o.viewFeed.Subscribe(ch)
}

func (o *SessionOrchestrator) publish() {
	o.viewFeed.Send(o.View())
}

func (o *SessionOrchestrator) View() View {
	session := o.conn.Session()

	o.mu.Lock()
	view := View{
		Session:   session,
		Lottery:   cloneLottery(o.lottery),
		Position:  o.positionLocked(session),
		Balance:   o.balanceLocked(session),
		UpdatedAt: o.updatedAt,
	}
	o.mu.Unlock()

	view.State = o.conn.State()
	view.Network = o.conn.Network()
	if o.notifier != nil {
		view.Notifications = o.notifier.Active()
	}
	view.BuyEnabled = view.CanBuy(o.clock.Now())
	return view
}

// Lottery returns a copy of the current snapshot, nil when no lottery exists.
func (o *SessionOrchestrator) Lottery() *domain.Lottery {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneLottery(o.lottery)
}

// Position returns the user's stake in the current lottery. It is unknown
// unless the session is connected to the right network and the stored
// position belongs to the current account and lottery.
func (o *SessionOrchestrator) Position() domain.UserPosition {
	session := o.conn.Session()

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.positionLocked(session)
}

func (o *SessionOrchestrator) positionLocked(session domain.Session) domain.UserPosition {
	if !session.Ready() || !o.position.Known {
		return domain.UserPosition{}
	}
	var lotteryID uint64
	if o.lottery != nil {
		lotteryID = o.lottery.ID
	}
	if !o.position.Matches(session.Account, lotteryID) {
		return domain.UserPosition{}
	}
	return o.position
}

// Balance returns the native balance of the session account, nil when unknown.
func (o *SessionOrchestrator) Balance() *big.Int {
	session := o.conn.Session()

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.balanceLocked(session)
}

func (o *SessionOrchestrator) balanceLocked(session domain.Session) *big.Int {
	if !session.Connected || o.balance == nil || o.balanceOf != session.Account {
		return nil
	}
	return new(big.Int).Set(o.balance)
}

func (o *SessionOrchestrator) begin() (uint64, uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextToken++
	return o.nextToken, o.epoch
}

// RefreshLotteryData reads the newest lottery. Zero lotteries yields a nil
// snapshot. On read failure the previous snapshot is kept and returned along
// with an error wrapping domain.ErrReadFailure.
func (o *SessionOrchestrator) RefreshLotteryData(ctx context.Context) (*domain.Lottery, error) {
	token, epoch := o.begin()

	total, err := o.contract.TotalLotteries(ctx)
	if err != nil {
		return o.Lottery(), o.readFailed("refresh lottery data", err)
	}

	var snapshot *domain.Lottery
	if total > 0 {
		current, err := o.contract.Lottery(ctx, total)
		if err != nil {
			return o.Lottery(), o.readFailed("refresh lottery data", err)
		}
		snapshot = &current
	}

	o.mu.Lock()
	committed := epoch == o.epoch && token > o.lotteryToken
	if committed {
		o.lotteryToken = token
		o.lottery = cloneLottery(snapshot)
		o.updatedAt = o.clock.Now()
	}
	current := cloneLottery(o.lottery)
	o.mu.Unlock()

	if committed {
		if snapshot == nil {
			olog.Debug("no lottery available")
		} else {
			olog.Debug("lottery refreshed", "lottery_id", snapshot.ID, "tickets", snapshot.TotalTickets)
		}
		o.publish()
	} else {
		olog.Debug("discarded stale lottery refresh", "token", token)
	}
	return current, nil
}

// RefreshUserData is a no-op while disconnected. On the wrong network only the
// balance is refreshed.
func (o *SessionOrchestrator) RefreshUserData(ctx context.Context) error {
	session := o.conn.Session()
	if !session.Connected {
		return nil
	}
	token, epoch := o.begin()

	balance, err := o.conn.Balance(ctx, session.Account)
	if err != nil {
		return o.readFailed("refresh user data", err)
	}

	var position *domain.UserPosition
	if session.Ready() {
		p, err := o.readPosition(ctx, session.Account)
		if err != nil {
			return o.readFailed("refresh user data", err)
		}
		position = &p
	}

	o.mu.Lock()
	committed := epoch == o.epoch && token > o.userToken
	if committed {
		o.userToken = token
		o.balance = balance
		o.balanceOf = session.Account
		if position != nil {
			o.position = *position
		}
		o.updatedAt = o.clock.Now()
	}
	o.mu.Unlock()

	if committed {
		olog.Debug("user data refreshed", "account", session.Account.Hex(), "position_known", position != nil)
		o.publish()
	} else {
		olog.Debug("discarded stale user refresh", "token", token)
	}
	return nil
}

func (o *SessionOrchestrator) readPosition(ctx context.Context, account common.Address) (domain.UserPosition, error) {
	position := domain.UserPosition{Known: true, Account: account}

	if current := o.Lottery(); current != nil {
		count, err := o.contract.UserTicketCount(ctx, current.ID, account)
		if err != nil {
			return domain.UserPosition{}, err
		}
		position.LotteryID = current.ID
		position.TicketCount = count
	}

	winnings, err := o.contract.UserWinnings(ctx, account)
	if err != nil {
		return domain.UserPosition{}, err
	}
	position.Winnings = winnings
	return position, nil
}

func (o *SessionOrchestrator) readFailed(what string, err error) error {
	olog.Warn("read failed, keeping previous state", "op", what, "err", err)
	if !errors.Is(err, domain.ErrReadFailure) {
		err = fmt.Errorf("%w: %w", domain.ErrReadFailure, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Refresh runs one full cycle: lottery data first, then user data keyed by
// the lottery it produced.
func (o *SessionOrchestrator) Refresh(ctx context.Context) error {
	_, lotteryErr := o.RefreshLotteryData(ctx)
	userErr := o.RefreshUserData(ctx)
	return errors.Join(lotteryErr, userErr)
}

// Reset drops all derived state and invalidates in-flight refreshes.
func (o *SessionOrchestrator) Reset() {
	o.mu.Lock()
	o.epoch++
	o.lottery = nil
	o.position = domain.UserPosition{}
	o.balance = nil
	o.balanceOf = common.Address{}
	o.mu.Unlock()

	olog.Debug("session data reset")
	o.publish()
}

func (o *SessionOrchestrator) clearUser() {
	o.mu.Lock()
	o.userToken = o.nextToken
	o.position = domain.UserPosition{}
	o.balance = nil
	o.balanceOf = common.Address{}
	o.mu.Unlock()

	o.publish()
}

// Connect establishes the wallet session and loads data for it.
func (o *SessionOrchestrator) Connect(ctx context.Context) (domain.Session, error) {
	session, err := o.conn.Connect(ctx)
	if !session.Connected {
		o.push(fmt.Sprintf("Failed to connect: %v", err), domain.SeverityError)
		return session, err
	}

	if err != nil || !session.IsCorrectNetwork {
		o.push(fmt.Sprintf("Please switch to %s", o.conn.Network().Name), domain.SeverityWarning)
	} else {
		o.push("Wallet connected successfully!", domain.SeveritySuccess)
	}

	if refreshErr := o.Refresh(ctx); refreshErr != nil {
		olog.Warn("initial refresh failed", "err", refreshErr)
	}
	return session, err
}

// SwitchNetwork moves the wallet to the expected network and reloads
// everything on success.
func (o *SessionOrchestrator) SwitchNetwork(ctx context.Context) (domain.Session, error) {
	session, err := o.conn.SwitchNetwork(ctx)
	if err != nil {
		return session, o.fail("switch network", err)
	}

	o.Reset()
	if refreshErr := o.Refresh(ctx); refreshErr != nil {
		olog.Warn("refresh after network switch failed", "err", refreshErr)
	}
	return session, nil
}

func (o *SessionOrchestrator) Disconnect() {
	o.conn.Disconnect()
	o.clearUser()
}

// HandleSessionEvent applies one connection transition. Read failures are
// logged and swallowed.
func (o *SessionOrchestrator) HandleSessionEvent(ctx context.Context, ev domain.SessionEvent) {
	var err error
	switch ev.Kind {
	case domain.SessionConnected:
		err = o.Refresh(ctx)
	case domain.SessionAccountChanged:
		err = o.RefreshUserData(ctx)
	case domain.SessionChainChanged:
		o.Reset()
		err = o.Refresh(ctx)
	case domain.SessionDisconnected:
		o.clearUser()
	}
	if err != nil {
		olog.Warn("session event refresh failed", "event", ev.Kind, "err", err)
	}
}

// Run applies session events until ctx is done.
func (o *SessionOrchestrator) Run(ctx context.Context) error {
	events := make(chan domain.SessionEvent, sessionEventBuffer)
	sub := o.conn.SubscribeSessionEvents(events)
	defer sub.Unsubscribe()

	for {
		select {
		case ev := <-events:
			o.HandleSessionEvent(ctx, ev)
		case err := <-sub.Err():
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (o *SessionOrchestrator) requireReady() (domain.Session, error) {
	session := o.conn.Session()
	if !session.Connected {
		return session, domain.ErrNotConnected
	}
	if !session.IsCorrectNetwork {
		return session, domain.ErrWrongNetwork
	}
	return session, nil
}

// BuyTickets submits a purchase priced from the lottery snapshot and returns
// the pending transaction. Use Await to wait for it.
func (o *SessionOrchestrator) BuyTickets(ctx context.Context, cmd BuyTicketsCommand) (domain.PendingTx, error) {
	const verb = "buy tickets"

	if err := cmd.Validate(); err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}
	session, err := o.requireReady()
	if err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}

	current := o.Lottery()
	if current == nil {
		o.push("No active lottery available", domain.SeverityError)
		return domain.PendingTx{}, fmt.Errorf("%s: %w", verb, domain.ErrNoActiveLottery)
	}
	target := *current
	if cmd.LotteryID != 0 && cmd.LotteryID != current.ID {
		target, err = o.contract.Lottery(ctx, cmd.LotteryID)
		if err != nil {
			return domain.PendingTx{}, o.fail(verb, err)
		}
	}

	o.push(fmt.Sprintf("Buying %d ticket(s)...", cmd.Count), domain.SeverityInfo)
	pending, err := o.tx.submit(ctx, domain.ContractCall{
		Method: "buyTickets",
		Args:   []any{new(big.Int).SetUint64(target.ID), new(big.Int).SetUint64(cmd.Count)},
		From:   session.Account,
		Value:  target.Cost(cmd.Count),
	})
	if err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}

	olog.Info("tickets purchase sent", "lottery_id", target.ID, "count", cmd.Count, "tx_hash", pending.Hash.Hex())
	o.push("Transaction sent! Waiting for confirmation...", domain.SeverityInfo)
	return pending, nil
}

func (o *SessionOrchestrator) WithdrawWinnings(ctx context.Context) (domain.PendingTx, error) {
	return o.write(ctx, domain.ContractCall{Method: "withdrawWinnings"})
}

// CompleteLottery closes a lottery once the contract reports it can be
// completed. A zero id targets the current lottery.
func (o *SessionOrchestrator) CompleteLottery(ctx context.Context, cmd CompleteLotteryCommand) (domain.PendingTx, error) {
	const verb = "complete lottery"

	id := cmd.LotteryID
	if id == 0 {
		current := o.Lottery()
		if current == nil {
			return domain.PendingTx{}, o.fail(verb, domain.ErrNoActiveLottery)
		}
		id = current.ID
	}

	if _, err := o.requireReady(); err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}

	can, err := o.contract.CanCompleteLottery(ctx, id)
	if err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}
	if !can {
		return domain.PendingTx{}, o.fail(verb, fmt.Errorf("lottery %d: %w", id, domain.ErrLotteryNotCompletable))
	}

	return o.write(ctx, domain.ContractCall{
		Method: "completeLottery",
		Args:   []any{new(big.Int).SetUint64(id)},
	})
}

// write submits call from the session account.
func (o *SessionOrchestrator) write(ctx context.Context, call domain.ContractCall) (domain.PendingTx, error) {
	verb := actionFor(call.Method).verb

	session, err := o.requireReady()
	if err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}
	call.From = session.Account

	pending, err := o.tx.submit(ctx, call)
	if err != nil {
		return domain.PendingTx{}, o.fail(verb, err)
	}
	olog.Info("transaction sent", "method", call.Method, "tx_hash", pending.Hash.Hex())
	o.push("Transaction sent! Waiting for confirmation...", domain.SeverityInfo)
	return pending, nil
}

// Await blocks until pending is mined. On success lottery and user data are
// both reloaded before the success notification is pushed. Failures are
// reported once and never retried.
func (o *SessionOrchestrator) Await(ctx context.Context, pending domain.PendingTx) (domain.Receipt, error) {
	action := actionFor(pending.Method)

	receipt, err := o.contract.WaitMined(ctx, pending)
	if err != nil {
		olog.Error("transaction failed", "method", pending.Method, "tx_hash", pending.Hash.Hex(), "err", err)
		return receipt, o.fail(action.verb, err)
	}

	if refreshErr := o.Refresh(ctx); refreshErr != nil {
		olog.Warn("refresh after confirmation failed", "tx_hash", pending.Hash.Hex(), "err", refreshErr)
	}

	olog.Info("transaction confirmed", "method", pending.Method, "tx_hash", pending.Hash.Hex(), "block", receipt.BlockNumber)
	o.push(action.success, domain.SeveritySuccess)
	return receipt, nil
}

func (o *SessionOrchestrator) fail(verb string, err error) error {
	o.push(fmt.Sprintf("Failed to %s: %v", verb, err), domain.SeverityError)
	return fmt.Errorf("%s: %w", verb, err)
}

func (o *SessionOrchestrator) push(message string, severity domain.Severity) {
	if o.notifier == nil {
		return
	}
	o.notifier.Push(message, severity)
}

func cloneLottery(l *domain.Lottery) *domain.Lottery {
	if l == nil {
		return nil
	}
	out := l.Clone()
	return &out
}
