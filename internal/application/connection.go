package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	log "github.com/inconshreveable/log15"
)

var clog = log.New("module", "application.connection")

const providerEventBuffer = 8

// ConnectionManager owns the wallet session. Provider calls are made without
// holding the lock; every mutation checks the connection generation so that
// a Disconnect racing a Connect wins.
type ConnectionManager struct {
	detector ports.ProviderDetector
	network  domain.Network

	mu         sync.Mutex
	state      domain.ConnectionState
	session    domain.Session
	provider   ports.WalletProvider
	generation uint64
	subs       []event.Subscription
	quit       chan struct{}

	feed event.Feed
}

func NewConnectionManager(detector ports.ProviderDetector, network domain.Network) *ConnectionManager {
	return &ConnectionManager{
		detector: detector,
		network:  network,
	}
}

func (m *ConnectionManager) Network() domain.Network {
	return m.network
}

func (m *ConnectionManager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *ConnectionManager) State() domain.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == domain.StateConnecting {
		return m.state
	}
	return m.session.State()
}

func (m *ConnectionManager) IsConnected() bool {
	return m.Session().Connected
}

// SubscribeSessionEvents delivers connect, account, chain and disconnect
// transitions. Subscribers must drain ch promptly.
func (m *ConnectionManager) SubscribeSessionEvents(ch chan<- domain.SessionEvent) event.Subscription {
	return m.feed.Subscribe(ch)
}

// Connect detects a provider, requests accounts and makes one attempt to
// move the wallet to the expected network. When that attempt fails the
// session is still established on the wrong network and the returned error
// wraps domain.ErrWrongNetwork.
func (m *ConnectionManager) Connect(ctx context.Context) (domain.Session, error) {
	m.mu.Lock()
	// Already connected, even on the wrong network. Leaving it takes SwitchNetwork.
	if m.provider != nil {
		session := m.session
		m.mu.Unlock()
		return session, nil
	}
	if m.state == domain.StateConnecting {
		m.mu.Unlock()
		return domain.Session{}, errors.New("connect: already in progress")
	}
	m.state = domain.StateConnecting
	generation := m.generation
	m.mu.Unlock()

	provider, session, err := m.establish(ctx)
	if provider == nil {
		m.mu.Lock()
		if m.generation == generation {
			m.state = domain.StateDisconnected
		}
		m.mu.Unlock()
		return domain.Session{}, err
	}

	accounts := make(chan []common.Address, providerEventBuffer)
	chains := make(chan domain.ChainID, providerEventBuffer)

	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		_ = provider.Close()
		return domain.Session{}, fmt.Errorf("connect: %w", domain.ErrNotConnected)
	}
	m.provider = provider
	m.session = session
	m.state = session.State()
	m.quit = make(chan struct{})
	m.subs = []event.Subscription{
		provider.SubscribeAccounts(accounts),
		provider.SubscribeChain(chains),
	}
	go m.listen(generation, m.quit, accounts, chains)
	m.mu.Unlock()

	clog.Info("wallet connected", "account", session.Account.Hex(), "chain_id", session.ChainID, "correct_network", session.IsCorrectNetwork)
	m.feed.Send(domain.SessionEvent{Kind: domain.SessionConnected, Session: session})

	return session, err
}

// establish returns a nil provider when the connection failed outright. A
// non-nil provider with an error means the session is on the wrong network.
func (m *ConnectionManager) establish(ctx context.Context) (ports.WalletProvider, domain.Session, error) {
	provider, err := m.detector.Detect(ctx)
	if err != nil {
		return nil, domain.Session{}, fmt.Errorf("detect wallet provider: %w", err)
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = domain.ErrNoAccountsGranted
	}
	if err != nil {
		_ = provider.Close()
		if !errors.Is(err, domain.ErrNoAccountsGranted) {
			err = fmt.Errorf("%w: %w", domain.ErrNoAccountsGranted, err)
		}
		return nil, domain.Session{}, fmt.Errorf("request accounts: %w", err)
	}

	chainID, err := provider.ChainID(ctx)
	if err != nil {
		_ = provider.Close()
		return nil, domain.Session{}, fmt.Errorf("read chain id: %w", err)
	}

	var switchErr error
	if !m.network.Matches(chainID) {
		clog.Debug("wallet on unexpected chain", "chain_id", chainID, "want", m.network.ChainID)
		if switchErr = m.ensureNetwork(ctx, provider); switchErr == nil {
			chainID = m.network.ChainID
		}
	}

	session := domain.Session{
		Connected:        true,
		Account:          accounts[0],
		ChainID:          chainID,
		IsCorrectNetwork: m.network.Matches(chainID),
	}
	return provider, session, switchErr
}

// ensureNetwork asks the wallet to switch to the expected network, adding it
// first when the wallet does not know it.
func (m *ConnectionManager) ensureNetwork(ctx context.Context, provider ports.WalletProvider) error {
	err := provider.SwitchChain(ctx, m.network.ChainID)
	if errors.Is(err, domain.ErrChainNotAdded) {
		clog.Info("adding network to wallet", "chain_id", m.network.ChainID, "network", m.network.Name)
		if addErr := provider.AddChain(ctx, m.network); addErr != nil {
			return fmt.Errorf("%w: add network %s: %w", domain.ErrWrongNetwork, m.network.Name, addErr)
		}
		err = provider.SwitchChain(ctx, m.network.ChainID)
	}
	if err != nil {
		return fmt.Errorf("%w: switch to %s: %w", domain.ErrWrongNetwork, m.network.Name, err)
	}

	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: confirm chain id: %w", domain.ErrWrongNetwork, err)
	}
	if !m.network.Matches(chainID) {
		return fmt.Errorf("%w: wallet still on chain %s", domain.ErrWrongNetwork, chainID)
	}
	return nil
}

// SwitchNetwork is the explicit way out of Connected(wrongNetwork).
func (m *ConnectionManager) SwitchNetwork(ctx context.Context) (domain.Session, error) {
	m.mu.Lock()
	provider := m.provider
	generation := m.generation
	m.mu.Unlock()

	if provider == nil {
		return domain.Session{}, fmt.Errorf("switch network: %w", domain.ErrNotConnected)
	}

	if err := m.ensureNetwork(ctx, provider); err != nil {
		return m.Session(), err
	}

	session, changed := m.applyChain(generation, m.network.ChainID)
	if changed {
		m.feed.Send(domain.SessionEvent{Kind: domain.SessionChainChanged, Session: session})
	}
	return session, nil
}

// Disconnect resets the session and releases the provider. It is safe to call
// at any time and any number of times.
func (m *ConnectionManager) Disconnect() {
	m.mu.Lock()
	session, provider, ok := m.resetLocked()
	m.mu.Unlock()

	m.release(provider, session, ok)
}

func (m *ConnectionManager) release(provider ports.WalletProvider, session domain.Session, wasConnected bool) {
	if provider != nil {
		if err := provider.Close(); err != nil {
			clog.Debug("close wallet provider", "err", err)
		}
	}
	if wasConnected {
		clog.Info("wallet disconnected")
		m.feed.Send(domain.SessionEvent{Kind: domain.SessionDisconnected, Session: session})
	}
}

func (m *ConnectionManager) resetLocked() (domain.Session, ports.WalletProvider, bool) {
	m.generation++
	m.state = domain.StateDisconnected
	wasConnected := m.session.Connected

	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.subs = nil
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	provider := m.provider
	m.provider = nil
	m.session = domain.Session{}

	return m.session, provider, wasConnected
}

func (m *ConnectionManager) Close() error {
	m.Disconnect()
	return nil
}

// Balance returns the native balance of account, or of the session account
// when account is the zero address.
func (m *ConnectionManager) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	m.mu.Lock()
	provider := m.provider
	if account == (common.Address{}) {
		account = m.session.Account
	}
	m.mu.Unlock()

	if provider == nil {
		return nil, fmt.Errorf("get balance: %w", domain.ErrNotConnected)
	}

	balance, err := provider.BalanceAt(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReadFailure, err)
	}
	return balance, nil
}

// SendTransaction forwards req to the connected wallet.
func (m *ConnectionManager) SendTransaction(ctx context.Context, req domain.TxRequest) (common.Hash, error) {
	m.mu.Lock()
	provider := m.provider
	m.mu.Unlock()

	if provider == nil {
		return common.Hash{}, domain.ErrNotConnected
	}
	return provider.SendTransaction(ctx, req)
}

func (m *ConnectionManager) listen(generation uint64, quit <-chan struct{}, accounts <-chan []common.Address, chains <-chan domain.ChainID) {
	for {
		select {
		case granted := <-accounts:
			m.onAccounts(generation, granted)
		case id := <-chains:
			session, changed := m.applyChain(generation, id)
			if changed {
				clog.Info("wallet chain changed", "chain_id", id, "correct_network", session.IsCorrectNetwork)
				m.feed.Send(domain.SessionEvent{Kind: domain.SessionChainChanged, Session: session})
			}
		case <-quit:
			return
		}
	}
}

func (m *ConnectionManager) onAccounts(generation uint64, granted []common.Address) {
	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		return
	}

	if len(granted) == 0 {
		session, provider, ok := m.resetLocked()
		m.mu.Unlock()
		m.release(provider, session, ok)
		return
	}

	if m.session.Account == granted[0] {
		m.mu.Unlock()
		return
	}
	m.session.Account = granted[0]
	session := m.session
	m.mu.Unlock()

	clog.Info("wallet account changed", "account", session.Account.Hex())
	m.feed.Send(domain.SessionEvent{Kind: domain.SessionAccountChanged, Session: session})
}

func (m *ConnectionManager) applyChain(generation uint64, id domain.ChainID) (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != generation || !m.session.Connected || m.session.ChainID == id {
		return m.session, false
	}
	m.session.ChainID = id
	m.session.IsCorrectNetwork = m.network.Matches(id)
	m.state = m.session.State()
	return m.session, true
}
