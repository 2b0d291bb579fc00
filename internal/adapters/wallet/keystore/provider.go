// Package keystore implements a wallet provider backed by a local go-ethereum
// keystore directory. Transactions are signed locally and broadcast through
// the RPC endpoint of the active network.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/rpcerr"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/accounts"
	ethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	log "github.com/inconshreveable/log15"
)

var klog = log.New("module", "wallet.keystore")

// Client is the subset of ethclient.Client the provider needs.
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	Close()
}

type DialFunc func(ctx context.Context, url string) (Client, error)

func DialEthclient(ctx context.Context, url string) (Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type Provider struct {
	ks       *ethkeystore.KeyStore
	account  common.Address
	networks ports.NetworkRepository
	secrets  ports.SecretStore
	dial     DialFunc

	mu      sync.Mutex
	client  Client
	chainID domain.ChainID
	closed  bool

	accountFeed event.Feed
	chainFeed   event.Feed

	watchOnce sync.Once
	walletSub event.Subscription
	quit      chan struct{}
}

func newProvider(ks *ethkeystore.KeyStore, account common.Address, client Client, chainID domain.ChainID, networks ports.NetworkRepository, secrets ports.SecretStore, dial DialFunc) *Provider {
	return &Provider{
		ks:       ks,
		account:  account,
		networks: networks,
		secrets:  secrets,
		dial:     dial,
		client:   client,
		chainID:  chainID,
		quit:     make(chan struct{}),
	}
}

// RequestAccounts lists the keystore accounts, restricted to the configured
// account when one is set.
func (p *Provider) RequestAccounts(_ context.Context) ([]common.Address, error) {
	granted := p.accounts()
	if len(granted) == 0 {
		return nil, fmt.Errorf("request accounts: %w", domain.ErrNoAccountsGranted)
	}
	return granted, nil
}

func (p *Provider) accounts() []common.Address {
	var out []common.Address
	for _, acc := range p.ks.Accounts() {
		if p.account != (common.Address{}) && acc.Address != p.account {
			continue
		}
		out = append(out, acc.Address)
	}
	return out
}

func (p *Provider) ChainID(_ context.Context) (domain.ChainID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, fmt.Errorf("read chain id: %w", domain.ErrNotConnected)
	}
	return p.chainID, nil
}

func (p *Provider) current() (Client, domain.ChainID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, 0, domain.ErrNotConnected
	}
	return p.client, p.chainID, nil
}

// SwitchChain moves the provider to a registered network. Unregistered
// networks yield domain.ErrChainNotAdded.
func (p *Provider) SwitchChain(ctx context.Context, id domain.ChainID) error {
	_, currentID, err := p.current()
	if err != nil {
		return fmt.Errorf("switch chain: %w", err)
	}
	if currentID == id {
		return nil
	}

	network, err := p.networks.Get(ctx, id)
	if errors.Is(err, domain.ErrNetworkNotFound) {
		return fmt.Errorf("switch chain %s: %w", id, domain.ErrChainNotAdded)
	}
	if err != nil {
		return fmt.Errorf("switch chain %s: %w", id, err)
	}

	client, err := p.dialNetwork(ctx, network)
	if err != nil {
		return fmt.Errorf("switch chain %s: %w", id, err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		client.Close()
		return fmt.Errorf("switch chain: %w", domain.ErrNotConnected)
	}
	previous := p.client
	p.client = client
	p.chainID = id
	p.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	klog.Info("switched chain", "chain_id", id, "network", network.Name)
	p.chainFeed.Send(id)
	return nil
}

func (p *Provider) dialNetwork(ctx context.Context, network domain.Network) (Client, error) {
	if len(network.RPCURLs) == 0 {
		return nil, fmt.Errorf("network %s has no rpc url", network.ChainID)
	}

	var errs []error
	for _, url := range network.RPCURLs {
		client, err := p.dial(ctx, url)
		if err != nil {
			errs = append(errs, fmt.Errorf("dial %s: %w", url, err))
			continue
		}
		remote, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			errs = append(errs, fmt.Errorf("read chain id from %s: %w", url, err))
			continue
		}
		if remote.Uint64() != uint64(network.ChainID) {
			client.Close()
			errs = append(errs, fmt.Errorf("%s serves chain %s, want %s", url, remote, network.ChainID))
			continue
		}
		return client, nil
	}
	return nil, errors.Join(errs...)
}

// AddChain registers network so a later SwitchChain can reach it.
func (p *Provider) AddChain(ctx context.Context, network domain.Network) error {
	if err := p.networks.Save(ctx, network); err != nil {
		return fmt.Errorf("add chain %s: %w", network.ChainID, err)
	}
	klog.Info("added chain", "chain_id", network.ChainID, "network", network.Name)
	return nil
}

func (p *Provider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	client, _, err := p.current()
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}
	balance, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("read balance of %s: %w", account.Hex(), err)
	}
	return balance, nil
}

// SendTransaction signs req as an EIP-1559 transaction with the passphrase
// stored for req.From and broadcasts it on the active chain.
func (p *Provider) SendTransaction(ctx context.Context, req domain.TxRequest) (common.Hash, error) {
	client, chainID, err := p.current()
	if err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}

	account, err := p.ks.Find(accounts.Account{Address: req.From})
	if err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: account %s: %w", req.From.Hex(), domain.ErrNotConnected)
	}

	passphrase, err := p.secrets.Get(ctx, ports.KeystorePassphraseKey(req.From))
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: load passphrase for %s: %w", domain.ErrTransactionRejected, req.From.Hex(), err)
	}

	nonce, err := client.PendingNonceAt(ctx, req.From)
	if err != nil {
		return common.Hash{}, fmt.Errorf("read nonce: %w", err)
	}

	tipCap, feeCap, err := p.fees(ctx, client, req)
	if err != nil {
		return common.Hash{}, err
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := req.To
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID.BigInt(),
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       req.Gas,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})

	signed, err := p.ks.SignTxWithPassphrase(account, passphrase, tx, chainID.BigInt())
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: sign transaction: %w", domain.ErrTransactionRejected, err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("broadcast transaction: %w", rpcerr.Classify(err))
	}
	klog.Debug("transaction broadcast", "tx_hash", signed.Hash().Hex(), "chain_id", chainID, "nonce", nonce)
	return signed.Hash(), nil
}

func (p *Provider) fees(ctx context.Context, client Client, req domain.TxRequest) (*big.Int, *big.Int, error) {
	tipCap := req.GasTipCap
	if tipCap == nil {
		suggested, err := client.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("suggest gas tip cap: %w", err)
		}
		tipCap = suggested
	}

	feeCap := req.GasFeeCap
	if feeCap == nil {
		head, err := client.HeaderByNumber(ctx, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("read latest header: %w", err)
		}
		baseFee := head.BaseFee
		if baseFee == nil {
			baseFee = new(big.Int)
		}
		feeCap = new(big.Int).Add(tipCap, new(big.Int).Mul(baseFee, big.NewInt(2)))
	}

	if feeCap.Cmp(tipCap) < 0 {
		return nil, nil, fmt.Errorf("max fee per gas %s below priority fee %s", feeCap, tipCap)
	}
	return tipCap, feeCap, nil
}

// SubscribeAccounts delivers the granted account list whenever a key file
// appears in or disappears from the keystore directory.
func (p *Provider) SubscribeAccounts(ch chan<- []common.Address) event.Subscription {
	p.watchOnce.Do(p.startWalletWatch)
	return p.accountFeed.Subscribe(ch)
}

func (p *Provider) SubscribeChain(ch chan<- domain.ChainID) event.Subscription {
	return p.chainFeed.Subscribe(ch)
}

func (p *Provider) startWalletWatch() {
	events := make(chan accounts.WalletEvent, 8)
	p.walletSub = p.ks.Subscribe(events)

	go func() {
		for {
			select {
			case ev := <-events:
				if ev.Kind == accounts.WalletOpened {
					continue
				}
				granted := p.accounts()
				klog.Debug("keystore changed", "accounts", len(granted))
				p.accountFeed.Send(granted)
			case <-p.walletSub.Err():
				return
			case <-p.quit:
				return
			}
		}
	}()
}

func (p *Provider) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	client := p.client
	p.client = nil
	p.mu.Unlock()

	close(p.quit)
	p.watchOnce.Do(func() {})
	if p.walletSub != nil {
		p.walletSub.Unsubscribe()
	}
	if client != nil {
		client.Close()
	}
	return nil
}
