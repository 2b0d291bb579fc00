// Package remote talks to an external wallet over JSON-RPC using the
// EIP-1193 method set. Signing is delegated to the wallet.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/rpcerr"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	log "github.com/inconshreveable/log15"
)

var rlog = log.New("module", "wallet.remote")

const (
	DefaultPollInterval = 2 * time.Second
	pollTimeout         = 5 * time.Second
)

type DialFunc func(ctx context.Context, url string) (*rpc.Client, error)

type Options struct {
	URL          string
	PollInterval time.Duration
	Dial         DialFunc
}

type Detector struct {
	opts Options
}

func NewDetector(opts Options) *Detector {
	if opts.Dial == nil {
		opts.Dial = rpc.DialContext
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Detector{opts: opts}
}

// Detect dials the wallet endpoint and probes it with eth_chainId. Any
// failure reports domain.ErrProviderNotFound.
func (d *Detector) Detect(ctx context.Context) (ports.WalletProvider, error) {
	client, err := d.opts.Dial(ctx, d.opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", domain.ErrProviderNotFound, d.opts.URL, err)
	}

	p := newProvider(client, d.opts.PollInterval)
	if _, err := p.ChainID(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: probe %s: %w", domain.ErrProviderNotFound, d.opts.URL, err)
	}
	rlog.Debug("remote wallet detected", "url", d.opts.URL)
	return p, nil
}

type Provider struct {
	client   *rpc.Client
	interval time.Duration

	accountFeed event.Feed
	chainFeed   event.Feed

	pollOnce  sync.Once
	closeOnce sync.Once
	quit      chan struct{}
	done      chan struct{}
}

func newProvider(client *rpc.Client, interval time.Duration) *Provider {
	return &Provider{
		client:   client,
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (p *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var granted []common.Address
	if err := p.client.CallContext(ctx, &granted, "eth_requestAccounts"); err != nil {
		if code, ok := rpcerr.Code(err); ok && (code == rpcerr.CodeUserRejected || code == rpcerr.CodeUnauthorized) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNoAccountsGranted, err)
		}
		return nil, fmt.Errorf("request accounts: %w", err)
	}
	if len(granted) == 0 {
		return nil, fmt.Errorf("request accounts: %w", domain.ErrNoAccountsGranted)
	}
	return granted, nil
}

func (p *Provider) accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ChainID accepts the chain id as a hex or decimal string or as a JSON number.
func (p *Provider) ChainID(ctx context.Context) (domain.ChainID, error) {
	var raw json.RawMessage
	if err := p.client.CallContext(ctx, &raw, "eth_chainId"); err != nil {
		return 0, fmt.Errorf("read chain id: %w", err)
	}

	var value any
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		value = text
	} else {
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return 0, fmt.Errorf("decode chain id %s: %w", raw, err)
		}
		value = number.String()
	}

	id, err := domain.ParseChainID(value)
	if err != nil {
		return 0, fmt.Errorf("decode chain id: %w", err)
	}
	return id, nil
}

type switchChainParams struct {
	ChainID string `json:"chainId"`
}

func (p *Provider) SwitchChain(ctx context.Context, id domain.ChainID) error {
	err := p.client.CallContext(ctx, nil, "wallet_switchEthereumChain", switchChainParams{ChainID: id.Hex()})
	if err != nil {
		return fmt.Errorf("switch chain %s: %w", id, rpcerr.Classify(err))
	}
	return nil
}

type nativeCurrencyParams struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type addChainParams struct {
	ChainID           string               `json:"chainId"`
	ChainName         string               `json:"chainName"`
	NativeCurrency    nativeCurrencyParams `json:"nativeCurrency"`
	RPCURLs           []string             `json:"rpcUrls"`
	BlockExplorerURLs []string             `json:"blockExplorerUrls,omitempty"`
}

func (p *Provider) AddChain(ctx context.Context, network domain.Network) error {
	params := addChainParams{
		ChainID:   network.ChainID.Hex(),
		ChainName: network.Name,
		NativeCurrency: nativeCurrencyParams{
			Name:     network.Currency.Name,
			Symbol:   network.Currency.Symbol,
			Decimals: network.Currency.Decimals,
		},
		RPCURLs:           network.RPCURLs,
		BlockExplorerURLs: network.ExplorerURLs,
	}
	if err := p.client.CallContext(ctx, nil, "wallet_addEthereumChain", params); err != nil {
		return fmt.Errorf("add chain %s: %w", network.ChainID, rpcerr.Classify(err))
	}
	return nil
}

func (p *Provider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance hexutil.Big
	if err := p.client.CallContext(ctx, &balance, "eth_getBalance", account, "latest"); err != nil {
		return nil, fmt.Errorf("read balance of %s: %w", account.Hex(), err)
	}
	return (*big.Int)(&balance), nil
}

type sendTxParams struct {
	From                 common.Address  `json:"from"`
	To                   common.Address  `json:"to"`
	Value                *hexutil.Big    `json:"value,omitempty"`
	Data                 hexutil.Bytes   `json:"data,omitempty"`
	Gas                  *hexutil.Uint64 `json:"gas,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
}

// SendTransaction hands req to the wallet through eth_sendTransaction.
func (p *Provider) SendTransaction(ctx context.Context, req domain.TxRequest) (common.Hash, error) {
	params := sendTxParams{
		From:                 req.From,
		To:                   req.To,
		Value:                (*hexutil.Big)(req.Value),
		Data:                 req.Data,
		MaxFeePerGas:         (*hexutil.Big)(req.GasFeeCap),
		MaxPriorityFeePerGas: (*hexutil.Big)(req.GasTipCap),
	}
	if req.Gas > 0 {
		gas := hexutil.Uint64(req.Gas)
		params.Gas = &gas
	}

	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", params); err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", rpcerr.Classify(err))
	}
	rlog.Debug("transaction handed to wallet", "tx_hash", hash.Hex(), "account", req.From.Hex())
	return hash, nil
}

func (p *Provider) SubscribeAccounts(ch chan<- []common.Address) event.Subscription {
	p.pollOnce.Do(p.startPolling)
	return p.accountFeed.Subscribe(ch)
}

func (p *Provider) SubscribeChain(ch chan<- domain.ChainID) event.Subscription {
	p.pollOnce.Do(p.startPolling)
	return p.chainFeed.Subscribe(ch)
}

// startPolling watches eth_accounts and eth_chainId. The baseline is read
// before the first subscriber is registered; later polls emit only on change.
func (p *Provider) startPolling() {
	accounts, chainID, err := p.poll()
	haveBase := err == nil
	if err != nil {
		rlog.Warn("wallet poll failed", "err", err)
	}

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		pollFailed := !haveBase
		for {
			select {
			case <-ticker.C:
			case <-p.quit:
				return
			}

			nextAccounts, nextChain, err := p.poll()
			if err != nil {
				if !pollFailed {
					rlog.Warn("wallet poll failed", "err", err)
				}
				pollFailed = true
				continue
			}
			pollFailed = false

			if haveBase && !slices.Equal(accounts, nextAccounts) {
				p.accountFeed.Send(nextAccounts)
			}
			if haveBase && chainID != nextChain {
				p.chainFeed.Send(nextChain)
			}
			accounts, chainID, haveBase = nextAccounts, nextChain, true
		}
	}()
}

func (p *Provider) poll() ([]common.Address, domain.ChainID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), max(p.interval, pollTimeout))
	defer cancel()

	accounts, accErr := p.accounts(ctx)
	chainID, chainErr := p.ChainID(ctx)
	if err := errors.Join(accErr, chainErr); err != nil {
		return nil, 0, err
	}
	return accounts, chainID, nil
}

func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		close(p.quit)
		started := true
		p.pollOnce.Do(func() { started = false })
		if started {
			<-p.done
		}
		p.client.Close()
	})
	return nil
}
