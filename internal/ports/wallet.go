package ports

import (
	"context"
	"math/big"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// ProviderDetector locates a wallet provider. Detect returns an error
// wrapping domain.ErrProviderNotFound when none is available.
type ProviderDetector interface {
	Detect(ctx context.Context) (WalletProvider, error)
}

type TxSender interface {
	SendTransaction(ctx context.Context, req domain.TxRequest) (common.Hash, error)
}

type WalletProvider interface {
	TxSender
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (domain.ChainID, error)
	SwitchChain(ctx context.Context, id domain.ChainID) error
	AddChain(ctx context.Context, network domain.Network) error
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	SubscribeAccounts(ch chan<- []common.Address) event.Subscription
	SubscribeChain(ch chan<- domain.ChainID) event.Subscription
	Close() error
}
