package keystore

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	ethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

type Options struct {
	Dir string
	// Account restricts the provider to a single keystore account. The zero
	// address grants every account in Dir.
	Account  common.Address
	RPCURL   string
	Networks ports.NetworkRepository
	Secrets  ports.SecretStore
	Dial     DialFunc
	ScryptN  int
	ScryptP  int
}

type Detector struct {
	opts Options
}

func NewDetector(opts Options) *Detector {
	if opts.Dial == nil {
		opts.Dial = DialEthclient
	}
	if opts.ScryptN == 0 || opts.ScryptP == 0 {
		opts.ScryptN = ethkeystore.StandardScryptN
		opts.ScryptP = ethkeystore.StandardScryptP
	}
	return &Detector{opts: opts}
}

// Detect opens the keystore directory and dials the configured RPC endpoint.
// A missing directory reports domain.ErrProviderNotFound.
func (d *Detector) Detect(ctx context.Context) (ports.WalletProvider, error) {
	info, err := os.Stat(d.opts.Dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: keystore directory %s does not exist", domain.ErrProviderNotFound, d.opts.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("stat keystore directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrProviderNotFound, d.opts.Dir)
	}

	client, err := d.opts.Dial(ctx, d.opts.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial wallet rpc %s: %w", d.opts.RPCURL, err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("read wallet chain id: %w", err)
	}

	ks := ethkeystore.NewKeyStore(d.opts.Dir, d.opts.ScryptN, d.opts.ScryptP)
	klog.Debug("keystore opened", "dir", d.opts.Dir, "chain_id", chainID, "accounts", len(ks.Accounts()))

	return newProvider(ks, d.opts.Account, client, domain.ChainID(chainID.Uint64()), d.opts.Networks, d.opts.Secrets, d.opts.Dial), nil
}
