package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/contract/lottery"
	statusadapter "github.com/bnema/nexus-lottery-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/nexus-lottery-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/nexus-lottery-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/nexus-lottery-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/nexus-lottery-cli/internal/adapters/secrets/pass"
	"github.com/bnema/nexus-lottery-cli/internal/adapters/wallet/keystore"
	"github.com/bnema/nexus-lottery-cli/internal/adapters/wallet/remote"
	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/config"
	"github.com/bnema/nexus-lottery-cli/internal/logging"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/ethclient"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

type app struct {
	cfg          config.Config
	networks     *tomlrepo.Repository
	secrets      ports.SecretStore
	client       *ethclient.Client
	contract     *lottery.Contract
	notes        *application.NotificationCenter
	conn         *application.ConnectionManager
	orchestrator *application.SessionOrchestrator
	history      *application.HistoryService
	admin        *application.AdminService
	render       func(application.View, statusadapter.RenderOptions) (string, error)
	now          func() time.Time
}

// wire builds the object graph from configuration. Nothing here talks to the
// network: the RPC client dials lazily and the wallet is only detected on
// Connect.
func (a *app) wire(ctx context.Context, opts rootOptions, console io.Writer) error {
	if a.orchestrator != nil {
		return nil
	}

	v, err := config.NewViper(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		v.Set(config.KeyLogLevel, opts.logLevel)
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Log, console); err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	networks, err := tomlrepo.NewRepository(v)
	if err != nil {
		return fmt.Errorf("wire network registry: %w", err)
	}

	secrets, err := newSecretStore(cfg)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	client, err := ethclient.DialContext(ctx, cfg.Network.PrimaryRPC())
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.Network.PrimaryRPC(), err)
	}

	contract, err := lottery.New(cfg.ContractAddress, client, lottery.WithReceiptPollInterval(cfg.ReceiptPollInterval))
	if err != nil {
		client.Close()
		return fmt.Errorf("wire lottery contract: %w", err)
	}

	clock := ports.SystemClock{}
	notes := application.NewNotificationCenter(clock, cfg.NotificationTTL)
	conn := application.NewConnectionManager(newDetector(cfg, networks, secrets), cfg.Network)
	orchestrator := application.NewSessionOrchestrator(conn, contract, notes, clock, application.GasPolicy{
		MaxFeePerGas:         cfg.Gas.MaxFeePerGas,
		MaxPriorityFeePerGas: cfg.Gas.MaxPriorityFeePerGas,
		LimitMarginPercent:   cfg.Gas.LimitMarginPercent,
	})

	*a = app{
		cfg:          cfg,
		networks:     networks,
		secrets:      secrets,
		client:       client,
		contract:     contract,
		notes:        notes,
		conn:         conn,
		orchestrator: orchestrator,
		history:      application.NewHistoryService(contract),
		admin:        application.NewAdminService(orchestrator),
		render:       statusadapter.Render,
		now:          time.Now,
	}
	return nil
}

func (a *app) close() {
	if a.orchestrator != nil {
		a.orchestrator.Disconnect()
	}
	if a.notes != nil {
		a.notes.Close()
	}
	if a.client != nil {
		a.client.Close()
	}
}

// withTimeout bounds a wallet or RPC round trip by rpc.timeout.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.RPCTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.RPCTimeout)
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	switch cfg.SecretsBackend {
	case config.SecretsFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.SecretsPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir)
	}
}

func newDetector(cfg config.Config, networks ports.NetworkRepository, secrets ports.SecretStore) ports.ProviderDetector {
	if cfg.Wallet.Provider == config.ProviderRemote {
		return remote.NewDetector(remote.Options{
			URL:          cfg.Wallet.RemoteURL,
			PollInterval: cfg.Wallet.PollInterval,
		})
	}

	return keystore.NewDetector(keystore.Options{
		Dir:      cfg.Wallet.KeystoreDir,
		Account:  cfg.Wallet.Account,
		RPCURL:   cfg.Wallet.RPCURL,
		Networks: networks,
		Secrets:  secrets,
	})
}
