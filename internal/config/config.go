package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "NXL"
	appDir     = "nxl"

	ProviderKeystore = "keystore"
	ProviderRemote   = "remote"

	SecretsAuto = "auto"
	SecretsPass = "pass"
	SecretsFile = "file"

	DefaultContractAddress = "0xCAfEBc845Ad14d60174f3E87A9A01ccE135D58cf"
)

const (
	KeyNetworkChainID          = "network.chain_id"
	KeyNetworkName             = "network.name"
	KeyNetworkCurrencyName     = "network.currency.name"
	KeyNetworkCurrencySymbol   = "network.currency.symbol"
	KeyNetworkCurrencyDecimals = "network.currency.decimals"
	KeyNetworkRPCURLs          = "network.rpc_urls"
	KeyNetworkWSURLs           = "network.ws_urls"
	KeyNetworkExplorerURLs     = "network.explorer_urls"
	KeyNetworkFaucetURL        = "network.faucet_url"
	KeyContractAddress         = "contract.address"
	KeyWalletProvider          = "wallet.provider"
	KeyWalletKeystoreDir       = "wallet.keystore_dir"
	KeyWalletRPCURL            = "wallet.rpc_url"
	KeyWalletRemoteURL         = "wallet.remote_url"
	KeyWalletAccount           = "wallet.account"
	KeyWalletPollInterval      = "wallet.poll_interval"
	KeyGasMaxFeePerGas         = "gas.max_fee_per_gas"
	KeyGasMaxPriorityFeePerGas = "gas.max_priority_fee_per_gas"
	KeyGasLimitMarginPercent   = "gas.limit_margin_percent"
	KeyRPCTimeout              = "rpc.timeout"
	KeyRPCReceiptPollInterval  = "rpc.receipt_poll_interval"
	KeyNotificationsTTL        = "notifications.ttl"
	KeyLogLevel                = "log.level"
	KeyLogFile                 = "log.file"
	KeyLogFileLevel            = "log.file_level"
	KeyLogMaxSizeMB            = "log.max_size_mb"
	KeyLogMaxBackups           = "log.max_backups"
	KeyLogMaxAgeDays           = "log.max_age_days"
	KeyLogCompress             = "log.compress"
	KeyNetworksPath            = "networks.path"
	KeySecretsDir              = "secrets.dir"
	KeySecretsBackend          = "secrets.backend"
	KeyFeedListen              = "feed.listen"
)

type Wallet struct {
	Provider     string
	KeystoreDir  string
	RPCURL       string
	RemoteURL    string
	Account      common.Address
	PollInterval time.Duration
}

type Gas struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	LimitMarginPercent   uint64
}

type Config struct {
	Network             domain.Network
	ContractAddress     common.Address
	Wallet              Wallet
	Gas                 Gas
	RPCTimeout          time.Duration
	ReceiptPollInterval time.Duration
	NotificationTTL     time.Duration
	Log                 logging.Config
	NetworksPath        string
	SecretsDir          string
	SecretsBackend      string
	FeedListen          string
	ConfigFileUsed      string
}

// Dir returns the nxl configuration directory under the user's home.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDir), nil
}

// NewViper prepares a viper instance with defaults, NXL_* environment
// overrides and the config file, if any. An explicit configFile must exist.
func NewViper(configFile string) (*viper.Viper, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

func Load(configFile string) (Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	network := domain.Network{
		Name: v.GetString(KeyNetworkName),
		Currency: domain.NativeCurrency{
			Name:     v.GetString(KeyNetworkCurrencyName),
			Symbol:   v.GetString(KeyNetworkCurrencySymbol),
			Decimals: uint8(v.GetUint(KeyNetworkCurrencyDecimals)),
		},
		RPCURLs:      v.GetStringSlice(KeyNetworkRPCURLs),
		WSURLs:       v.GetStringSlice(KeyNetworkWSURLs),
		ExplorerURLs: v.GetStringSlice(KeyNetworkExplorerURLs),
		FaucetURL:    v.GetString(KeyNetworkFaucetURL),
	}
	chainID, err := domain.ParseChainID(v.GetString(KeyNetworkChainID))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", KeyNetworkChainID, err)
	}
	network.ChainID = chainID
	if err := network.Validate(); err != nil {
		return Config{}, fmt.Errorf("config network: %w", err)
	}

	contract, err := parseAddress(KeyContractAddress, v.GetString(KeyContractAddress), true)
	if err != nil {
		return Config{}, err
	}
	account, err := parseAddress(KeyWalletAccount, v.GetString(KeyWalletAccount), false)
	if err != nil {
		return Config{}, err
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString(KeyWalletProvider)))
	if provider != ProviderKeystore && provider != ProviderRemote {
		return Config{}, fmt.Errorf("config %s: unsupported provider %q", KeyWalletProvider, provider)
	}

	secretsBackend := strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend)))
	switch secretsBackend {
	case SecretsAuto, SecretsPass, SecretsFile:
	default:
		return Config{}, fmt.Errorf("config %s: unsupported backend %q", KeySecretsBackend, secretsBackend)
	}

	maxFee, err := parseWei(KeyGasMaxFeePerGas, v.GetString(KeyGasMaxFeePerGas))
	if err != nil {
		return Config{}, err
	}
	maxTip, err := parseWei(KeyGasMaxPriorityFeePerGas, v.GetString(KeyGasMaxPriorityFeePerGas))
	if err != nil {
		return Config{}, err
	}
	if maxTip.Cmp(maxFee) > 0 {
		return Config{}, fmt.Errorf("config %s exceeds %s", KeyGasMaxPriorityFeePerGas, KeyGasMaxFeePerGas)
	}

	rpcURL := v.GetString(KeyWalletRPCURL)
	if rpcURL == "" {
		rpcURL = network.PrimaryRPC()
	}

	return Config{
		Network:         network,
		ContractAddress: contract,
		Wallet: Wallet{
			Provider:     provider,
			KeystoreDir:  v.GetString(KeyWalletKeystoreDir),
			RPCURL:       rpcURL,
			RemoteURL:    v.GetString(KeyWalletRemoteURL),
			Account:      account,
			PollInterval: v.GetDuration(KeyWalletPollInterval),
		},
		Gas: Gas{
			MaxFeePerGas:         maxFee,
			MaxPriorityFeePerGas: maxTip,
			LimitMarginPercent:   v.GetUint64(KeyGasLimitMarginPercent),
		},
		RPCTimeout:          v.GetDuration(KeyRPCTimeout),
		ReceiptPollInterval: v.GetDuration(KeyRPCReceiptPollInterval),
		NotificationTTL:     v.GetDuration(KeyNotificationsTTL),
		Log: logging.Config{
			Level:      v.GetString(KeyLogLevel),
			File:       v.GetString(KeyLogFile),
			FileLevel:  v.GetString(KeyLogFileLevel),
			MaxSizeMB:  v.GetInt(KeyLogMaxSizeMB),
			MaxBackups: v.GetInt(KeyLogMaxBackups),
			MaxAgeDays: v.GetInt(KeyLogMaxAgeDays),
			Compress:   v.GetBool(KeyLogCompress),
		},
		NetworksPath:   v.GetString(KeyNetworksPath),
		SecretsDir:     v.GetString(KeySecretsDir),
		SecretsBackend: secretsBackend,
		FeedListen:     v.GetString(KeyFeedListen),
		ConfigFileUsed: v.ConfigFileUsed(),
	}, nil
}

func setDefaults(v *viper.Viper, dir string) {
	nexus := domain.NexusTestnet()

	v.SetDefault(KeyNetworkChainID, nexus.ChainID.String())
	v.SetDefault(KeyNetworkName, nexus.Name)
	v.SetDefault(KeyNetworkCurrencyName, nexus.Currency.Name)
	v.SetDefault(KeyNetworkCurrencySymbol, nexus.Currency.Symbol)
	v.SetDefault(KeyNetworkCurrencyDecimals, nexus.Currency.Decimals)
	v.SetDefault(KeyNetworkRPCURLs, nexus.RPCURLs)
	v.SetDefault(KeyNetworkWSURLs, nexus.WSURLs)
	v.SetDefault(KeyNetworkExplorerURLs, nexus.ExplorerURLs)
	v.SetDefault(KeyNetworkFaucetURL, nexus.FaucetURL)
	v.SetDefault(KeyContractAddress, DefaultContractAddress)
	v.SetDefault(KeyWalletProvider, ProviderKeystore)
	v.SetDefault(KeyWalletKeystoreDir, filepath.Join(dir, "keystore"))
	v.SetDefault(KeyWalletRPCURL, "")
	v.SetDefault(KeyWalletRemoteURL, "http://127.0.0.1:8545")
	v.SetDefault(KeyWalletAccount, "")
	v.SetDefault(KeyWalletPollInterval, 2*time.Second)
	v.SetDefault(KeyGasMaxFeePerGas, "20000000000")
	v.SetDefault(KeyGasMaxPriorityFeePerGas, "2000000000")
	v.SetDefault(KeyGasLimitMarginPercent, 20)
	v.SetDefault(KeyRPCTimeout, 30*time.Second)
	v.SetDefault(KeyRPCReceiptPollInterval, 2*time.Second)
	v.SetDefault(KeyNotificationsTTL, 5*time.Second)
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogFileLevel, "info")
	v.SetDefault(KeyLogMaxSizeMB, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
	v.SetDefault(KeyLogMaxAgeDays, 28)
	v.SetDefault(KeyLogCompress, true)
	v.SetDefault(KeyNetworksPath, filepath.Join(dir, "networks.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeySecretsBackend, SecretsAuto)
	v.SetDefault(KeyFeedListen, "127.0.0.1:8787")
}

func parseAddress(key, raw string, required bool) (common.Address, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if required {
			return common.Address{}, fmt.Errorf("config %s: address is required", key)
		}
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("config %s: invalid address %q", key, raw)
	}
	return common.HexToAddress(s), nil
}

func parseWei(key, raw string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok || n.Sign() <= 0 {
		return nil, fmt.Errorf("config %s: invalid wei amount %q", key, raw)
	}
	return n, nil
}
