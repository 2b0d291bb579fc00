package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToNexusTestnet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, domain.NexusTestnet(), cfg.Network)
	assert.Equal(t, common.HexToAddress(DefaultContractAddress), cfg.ContractAddress)
	assert.Equal(t, ProviderKeystore, cfg.Wallet.Provider)
	assert.Equal(t, filepath.Join(home, ".config", "nxl", "keystore"), cfg.Wallet.KeystoreDir)
	assert.Equal(t, "https://testnet3.rpc.nexus.xyz", cfg.Wallet.RPCURL)
	assert.Equal(t, "20000000000", cfg.Gas.MaxFeePerGas.String())
	assert.Equal(t, "2000000000", cfg.Gas.MaxPriorityFeePerGas.String())
	assert.Equal(t, uint64(20), cfg.Gas.LimitMarginPercent)
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, SecretsAuto, cfg.SecretsBackend)
	assert.Empty(t, cfg.ConfigFileUsed)
}

func TestLoadReadsConfigFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NXL_LOG_LEVEL", "debug")

	dir := filepath.Join(home, ".config", "nxl")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[wallet]
provider = "remote"
remote_url = "http://127.0.0.1:9545"
account = "0x1000000000000000000000000000000000000001"

[gas]
limit_margin_percent = 50

[notifications]
ttl = "10s"

[secrets]
backend = "File"
`), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderRemote, cfg.Wallet.Provider)
	assert.Equal(t, "http://127.0.0.1:9545", cfg.Wallet.RemoteURL)
	assert.Equal(t, common.HexToAddress("0x1000000000000000000000000000000000000001"), cfg.Wallet.Account)
	assert.Equal(t, uint64(50), cfg.Gas.LimitMarginPercent)
	assert.Equal(t, 10*time.Second, cfg.NotificationTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, SecretsFile, cfg.SecretsBackend)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.ConfigFileUsed)
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "provider", env: map[string]string{"NXL_WALLET_PROVIDER": "metamask"}, want: "unsupported provider"},
		{name: "contract", env: map[string]string{"NXL_CONTRACT_ADDRESS": "0x123"}, want: "invalid address"},
		{name: "chain id", env: map[string]string{"NXL_NETWORK_CHAIN_ID": "nexus"}, want: "network.chain_id"},
		{name: "fee", env: map[string]string{"NXL_GAS_MAX_FEE_PER_GAS": "-5"}, want: "invalid wei amount"},
		{name: "tip above fee", env: map[string]string{"NXL_GAS_MAX_PRIORITY_FEE_PER_GAS": "30000000000"}, want: "exceeds"},
		{name: "secrets backend", env: map[string]string{"NXL_SECRETS_BACKEND": "vault"}, want: "unsupported backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
