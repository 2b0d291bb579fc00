package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set("networks.path", path)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func localNetwork(id domain.ChainID) domain.Network {
	return domain.Network{
		ChainID:  id,
		Name:     "Local " + id.String(),
		Currency: domain.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCURLs:  []string{"http://127.0.0.1:8545"},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "networks.toml"))

	nexus := domain.NexusTestnet()
	local := localNetwork(31337)

	require.NoError(t, repo.Save(context.Background(), nexus))
	require.NoError(t, repo.Save(context.Background(), local))

	got, err := repo.Get(context.Background(), nexus.ChainID)
	require.NoError(t, err)
	assert.Equal(t, nexus, got)

	networks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Network{nexus, local}, networks)
}

func TestRepositorySaveReplacesExistingChain(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "networks.toml"))

	network := localNetwork(31337)
	require.NoError(t, repo.Save(context.Background(), network))

	network.RPCURLs = []string{"http://127.0.0.1:9545"}
	require.NoError(t, repo.Save(context.Background(), network))

	networks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, "http://127.0.0.1:9545", networks[0].PrimaryRPC())
}

func TestRepositorySaveRejectsInvalidNetwork(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "networks.toml"))

	err := repo.Save(context.Background(), domain.Network{ChainID: 5})
	require.Error(t, err)
	assert.ErrorContains(t, err, "save network")
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.NexusTestnet()))

	networksPath := filepath.Join(homeDir, ".config", "nxl", "networks.toml")
	assert.Equal(t, networksPath, repo.Path())
	info, err := os.Stat(networksPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "networks.toml"))

	networks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, networks)

	_, err = repo.Get(context.Background(), 3940)
	require.ErrorIs(t, err, domain.ErrNetworkNotFound)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	networksPath := filepath.Join(t.TempDir(), "networks.toml")
	require.NoError(t, os.WriteFile(networksPath, []byte("networks = ["), 0o600))

	repo := newTestRepository(t, networksPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode networks file")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "networks.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.NexusTestnet())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveAllNetworks(t *testing.T) {
	t.Parallel()

	networksPath := filepath.Join(t.TempDir(), "networks.toml")
	repoA := newTestRepository(t, networksPath)
	repoB := newTestRepository(t, networksPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 1; i <= perRepoWrites; i++ {
			errCh <- repoA.Save(context.Background(), localNetwork(domain.ChainID(i)))
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 1; i <= perRepoWrites; i++ {
			errCh <- repoB.Save(context.Background(), localNetwork(domain.ChainID(1000+i)))
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	networks, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, networks, perRepoWrites*2)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	networksPath := filepath.Join(t.TempDir(), "networks.toml")
	repo := newTestRepository(t, networksPath)

	require.NoError(t, repo.Save(context.Background(), domain.NexusTestnet()))

	data, err := os.ReadFile(networksPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "chain_id = 3940")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	networksPath := filepath.Join(t.TempDir(), "networks.toml")
	require.NoError(t, os.WriteFile(networksPath, []byte(strings.Join([]string{
		"version = 999",
		"",
		"networks = []",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, networksPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported networks schema version")
}
