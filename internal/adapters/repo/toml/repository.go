package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	networksPathKey    = "networks.path"
	networksFileMode   = 0o600
	networksDirMode    = 0o700
	networksConfigDir  = ".config/nxl"
	networksConfigFile = "networks.toml"
	tempFilePattern    = ".networks-*.toml.tmp"
)

// Repository is the registry of networks the local wallet knows how to
// reach. It plays the role of a browser wallet's list of added chains.
type Repository struct {
	networksPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.NetworkRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(networksPathKey, filepath.Join(homeDir, networksConfigDir, networksConfigFile))

	networksPath := cfg.GetString(networksPathKey)
	if networksPath == "" {
		return nil, errors.New("networks path is empty")
	}
	networksPath, err = normalizePath(networksPath)
	if err != nil {
		return nil, err
	}

	return &Repository{networksPath: networksPath, mu: lockForPath(networksPath)}, nil
}

func (r *Repository) Path() string {
	return r.networksPath
}

func (r *Repository) Save(ctx context.Context, network domain.Network) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := network.Validate(); err != nil {
		return fmt.Errorf("save network: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(network)
	updated := false
	for i := range file.Networks {
		if file.Networks[i].ChainID == encoded.ChainID {
			file.Networks[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Networks = append(file.Networks, encoded)
	}
	sort.Slice(file.Networks, func(i, j int) bool {
		return file.Networks[i].ChainID < file.Networks[j].ChainID
	})

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Get(ctx context.Context, id domain.ChainID) (domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return domain.Network{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Network{}, err
	}

	for _, entry := range file.Networks {
		if entry.ChainID == uint64(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Network{}, fmt.Errorf("%w: chain %s", domain.ErrNetworkNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	networks := make([]domain.Network, 0, len(file.Networks))
	for _, entry := range file.Networks {
		networks = append(networks, fromSchema(entry))
	}

	return networks, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.networksPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read networks file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode networks file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve networks path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.networksPath), networksDirMode); err != nil {
		return fmt.Errorf("create networks directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode networks file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.networksPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp networks file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp networks file: %w", err)
	}
	if err := tempFile.Chmod(networksFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp networks file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp networks file: %w", err)
	}
	if err := os.Rename(tempName, r.networksPath); err != nil {
		return fmt.Errorf("replace networks file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(network domain.Network) networkSchema {
	return networkSchema{
		ChainID: uint64(network.ChainID),
		Name:    network.Name,
		Currency: currencySchema{
			Name:     network.Currency.Name,
			Symbol:   network.Currency.Symbol,
			Decimals: network.Currency.Decimals,
		},
		RPCURLs:      network.RPCURLs,
		WSURLs:       network.WSURLs,
		ExplorerURLs: network.ExplorerURLs,
		FaucetURL:    network.FaucetURL,
	}
}

func fromSchema(entry networkSchema) domain.Network {
	return domain.Network{
		ChainID: domain.ChainID(entry.ChainID),
		Name:    entry.Name,
		Currency: domain.NativeCurrency{
			Name:     entry.Currency.Name,
			Symbol:   entry.Currency.Symbol,
			Decimals: entry.Currency.Decimals,
		},
		RPCURLs:      entry.RPCURLs,
		WSURLs:       entry.WSURLs,
		ExplorerURLs: entry.ExplorerURLs,
		FaucetURL:    entry.FaucetURL,
	}
}
