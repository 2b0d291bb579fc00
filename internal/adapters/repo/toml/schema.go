package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Networks []networkSchema `toml:"networks"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported networks schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type networkSchema struct {
	ChainID      uint64         `toml:"chain_id"`
	Name         string         `toml:"name"`
	Currency     currencySchema `toml:"currency"`
	RPCURLs      []string       `toml:"rpc_urls"`
	WSURLs       []string       `toml:"ws_urls,omitempty"`
	ExplorerURLs []string       `toml:"explorer_urls,omitempty"`
	FaucetURL    string         `toml:"faucet_url,omitempty"`
}

type currencySchema struct {
	Name     string `toml:"name"`
	Symbol   string `toml:"symbol"`
	Decimals uint8  `toml:"decimals"`
}
