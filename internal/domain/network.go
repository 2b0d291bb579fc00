package domain

import (
	"fmt"
	"strings"
)

type NativeCurrency struct {
	Name     string
	Symbol   string
	Decimals uint8
}

type Network struct {
	ChainID      ChainID
	Name         string
	Currency     NativeCurrency
	RPCURLs      []string
	WSURLs       []string
	ExplorerURLs []string
	FaucetURL    string
}

func NexusTestnet() Network {
	return Network{
		ChainID: NexusTestnetChainID,
		Name:    "Nexus Testnet III",
		Currency: NativeCurrency{
			Name:     "Nexus",
			Symbol:   "NEX",
			Decimals: 18,
		},
		RPCURLs:      []string{"https://testnet3.rpc.nexus.xyz"},
		WSURLs:       []string{"wss://testnet3.rpc.nexus.xyz"},
		ExplorerURLs: []string{"https://testnet3.explorer.nexus.xyz"},
		FaucetURL:    "https://faucets.alchemy.com/faucets/nexus-testnet",
	}
}

func (n Network) Matches(id ChainID) bool {
	return n.ChainID != 0 && n.ChainID == id
}

func (n Network) PrimaryRPC() string {
	if len(n.RPCURLs) == 0 {
		return ""
	}
	return n.RPCURLs[0]
}

func (n Network) PrimaryExplorer() string {
	if len(n.ExplorerURLs) == 0 {
		return ""
	}
	return strings.TrimRight(n.ExplorerURLs[0], "/")
}

func (n Network) TxURL(hash string) string {
	explorer := n.PrimaryExplorer()
	if explorer == "" {
		return ""
	}
	return explorer + "/tx/" + hash
}

func (n Network) AddressURL(address string) string {
	explorer := n.PrimaryExplorer()
	if explorer == "" {
		return ""
	}
	return explorer + "/address/" + address
}

func (n Network) Validate() error {
	if n.ChainID == 0 {
		return fmt.Errorf("network %q: chain id is required", n.Name)
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("network %s: name is required", n.ChainID)
	}
	if n.PrimaryRPC() == "" {
		return fmt.Errorf("network %s: at least one rpc url is required", n.ChainID)
	}
	if n.Currency.Symbol == "" {
		return fmt.Errorf("network %s: currency symbol is required", n.ChainID)
	}
	return nil
}
