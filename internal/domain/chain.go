package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ChainID is the canonical numeric form of an EVM chain identifier. Wallets
// report it as a hex string, a decimal string or a number; all of them are
// normalized through ParseChainID before comparison.
type ChainID uint64

const NexusTestnetChainID ChainID = 3940

func ParseChainID(v any) (ChainID, error) {
	switch id := v.(type) {
	case ChainID:
		return id, nil
	case int:
		if id < 0 {
			return 0, fmt.Errorf("parse chain id: negative value %d", id)
		}
		return ChainID(id), nil
	case int64:
		if id < 0 {
			return 0, fmt.Errorf("parse chain id: negative value %d", id)
		}
		return ChainID(id), nil
	case uint64:
		return ChainID(id), nil
	case uint:
		return ChainID(id), nil
	case *big.Int:
		if id == nil || id.Sign() < 0 || !id.IsUint64() {
			return 0, fmt.Errorf("parse chain id: out of range value %v", id)
		}
		return ChainID(id.Uint64()), nil
	case string:
		return parseChainIDString(id)
	default:
		return 0, fmt.Errorf("parse chain id: unsupported type %T", v)
	}
}

func parseChainIDString(raw string) (ChainID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("parse chain id: empty value")
	}

	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}

	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chain id %q: %w", raw, err)
	}
	return ChainID(n), nil
}

// IsCorrectNetwork reports whether v identifies the Nexus testnet in any of
// the accepted encodings.
func IsCorrectNetwork(v any) bool {
	id, err := ParseChainID(v)
	return err == nil && id == NexusTestnetChainID
}

func (c ChainID) Hex() string {
	return "0x" + strconv.FormatUint(uint64(c), 16)
}

func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

func (c ChainID) BigInt() *big.Int {
	return new(big.Int).SetUint64(uint64(c))
}
