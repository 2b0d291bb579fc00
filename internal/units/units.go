// Package units converts between wei amounts and human readable token
// strings.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const EtherDecimals = 18

var ErrInvalidAmount = errors.New("invalid amount")

func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// FormatFixed renders value with exactly places fractional digits.
func FormatFixed(value *big.Int, decimals uint8, places int32) string {
	if value == nil {
		value = new(big.Int)
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).StringFixed(places)
}

func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, amount, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, amount)
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidAmount, amount, decimals)
	}
	return scaled.BigInt(), nil
}

func ParseEther(amount string) (*big.Int, error) {
	return ParseUnits(amount, EtherDecimals)
}

// ShortAddress renders an address as 0x1234...abcd.
func ShortAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "..." + hex[len(hex)-4:]
}
