// Package rpcerr maps JSON-RPC and EIP-1193 provider errors onto the domain
// error taxonomy.
package rpcerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeChainNotAdded     = 4902
	CodeExecutionReverted = 3
)

// Code returns the JSON-RPC error code carried by err, if any.
func Code(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}

// Classify wraps err with the matching domain sentinel. Errors that do not
// map onto the taxonomy are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if code, ok := Code(err); ok {
		switch code {
		case CodeUserRejected, CodeUnauthorized:
			return fmt.Errorf("%w: %w", domain.ErrTransactionRejected, err)
		case CodeChainNotAdded:
			return fmt.Errorf("%w: %w", domain.ErrChainNotAdded, err)
		case CodeExecutionReverted:
			return fmt.Errorf("%w: %w", domain.ErrTransactionReverted, err)
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "execution reverted") {
		return fmt.Errorf("%w: %w", domain.ErrTransactionReverted, err)
	}

	return err
}
