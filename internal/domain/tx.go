package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ContractCall names a lottery contract method together with its arguments
// and the native value attached to it.
type ContractCall struct {
	Method string
	Args   []any
	From   common.Address
	Value  *big.Int
}

type TxOptions struct {
	GasLimit  uint64
	GasFeeCap *big.Int
	GasTipCap *big.Int
}

type TxRequest struct {
	From      common.Address
	To        common.Address
	Value     *big.Int
	Data      []byte
	Gas       uint64
	GasFeeCap *big.Int
	GasTipCap *big.Int
}

type PendingTx struct {
	Hash     common.Hash
	From     common.Address
	Method   string
	Value    *big.Int
	GasLimit uint64
}

type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Status      uint64
}

func (r Receipt) Succeeded() bool {
	return r.Status == 1
}
