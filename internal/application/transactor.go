package application

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
)

const DefaultGasLimitMarginPercent = 20

var (
	DefaultMaxFeePerGas         = big.NewInt(20_000_000_000)
	DefaultMaxPriorityFeePerGas = big.NewInt(2_000_000_000)
)

// GasPolicy sets the fee caps and the safety margin applied on top of the
// node's gas estimate.
type GasPolicy struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	LimitMarginPercent   uint64
}

func DefaultGasPolicy() GasPolicy {
	return GasPolicy{
		MaxFeePerGas:         new(big.Int).Set(DefaultMaxFeePerGas),
		MaxPriorityFeePerGas: new(big.Int).Set(DefaultMaxPriorityFeePerGas),
		LimitMarginPercent:   DefaultGasLimitMarginPercent,
	}
}

// GasLimit inflates estimate by the margin, rounding down.
func (p GasPolicy) GasLimit(estimate uint64) uint64 {
	return estimate * (100 + p.LimitMarginPercent) / 100
}

type txAction struct {
	verb    string
	success string
}

var txActions = map[string]txAction{
	"buyTickets":         {verb: "buy tickets", success: "Tickets purchased successfully!"},
	"withdrawWinnings":   {verb: "withdraw winnings", success: "Winnings withdrawn successfully!"},
	"completeLottery":    {verb: "complete lottery", success: "Lottery completed successfully!"},
	"createLottery":      {verb: "create lottery", success: "Lottery created successfully!"},
	"pause":              {verb: "pause lottery", success: "Lottery paused"},
	"unpause":            {verb: "unpause lottery", success: "Lottery unpaused"},
	"withdrawOwnerFunds": {verb: "withdraw owner funds", success: "Owner funds withdrawn successfully!"},
}

func actionFor(method string) txAction {
	if action, ok := txActions[method]; ok {
		return action
	}
	return txAction{verb: method, success: "Transaction confirmed"}
}

// transactor estimates, prices and submits contract writes through the
// connected wallet.
type transactor struct {
	contract ports.LotteryContract
	sender   ports.TxSender
	gas      GasPolicy
}

func (t transactor) submit(ctx context.Context, call domain.ContractCall) (domain.PendingTx, error) {
	estimate, err := t.contract.EstimateGas(ctx, call)
	if err != nil {
		return domain.PendingTx{}, err
	}

	opts := domain.TxOptions{
		GasLimit:  t.gas.GasLimit(estimate),
		GasFeeCap: t.gas.MaxFeePerGas,
		GasTipCap: t.gas.MaxPriorityFeePerGas,
	}
	pending, err := t.contract.Submit(ctx, t.sender, call, opts)
	if err != nil {
		return domain.PendingTx{}, fmt.Errorf("submit %s: %w", call.Method, err)
	}
	return pending, nil
}
