package testchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

type callArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value"`
	Data  *hexutil.Bytes  `json:"data"`
	Input *hexutil.Bytes  `json:"input"`
}

func (a callArgs) data() []byte {
	if a.Input != nil {
		return *a.Input
	}
	if a.Data != nil {
		return *a.Data
	}
	return nil
}

func (a callArgs) value() *big.Int {
	if a.Value == nil {
		return new(big.Int)
	}
	return a.Value.ToInt()
}

type filterCriteria struct {
	Addresses []common.Address `json:"address"`
	Topics    [][]common.Hash  `json:"topics"`
}

func (f filterCriteria) matches(lg types.Log) bool {
	if len(f.Addresses) > 0 {
		found := false
		for _, addr := range f.Addresses {
			if addr == lg.Address {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for i, alternatives := range f.Topics {
		if len(alternatives) == 0 {
			continue
		}
		if i >= len(lg.Topics) {
			return false
		}
		found := false
		for _, topic := range alternatives {
			if topic == lg.Topics[i] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type ethAPI struct {
	chain *Chain
}

func (api *ethAPI) ChainId() *hexutil.Big {
	return (*hexutil.Big)(new(big.Int).Set(api.chain.chainID))
}

func (api *ethAPI) BlockNumber() hexutil.Uint64 {
	api.chain.mu.Lock()
	defer api.chain.mu.Unlock()
	return hexutil.Uint64(api.chain.block)
}

func (api *ethAPI) GetBalance(account common.Address, _ string) *hexutil.Big {
	return (*hexutil.Big)(api.chain.Balance(account))
}

func (api *ethAPI) GetTransactionCount(account common.Address, _ string) hexutil.Uint64 {
	api.chain.mu.Lock()
	defer api.chain.mu.Unlock()
	return hexutil.Uint64(api.chain.nonces[account])
}

func (api *ethAPI) MaxPriorityFeePerGas() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(1_000_000_000))
}

func (api *ethAPI) GasPrice() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(2_000_000_000))
}

func (api *ethAPI) GetBlockByNumber(_ string, _ bool) *types.Header {
	api.chain.mu.Lock()
	defer api.chain.mu.Unlock()
	return &types.Header{
		Number:     new(big.Int).SetUint64(api.chain.block),
		Difficulty: new(big.Int),
		GasLimit:   30_000_000,
		BaseFee:    big.NewInt(1_000_000_000),
		Extra:      []byte{},
		Time:       uint64(api.chain.now().Unix()),
	}
}

func (api *ethAPI) Call(args callArgs, _ *string) (hexutil.Bytes, error) {
	var from common.Address
	if args.From != nil {
		from = *args.From
	}
	return api.chain.call(from, args.data())
}

func (api *ethAPI) EstimateGas(args callArgs, _ *string) (hexutil.Uint64, error) {
	gas, err := api.chain.estimate(args.data())
	return hexutil.Uint64(gas), err
}

func (api *ethAPI) SendRawTransaction(encoded hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(encoded); err != nil {
		return common.Hash{}, fmt.Errorf("decode transaction: %w", err)
	}

	signer := types.LatestSignerForChainID(api.chain.chainID)
	from, err := types.Sender(signer, tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("recover sender: %w", err)
	}
	if tx.ChainId().Cmp(api.chain.chainID) != 0 {
		return common.Hash{}, fmt.Errorf("invalid chain id %v", tx.ChainId())
	}

	var to common.Address
	if tx.To() != nil {
		to = *tx.To()
	}
	return api.chain.execute(from, to, tx.Value(), tx.Data(), tx.Hash())
}

func (api *ethAPI) GetTransactionReceipt(hash common.Hash) *types.Receipt {
	api.chain.mu.Lock()
	defer api.chain.mu.Unlock()
	if api.chain.holdReceipts {
		return nil
	}
	return api.chain.receipts[hash]
}

// Logs serves eth_subscribe("logs").
func (api *ethAPI) Logs(ctx context.Context, crit filterCriteria) (*rpc.Subscription, error) {
	notifier, ok := rpc.NotifierFromContext(ctx)
	if !ok {
		return nil, rpc.ErrNotificationsUnsupported
	}

	sub := notifier.CreateSubscription()
	logs := make(chan types.Log, 16)
	feedSub := api.chain.logFeed.Subscribe(logs)

	go func() {
		defer feedSub.Unsubscribe()
		for {
			select {
			case lg := <-logs:
				if crit.matches(lg) {
					_ = notifier.Notify(sub.ID, lg)
				}
			case <-sub.Err():
				return
			}
		}
	}()

	return sub, nil
}

type netAPI struct {
	chain *Chain
}

func (api *netAPI) Version() string {
	return api.chain.chainID.String()
}
