package ports

import (
	"context"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
)

type NetworkRepository interface {
	Get(ctx context.Context, id domain.ChainID) (domain.Network, error)
	List(ctx context.Context) ([]domain.Network, error)
	Save(ctx context.Context, network domain.Network) error
}
