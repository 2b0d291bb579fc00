package application

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// AdminService exposes the owner-only contract operations. Each write checks
// ownership before anything is signed.
type AdminService struct {
	orchestrator *SessionOrchestrator
}

func NewAdminService(orchestrator *SessionOrchestrator) *AdminService {
	return &AdminService{orchestrator: orchestrator}
}

// IsOwner reports whether account owns the contract. The zero address
// checks the session account.
func (s *AdminService) IsOwner(ctx context.Context, account common.Address) (bool, error) {
	if account == (common.Address{}) {
		session := s.orchestrator.conn.Session()
		if !session.Connected {
			return false, fmt.Errorf("check owner: %w", domain.ErrNotConnected)
		}
		account = session.Account
	}

	owner, err := s.orchestrator.contract.Owner(ctx)
	if err != nil {
		return false, fmt.Errorf("check owner: %w", err)
	}
	return owner == account, nil
}

func (s *AdminService) Paused(ctx context.Context) (bool, error) {
	paused, err := s.orchestrator.contract.Paused(ctx)
	if err != nil {
		return false, fmt.Errorf("read paused: %w", err)
	}
	return paused, nil
}

func (s *AdminService) CreateLottery(ctx context.Context, cmd CreateLotteryCommand) (domain.PendingTx, error) {
	if cmd.TicketPrice == nil || cmd.TicketPrice.Sign() <= 0 {
		return domain.PendingTx{}, fmt.Errorf("create lottery: ticket price must be positive")
	}
	if cmd.MaxTickets == 0 {
		return domain.PendingTx{}, fmt.Errorf("create lottery: max tickets must be positive")
	}
	if cmd.DurationSeconds().Sign() <= 0 {
		return domain.PendingTx{}, fmt.Errorf("create lottery: duration must be at least one second")
	}

	return s.ownerWrite(ctx, domain.ContractCall{
		Method: "createLottery",
		Args:   []any{cmd.TicketPrice, new(big.Int).SetUint64(cmd.MaxTickets), cmd.DurationSeconds()},
	})
}

func (s *AdminService) Pause(ctx context.Context) (domain.PendingTx, error) {
	return s.ownerWrite(ctx, domain.ContractCall{Method: "pause"})
}

func (s *AdminService) Unpause(ctx context.Context) (domain.PendingTx, error) {
	return s.ownerWrite(ctx, domain.ContractCall{Method: "unpause"})
}

func (s *AdminService) WithdrawOwnerFunds(ctx context.Context) (domain.PendingTx, error) {
	return s.ownerWrite(ctx, domain.ContractCall{Method: "withdrawOwnerFunds"})
}

func (s *AdminService) ownerWrite(ctx context.Context, call domain.ContractCall) (domain.PendingTx, error) {
	verb := actionFor(call.Method).verb

	session, err := s.orchestrator.requireReady()
	if err != nil {
		return domain.PendingTx{}, s.orchestrator.fail(verb, err)
	}
	owner, err := s.IsOwner(ctx, session.Account)
	if err != nil {
		return domain.PendingTx{}, s.orchestrator.fail(verb, err)
	}
	if !owner {
		return domain.PendingTx{}, s.orchestrator.fail(verb, domain.ErrNotOwner)
	}

	return s.orchestrator.write(ctx, call)
}

// Await waits for an admin transaction and reloads lottery data.
func (s *AdminService) Await(ctx context.Context, pending domain.PendingTx) (domain.Receipt, error) {
	return s.orchestrator.Await(ctx, pending)
}
