package application

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
)

const DefaultHistoryLimit = 10

// HistoryService derives history and statistics by walking the contract's
// lotteries. All reads are sequential.
type HistoryService struct {
	reader ports.LotteryReader
}

func NewHistoryService(reader ports.LotteryReader) *HistoryService {
	return &HistoryService{reader: reader}
}

// LotteryHistory returns the completed lotteries among the newest limit
// lotteries, newest first.
func (s *HistoryService) LotteryHistory(ctx context.Context, limit int) ([]domain.Lottery, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	total, err := s.reader.TotalLotteries(ctx)
	if err != nil {
		return nil, fmt.Errorf("lottery history: %w", err)
	}

	var start uint64 = 1
	if total > uint64(limit) {
		start = total - uint64(limit) + 1
	}

	var history []domain.Lottery
	for id := total; id >= start && id > 0; id-- {
		l, err := s.reader.Lottery(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lottery history: %w", err)
		}
		if l.IsCompleted {
			history = append(history, l)
		}
	}
	return history, nil
}

// GlobalStatistics counts every lottery that is not an active draw as
// completed, including ones that ended without being drawn.
func (s *HistoryService) GlobalStatistics(ctx context.Context) (domain.GlobalStatistics, error) {
	total, err := s.reader.TotalLotteries(ctx)
	if err != nil {
		return domain.GlobalStatistics{}, fmt.Errorf("global statistics: %w", err)
	}

	stats := domain.GlobalStatistics{TotalPrizePool: new(big.Int)}
	for id := uint64(1); id <= total; id++ {
		l, err := s.reader.Lottery(ctx, id)
		if err != nil {
			return domain.GlobalStatistics{}, fmt.Errorf("global statistics: %w", err)
		}
		switch {
		case l.IsCompleted:
			stats.Participants += l.TotalTickets
			if l.PrizePool != nil {
				stats.TotalPrizePool.Add(stats.TotalPrizePool, l.PrizePool)
			}
		case l.IsActive:
			stats.ActiveDraws++
		}
	}
	stats.LotteriesCompleted = total - stats.ActiveDraws
	return stats, nil
}

func (s *HistoryService) UserStatistics(ctx context.Context, account common.Address) (domain.UserStatistics, error) {
	if account == (common.Address{}) {
		return domain.UserStatistics{}, fmt.Errorf("user statistics: %w", domain.ErrNotConnected)
	}

	total, err := s.reader.TotalLotteries(ctx)
	if err != nil {
		return domain.UserStatistics{}, fmt.Errorf("user statistics: %w", err)
	}

	stats := domain.UserStatistics{Account: account, TotalWinnings: new(big.Int)}
	for id := uint64(1); id <= total; id++ {
		count, err := s.reader.UserTicketCount(ctx, id, account)
		if err != nil {
			return domain.UserStatistics{}, fmt.Errorf("user statistics: %w", err)
		}
		if count == 0 {
			continue
		}
		stats.Participations++
		stats.TicketsPurchased += count

		l, err := s.reader.Lottery(ctx, id)
		if err != nil {
			return domain.UserStatistics{}, fmt.Errorf("user statistics: %w", err)
		}
		if l.IsCompleted && l.Winner == account {
			stats.Wins++
			if l.PrizePool != nil {
				stats.TotalWinnings.Add(stats.TotalWinnings, l.PrizePool)
			}
		}
	}
	return stats, nil
}
