package status

import (
	"fmt"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/units"
	"github.com/charmbracelet/lipgloss"
)

// RenderHistory lists completed lotteries, newest first.
func RenderHistory(history []domain.Lottery, network domain.Network) (string, error) {
	return run(func(s styles) string {
		lines := []string{
			s.title.Render("Lottery History"),
			s.header.Render(fmt.Sprintf("completed: %d", len(history))),
		}
		if len(history) == 0 {
			lines = append(lines, s.empty.Render("No completed lotteries yet."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, l := range history {
			entry := lipgloss.JoinVertical(lipgloss.Left,
				s.account.Render(fmt.Sprintf("Lottery #%d", l.ID)),
				s.detail.Render(fmt.Sprintf("winner: %s", units.ShortAddress(l.Winner))),
				s.detail.Render(fmt.Sprintf("prize: %s  tickets: %d", formatAmount(l.PrizePool, network.Currency.Symbol), l.TotalTickets)),
			)
			lines = append(lines, s.section.Render(entry))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func RenderGlobalStatistics(stats domain.GlobalStatistics, network domain.Network) (string, error) {
	return run(func(s styles) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Lottery Statistics"),
			s.detail.Render(fmt.Sprintf("lotteries completed: %d", stats.LotteriesCompleted)),
			s.detail.Render(fmt.Sprintf("participants: %d", stats.Participants)),
			s.detail.Render(fmt.Sprintf("total prize pool: %s", formatAmount(stats.TotalPrizePool, network.Currency.Symbol))),
			s.detail.Render(fmt.Sprintf("active draws: %d", stats.ActiveDraws)),
		)
	})
}

func RenderUserStatistics(stats domain.UserStatistics, network domain.Network) (string, error) {
	return run(func(s styles) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Player Statistics"),
			s.account.Render(units.ShortAddress(stats.Account)),
			s.detail.Render(fmt.Sprintf("participations: %d", stats.Participations)),
			s.detail.Render(fmt.Sprintf("tickets purchased: %d", stats.TicketsPurchased)),
			s.detail.Render(fmt.Sprintf("wins: %d", stats.Wins)),
			s.detail.Render(fmt.Sprintf("total winnings: %s", formatAmount(stats.TotalWinnings, network.Currency.Symbol))),
		)
	})
}
