// Package status renders the session view and lottery history for the
// terminal.
package status

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/units"
	"github.com/charmbracelet/lipgloss"
)

const ticketBarWidth = 24

type RenderOptions struct {
	Now time.Time
}

// Render draws the full session view.
func Render(view application.View, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderView(view, opts, s)
	})
}

func renderView(view application.View, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Nexus Lottery"),
		s.header.Render(fmt.Sprintf("network: %s (%s)", view.Network.Name, view.Network.ChainID)),
		renderSession(view, s),
	}

	lines = append(lines, s.section.Render(renderLottery(view, opts, s)))
	lines = append(lines, renderBuy(view, s))

	if view.Position.Known {
		lines = append(lines, s.section.Render(renderPosition(view, s)))
	}

	if links := renderLinks(view.Network, s); links != "" {
		lines = append(lines, s.section.Render(links))
	}

	if len(view.Notifications) > 0 {
		lines = append(lines, s.section.Render(renderNotifications(view.Notifications, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(view application.View, s styles) string {
	symbol := view.Network.Currency.Symbol

	switch view.State {
	case domain.StateDisconnected:
		return s.empty.Render("Wallet not connected")
	case domain.StateConnecting:
		return s.empty.Render("Connecting wallet...")
	}

	parts := []string{s.account.Render(units.ShortAddress(view.Session.Account))}
	if view.Balance != nil {
		parts = append(parts, s.detail.Render(fmt.Sprintf("balance: %s %s", units.FormatFixed(view.Balance, view.Network.Currency.Decimals, 4), symbol)))
	}
	line := strings.Join(parts, "  ")

	if view.State == domain.StateConnectedWrongNetwork {
		warning := s.warning.Render(fmt.Sprintf("Wrong network (chain %s). Please switch to %s", view.Session.ChainID, view.Network.Name))
		return lipgloss.JoinVertical(lipgloss.Left, line, warning)
	}
	return line
}

func renderLottery(view application.View, opts RenderOptions, s styles) string {
	l := view.Lottery
	if l == nil {
		return s.empty.Render("No active lottery available")
	}
	symbol := view.Network.Currency.Symbol

	title := s.account.Render(fmt.Sprintf("Lottery #%d", l.ID)) + " " + s.meta.Render(lotteryState(*l, opts.Now))
	tickets := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("tickets:"),
		" ",
		renderProgressBar(l.TotalTickets, l.MaxTickets, ticketBarWidth, s),
		" ",
		s.detail.Render(fmt.Sprintf("%d/%d sold", l.TotalTickets, l.MaxTickets)),
	)

	lines := []string{
		title,
		tickets,
		s.detail.Render(fmt.Sprintf("price: %s %s  prize pool: %s %s",
			units.FormatEther(l.TicketPrice), symbol, units.FormatEther(l.PrizePool), symbol)),
		s.detail.Render(formatEnds(l.EndTime, opts.Now)),
	}
	if l.HasWinner() {
		lines = append(lines, s.detail.Render("winner: "+units.ShortAddress(l.Winner)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBuy(view application.View, s styles) string {
	if view.BuyEnabled {
		return s.key.Render("buy: ") + s.detail.Render("open (nxl buy --count N)")
	}

	reason := "ticket sales closed"
	switch {
	case view.Lottery == nil:
		reason = "no active lottery"
	case !view.Session.Ready():
		reason = "connect a wallet on " + view.Network.Name
	}
	return s.key.Render("buy: ") + s.meta.Render("unavailable, "+reason)
}

func lotteryState(l domain.Lottery, now time.Time) string {
	switch {
	case l.IsCompleted:
		return "(completed)"
	case !l.IsActive:
		return "(inactive)"
	case !now.IsZero() && l.Ended(now):
		return "(ended, awaiting draw)"
	case l.RemainingTickets() == 0:
		return "(sold out)"
	default:
		return "(active)"
	}
}

func renderPosition(view application.View, s styles) string {
	p := view.Position
	symbol := view.Network.Currency.Symbol

	lines := []string{
		s.key.Render("your position"),
		s.detail.Render(fmt.Sprintf("tickets: %d", p.TicketCount)),
		s.detail.Render(fmt.Sprintf("winnings: %s %s", units.FormatEther(p.Winnings), symbol)),
	}
	if view.Lottery != nil && view.Lottery.TotalTickets > 0 && p.TicketCount > 0 {
		chance := float64(p.TicketCount) / float64(view.Lottery.TotalTickets) * 100
		lines = append(lines, s.meta.Render(fmt.Sprintf("chance: %.1f%%", chance)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderLinks(network domain.Network, s styles) string {
	var lines []string
	if explorer := network.PrimaryExplorer(); explorer != "" {
		lines = append(lines, s.key.Render("explorer: ")+s.link.Render(explorer))
	}
	if network.FaucetURL != "" {
		lines = append(lines, s.key.Render("faucet:   ")+s.link.Render(network.FaucetURL))
	}
	if len(lines) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderNotifications(notes []domain.Notification, s styles) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		style, ok := s.severity[n.Severity]
		if !ok {
			style = s.detail
		}
		lines = append(lines, style.Render(fmt.Sprintf("[%s] %s", n.Severity, n.Message)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(sold, capacity uint64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	var fraction float64
	if capacity > 0 {
		fraction = math.Min(float64(sold)/float64(capacity), 1)
	}
	filled := int(math.Round(float64(width) * fraction))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func formatEnds(endTime, now time.Time) string {
	if endTime.IsZero() {
		return "ends: unknown"
	}
	if now.IsZero() {
		return "ends " + endTime.Format(time.RFC3339)
	}
	if !endTime.After(now) {
		return "ended " + formatClock(endTime, now)
	}

	remaining := endTime.Sub(now)
	if remaining < 24*time.Hour {
		hours := max(int(math.Ceil(remaining.Hours())), 1)
		return fmt.Sprintf("ends in %d %s (%s)", hours, plural(hours, "hour"), formatClock(endTime, now))
	}

	days := max(int(math.Ceil(remaining.Hours()/24)), 1)
	return fmt.Sprintf("ends in %d %s (%s)", days, plural(days, "day"), formatClock(endTime, now))
}

func formatClock(t, now time.Time) string {
	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := t.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return t.Format("15:04")
	}
	return t.Format("15:04 on 02 Jan")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func formatAmount(v *big.Int, symbol string) string {
	return units.FormatEther(v) + " " + symbol
}
