package ws

import (
	"math/big"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/units"
)

type MessageType string

const (
	MsgSnapshot     MessageType = "snapshot"
	MsgView         MessageType = "view"
	MsgNotification MessageType = "notification"
)

type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

type ViewPayload struct {
	State          string                `json:"state"`
	Account        string                `json:"account,omitempty"`
	ChainID        uint64                `json:"chainId,omitempty"`
	CorrectNetwork bool                  `json:"correctNetwork"`
	Network        string                `json:"network"`
	Symbol         string                `json:"symbol"`
	Balance        string                `json:"balance,omitempty"`
	Lottery        *LotteryPayload       `json:"lottery"`
	Position       *PositionPayload      `json:"position"`
	CanBuy         bool                  `json:"canBuy"`
	Notifications  []NotificationPayload `json:"notifications"`
	UpdatedAt      *time.Time            `json:"updatedAt,omitempty"`
}

// LotteryPayload carries amounts both in wei and as display strings.
type LotteryPayload struct {
	ID             uint64    `json:"id"`
	TicketPriceWei string    `json:"ticketPriceWei"`
	TicketPrice    string    `json:"ticketPrice"`
	MaxTickets     uint64    `json:"maxTickets"`
	TotalTickets   uint64    `json:"totalTickets"`
	PrizePoolWei   string    `json:"prizePoolWei"`
	PrizePool      string    `json:"prizePool"`
	EndTime        time.Time `json:"endTime"`
	Winner         string    `json:"winner,omitempty"`
	IsActive       bool      `json:"isActive"`
	IsCompleted    bool      `json:"isCompleted"`
}

type PositionPayload struct {
	LotteryID   uint64 `json:"lotteryId"`
	TicketCount uint64 `json:"ticketCount"`
	Winnings    string `json:"winnings"`
}

type NotificationPayload struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	Expired   bool      `json:"expired,omitempty"`
}

func NewViewPayload(view application.View) ViewPayload {
	p := ViewPayload{
		State:          view.State.String(),
		CorrectNetwork: view.Session.IsCorrectNetwork,
		Network:        view.Network.Name,
		Symbol:         view.Network.Currency.Symbol,
		CanBuy:         view.BuyEnabled,
		Notifications:  make([]NotificationPayload, 0, len(view.Notifications)),
	}
	if view.Session.Connected {
		p.Account = view.Session.Account.Hex()
		p.ChainID = uint64(view.Session.ChainID)
	}
	if view.Balance != nil {
		p.Balance = units.FormatEther(view.Balance)
	}
	if l := view.Lottery; l != nil {
		p.Lottery = &LotteryPayload{
			ID:             l.ID,
			TicketPriceWei: weiString(l.TicketPrice),
			TicketPrice:    units.FormatEther(l.TicketPrice),
			MaxTickets:     l.MaxTickets,
			TotalTickets:   l.TotalTickets,
			PrizePoolWei:   weiString(l.PrizePool),
			PrizePool:      units.FormatEther(l.PrizePool),
			EndTime:        l.EndTime.UTC(),
			IsActive:       l.IsActive,
			IsCompleted:    l.IsCompleted,
		}
		if l.HasWinner() {
			p.Lottery.Winner = l.Winner.Hex()
		}
	}
	if view.Position.Known {
		p.Position = &PositionPayload{
			LotteryID:   view.Position.LotteryID,
			TicketCount: view.Position.TicketCount,
			Winnings:    units.FormatEther(view.Position.Winnings),
		}
	}
	for _, n := range view.Notifications {
		p.Notifications = append(p.Notifications, newNotificationPayload(n, false))
	}
	if !view.UpdatedAt.IsZero() {
		updated := view.UpdatedAt.UTC()
		p.UpdatedAt = &updated
	}
	return p
}

func newNotificationPayload(n domain.Notification, expired bool) NotificationPayload {
	return NotificationPayload{
		ID:        n.ID,
		Message:   n.Message,
		Severity:  string(n.Severity),
		CreatedAt: n.CreatedAt.UTC(),
		Expired:   expired,
	}
}

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
