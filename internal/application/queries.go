package application

import (
	"math/big"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
)

// View is everything the presentation layer renders from.
type View struct {
	State         domain.ConnectionState
	Session       domain.Session
	Network       domain.Network
	Lottery       *domain.Lottery
	Position      domain.UserPosition
	Balance       *big.Int
	Notifications []domain.Notification
	UpdatedAt     time.Time
	// BuyEnabled is CanBuy evaluated when the view was taken.
	BuyEnabled bool
}

// CanBuy reports whether the buy action should be offered.
func (v View) CanBuy(now time.Time) bool {
	return v.Session.Ready() &&
		v.Lottery != nil &&
		v.Lottery.IsActive &&
		!v.Lottery.IsCompleted &&
		!v.Lottery.Ended(now) &&
		v.Lottery.RemainingTickets() > 0
}
