package application

import (
	"context"
	"fmt"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/units"
	"github.com/ethereum/go-ethereum/event"
)

const contractEventBuffer = 16

type EventSource interface {
	WatchEvents(ctx context.Context, sink chan<- domain.ContractEvent) (event.Subscription, error)
}

// WatchContractEvents turns lottery contract events into notifications and
// reloads until ctx is done or the subscription fails.
func (o *SessionOrchestrator) WatchContractEvents(ctx context.Context, source EventSource) error {
	events := make(chan domain.ContractEvent, contractEventBuffer)
	sub, err := source.WatchEvents(ctx, events)
	if err != nil {
		return fmt.Errorf("watch contract events: %w", err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case ev := <-events:
			o.HandleContractEvent(ctx, ev)
		case err := <-sub.Err():
			if err != nil {
				return fmt.Errorf("contract event subscription: %w", err)
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (o *SessionOrchestrator) HandleContractEvent(ctx context.Context, ev domain.ContractEvent) {
	session := o.conn.Session()
	symbol := o.conn.Network().Currency.Symbol
	mine := session.Connected && (ev.Buyer == session.Account || ev.Winner == session.Account)

	switch ev.Kind {
	case domain.EventTicketPurchased:
		o.push(fmt.Sprintf("Ticket #%d purchased by %s in lottery #%d",
			ev.TicketNumber, units.ShortAddress(ev.Buyer), ev.LotteryID), domain.SeverityInfo)
	case domain.EventLotteryCompleted:
		if mine {
			o.push(fmt.Sprintf("You won lottery #%d! Prize: %s %s",
				ev.LotteryID, units.FormatEther(ev.PrizeAmount), symbol), domain.SeveritySuccess)
		} else {
			o.push(fmt.Sprintf("Lottery #%d completed. Winner %s takes %s %s",
				ev.LotteryID, units.ShortAddress(ev.Winner), units.FormatEther(ev.PrizeAmount), symbol), domain.SeverityInfo)
		}
	case domain.EventLotteryCreated:
		o.push(fmt.Sprintf("New lottery #%d: %s %s per ticket, %d tickets",
			ev.LotteryID, units.FormatEther(ev.TicketPrice), symbol, ev.MaxTickets), domain.SeverityInfo)
	default:
		olog.Debug("ignoring contract event", "kind", ev.Kind)
		return
	}

	olog.Debug("contract event", "kind", ev.Kind, "lottery_id", ev.LotteryID, "tx_hash", ev.TxHash.Hex())
	if _, err := o.RefreshLotteryData(ctx); err != nil {
		return
	}
	if ev.Kind != domain.EventTicketPurchased || mine {
		_ = o.RefreshUserData(ctx)
	}
}
