package application

import (
	"slices"
	"sync"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/event"
	"github.com/google/uuid"
)

const DefaultNotificationTTL = 5 * time.Second

type Notifier interface {
	Push(message string, severity domain.Severity) domain.Notification
	Active() []domain.Notification
}

type NotificationEvent struct {
	Notification domain.Notification
	Expired      bool
}

// NotificationCenter keeps user-facing notifications alive for a fixed TTL.
type NotificationCenter struct {
	clock ports.Clock
	ttl   time.Duration
	newID func() string

	mu     sync.Mutex
	active []domain.Notification
	timers map[string]ports.Timer

	feed event.Feed
}

func NewNotificationCenter(clock ports.Clock, ttl time.Duration) *NotificationCenter {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}

	return &NotificationCenter{
		clock:  clock,
		ttl:    ttl,
		newID:  uuid.NewString,
		timers: map[string]ports.Timer{},
	}
}

func (c *NotificationCenter) TTL() time.Duration {
	return c.ttl
}

func (c *NotificationCenter) Subscribe(ch chan<- NotificationEvent) event.Subscription {
	return c.feed.Subscribe(ch)
}

func (c *NotificationCenter) Push(message string, severity domain.Severity) domain.Notification {
	n := domain.Notification{
		ID:        c.newID(),
		Message:   message,
		Severity:  severity,
		CreatedAt: c.clock.Now(),
	}

	c.mu.Lock()
	c.active = append(c.active, n)
	c.timers[n.ID] = c.clock.AfterFunc(c.ttl, func() { c.expire(n.ID) })
	c.mu.Unlock()

	c.feed.Send(NotificationEvent{Notification: n})
	return n
}

func (c *NotificationCenter) expire(id string) {
	c.mu.Lock()
	idx := slices.IndexFunc(c.active, func(n domain.Notification) bool { return n.ID == id })
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	n := c.active[idx]
	c.active = slices.Delete(c.active, idx, idx+1)
	delete(c.timers, id)
	c.mu.Unlock()

	c.feed.Send(NotificationEvent{Notification: n, Expired: true})
}

// Dismiss removes a notification before its TTL elapses.
func (c *NotificationCenter) Dismiss(id string) {
	c.mu.Lock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
	}
	c.mu.Unlock()
	c.expire(id)
}

// Active returns the unexpired notifications, oldest first.
func (c *NotificationCenter) Active() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.active)
}

func (c *NotificationCenter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
}
