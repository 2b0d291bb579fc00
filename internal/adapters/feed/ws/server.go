package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/websocket"
)

const (
	DefaultMaxConnections = 16
	shutdownTimeout       = 5 * time.Second
	feedBuffer            = 32
)

type ViewSource interface {
	View() application.View
	SubscribeViews(ch chan<- application.View) event.Subscription
}

type NotificationSource interface {
	Subscribe(ch chan<- application.NotificationEvent) event.Subscription
}

type Server struct {
	views          ViewSource
	broadcaster    *Broadcaster
	allowedOrigins map[string]bool
}

// NewServer accepts websocket upgrades from same-host pages and from
// allowedOrigins.
func NewServer(views ViewSource, broadcaster *Broadcaster, allowedOrigins []string) *Server {
	s := &Server{
		views:          views,
		broadcaster:    broadcaster,
		allowedOrigins: make(map[string]bool),
	}
	for _, origin := range allowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			s.allowedOrigins[trimmed] = true
		}
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/view", s.handleView)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wlog.Debug("ws upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c, err := s.broadcaster.AddClient(conn)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		_ = conn.Close()
		return
	}
	wlog.Info("ws client connected", "remote", r.RemoteAddr)

	go func() {
		defer func() {
			s.broadcaster.RemoveClient(c)
			wlog.Info("ws client disconnected", "remote", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(NewViewPayload(s.views.View())); err != nil {
		wlog.Debug("write view response", "err", err)
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || s.allowedOrigins[origin] {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, r.Host)
}

// Pump forwards views and notifications to the broadcaster until ctx is done
// or a subscription fails.
func (s *Server) Pump(ctx context.Context, notifications NotificationSource) error {
	views := make(chan application.View, feedBuffer)
	viewSub := s.views.SubscribeViews(views)
	defer viewSub.Unsubscribe()

	notes := make(chan application.NotificationEvent, feedBuffer)
	var noteErr <-chan error
	if notifications != nil {
		noteSub := notifications.Subscribe(notes)
		defer noteSub.Unsubscribe()
		noteErr = noteSub.Err()
	}

	s.broadcaster.PublishView(NewViewPayload(s.views.View()))
	for {
		select {
		case view := <-views:
			s.broadcaster.PublishView(NewViewPayload(view))
		case ev := <-notes:
			s.broadcaster.PublishNotification(newNotificationPayload(ev.Notification, ev.Expired))
		case err := <-viewSub.Err():
			return err
		case err := <-noteErr:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Serve listens on addr until ctx is done. ready, when non-nil, receives the
// bound address once the listener is up.
func (s *Server) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	wlog.Info("feed listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve feed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.broadcaster.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown feed: %w", err)
	}
	return nil
}
