package ws

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViews struct {
	mu   sync.Mutex
	view application.View
	feed event.Feed
}

func (f *fakeViews) View() application.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakeViews) SubscribeViews(ch chan<- application.View) event.Subscription {
	return f.feed.Subscribe(ch)
}

type fakeNotifications struct {
	feed event.Feed
}

func (f *fakeNotifications) Subscribe(ch chan<- application.NotificationEvent) event.Subscription {
	return f.feed.Subscribe(ch)
}

func sampleView() application.View {
	return application.View{
		State: domain.StateConnectedCorrectNetwork,
		Session: domain.Session{
			Connected:        true,
			Account:          common.HexToAddress("0x1234567890123456789012345678901234567890"),
			ChainID:          domain.NexusTestnetChainID,
			IsCorrectNetwork: true,
		},
		Network: domain.NexusTestnet(),
		Lottery: &domain.Lottery{
			ID:           5,
			TicketPrice:  big.NewInt(10_000_000_000_000_000),
			MaxTickets:   100,
			TotalTickets: 3,
			PrizePool:    big.NewInt(30_000_000_000_000_000),
			EndTime:      time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC),
			IsActive:     true,
		},
		Position:   domain.UserPosition{Known: true, LotteryID: 5, TicketCount: 3, Winnings: big.NewInt(0)},
		Balance:    big.NewInt(1_000_000_000_000_000_000),
		BuyEnabled: true,
	}
}

type rawMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) rawMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg rawMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestNewViewPayload(t *testing.T) {
	p := NewViewPayload(sampleView())

	assert.Equal(t, "connected", p.State)
	assert.Equal(t, "0x1234567890123456789012345678901234567890", p.Account)
	assert.Equal(t, uint64(3940), p.ChainID)
	assert.Equal(t, "NEX", p.Symbol)
	assert.Equal(t, "1", p.Balance)
	assert.True(t, p.CanBuy)
	require.NotNil(t, p.Lottery)
	assert.Equal(t, "10000000000000000", p.Lottery.TicketPriceWei)
	assert.Equal(t, "0.01", p.Lottery.TicketPrice)
	assert.Equal(t, "0.03", p.Lottery.PrizePool)
	assert.Empty(t, p.Lottery.Winner)
	require.NotNil(t, p.Position)
	assert.Equal(t, uint64(3), p.Position.TicketCount)
	assert.NotNil(t, p.Notifications)
	assert.Nil(t, p.UpdatedAt)
}

func TestNewViewPayloadDisconnected(t *testing.T) {
	p := NewViewPayload(application.View{Network: domain.NexusTestnet()})

	assert.Equal(t, "disconnected", p.State)
	assert.Empty(t, p.Account)
	assert.Nil(t, p.Lottery)
	assert.Nil(t, p.Position)
	assert.False(t, p.CanBuy)
}

func TestFeedStreamsSnapshotViewsAndNotifications(t *testing.T) {
	views := &fakeViews{view: sampleView()}
	notes := &fakeNotifications{}
	broadcaster := NewBroadcaster(DefaultMaxConnections)
	server := NewServer(views, broadcaster, nil)

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Pump(ctx, notes) }()
	require.Eventually(t, func() bool { return broadcaster.Latest() != nil }, 2*time.Second, 10*time.Millisecond)

	conn := dial(t, srv)
	snapshot := readMessage(t, conn)
	assert.Equal(t, MsgSnapshot, snapshot.Type)
	require.Eventually(t, func() bool { return broadcaster.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	next := sampleView()
	next.Lottery.TotalTickets = 4
	views.feed.Send(next)

	msg := readMessage(t, conn)
	require.Equal(t, MsgView, msg.Type)
	var payload ViewPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, uint64(4), payload.Lottery.TotalTickets)

	notes.feed.Send(application.NotificationEvent{
		Notification: domain.Notification{ID: "n1", Message: "Tickets purchased successfully!", Severity: domain.SeveritySuccess},
		Expired:      true,
	})

	msg = readMessage(t, conn)
	require.Equal(t, MsgNotification, msg.Type)
	var note NotificationPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &note))
	assert.Equal(t, "Tickets purchased successfully!", note.Message)
	assert.Equal(t, "success", note.Severity)
	assert.True(t, note.Expired)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestFeedRejectsConnectionsOverLimit(t *testing.T) {
	broadcaster := NewBroadcaster(1)
	server := NewServer(&fakeViews{}, broadcaster, nil)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	dial(t, srv)
	require.Eventually(t, func() bool { return broadcaster.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	second := dial(t, srv)
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := second.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseTryAgainLater, closeErr.Code)
	assert.Equal(t, 1, broadcaster.ClientCount())
}

func TestViewEndpoint(t *testing.T) {
	server := NewServer(&fakeViews{view: sampleView()}, NewBroadcaster(0), nil)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/view")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var payload ViewPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, uint64(5), payload.Lottery.ID)

	post, err := http.Post(srv.URL+"/api/view", "application/json", nil)
	require.NoError(t, err)
	defer post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

func TestCheckOrigin(t *testing.T) {
	server := NewServer(&fakeViews{}, NewBroadcaster(0), []string{"http://dashboard.local"})

	tests := []struct {
		name   string
		origin string
		host   string
		want   bool
	}{
		{name: "no origin", host: "127.0.0.1:8080", want: true},
		{name: "same host", origin: "http://127.0.0.1:8080", host: "127.0.0.1:8080", want: true},
		{name: "allowed", origin: "http://dashboard.local", host: "127.0.0.1:8080", want: true},
		{name: "foreign", origin: "https://evil.example", host: "127.0.0.1:8080", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, server.checkOrigin(r))
		})
	}
}
