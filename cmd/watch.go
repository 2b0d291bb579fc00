package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/contract/lottery"
	"github.com/bnema/nexus-lottery-cli/internal/adapters/feed/ws"
	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

var wlog = log.New("module", "cmd.watch")

const notificationBuffer = 16

func newWatchCmd(app *app) *cobra.Command {
	var serve string
	var connect bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow contract events and print notifications as they arrive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			return app.watch(ctx, cmd, watchOptions{serve: serve, connect: connect})
		},
	}

	cmd.Flags().StringVar(&serve, "serve", "", "also serve the view and notifications over websocket on this address")
	cmd.Flags().Lookup("serve").NoOptDefVal = "default"
	cmd.Flags().BoolVar(&connect, "connect", false, "connect the wallet to follow your position")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "stop after this long (default until interrupted)")

	return cmd
}

type watchOptions struct {
	serve   string
	connect bool
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, opts watchOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, closeEvents, err := a.dialEvents(ctx)
	if err != nil {
		return err
	}
	defer closeEvents()

	notes := make(chan application.NotificationEvent, notificationBuffer)
	noteSub := a.notes.Subscribe(notes)
	defer noteSub.Unsubscribe()

	readCtx, readCancel := a.withTimeout(ctx)
	if opts.connect {
		if _, err := a.orchestrator.Connect(readCtx); err != nil && !errors.Is(err, domain.ErrWrongNetwork) {
			wlog.Warn("watching without wallet", "err", err)
		}
	} else if _, err := a.orchestrator.RefreshLotteryData(readCtx); err != nil {
		wlog.Warn("initial lottery read failed", "err", err)
	}
	readCancel()

	if err := writeView(cmd, a, false); err != nil {
		return err
	}

	errc := make(chan error, 4)
	workers := 0
	start := func(f func() error) {
		workers++
		go func() { errc <- f() }()
	}

	start(func() error { return a.orchestrator.Run(ctx) })
	start(func() error { return a.orchestrator.WatchContractEvents(ctx, events) })

	ready := make(chan net.Addr, 1)
	if opts.serve != "" {
		addr := opts.serve
		if addr == "default" {
			addr = a.cfg.FeedListen
		}
		server := ws.NewServer(a.orchestrator, ws.NewBroadcaster(ws.DefaultMaxConnections), nil)
		start(func() error { return server.Pump(ctx, a.notes) })
		start(func() error {
			return server.Serve(ctx, addr, func(bound net.Addr) { ready <- bound })
		})
	}

	out := cmd.OutOrStdout()
	var firstErr error
	for workers > 0 {
		select {
		case ev := <-notes:
			if !ev.Expired {
				_, _ = fmt.Fprintf(out, "[%s] %s\n", ev.Notification.Severity, ev.Notification.Message)
			}
		case addr := <-ready:
			_, _ = fmt.Fprintf(out, "feed: ws://%s/ws\n", addr)
		case err := <-errc:
			workers--
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) && firstErr == nil {
				firstErr = err
			}
			cancel()
		}
	}

	return firstErr
}

// dialEvents opens a websocket client for log subscriptions. Plain HTTP
// endpoints cannot deliver them.
func (a *app) dialEvents(ctx context.Context) (application.EventSource, func(), error) {
	if len(a.cfg.Network.WSURLs) == 0 {
		return nil, nil, fmt.Errorf("watch: network %s has no websocket url", a.cfg.Network.Name)
	}
	url := a.cfg.Network.WSURLs[0]

	dialCtx, cancel := a.withTimeout(ctx)
	defer cancel()
	client, err := ethclient.DialContext(dialCtx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("watch: dial %s: %w", url, err)
	}

	contract, err := lottery.New(a.cfg.ContractAddress, client)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("watch: %w", err)
	}
	return contract, client.Close, nil
}
