package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cellmd "github.com/avahl/go-cellmd"
	"github.com/avahl/go-cellmd/internal/host"
	"github.com/avahl/go-cellmd/internal/prefs"
	"github.com/avahl/go-cellmd/internal/server"
	"github.com/avahl/go-cellmd/internal/watch"
)

// shutdownGrace bounds graceful HTTP shutdown on interrupt.
const shutdownGrace = 5 * time.Second

// runServe serves the live panel for a watched file.
func runServe(args []string) error {
	flags, rest, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		printServeUsage(os.Stderr)
		return ErrNoInput
	}

	theme := cellmd.Theme(flags.common.theme)
	if err := theme.Validate(); err != nil {
		return err
	}

	store, err := openStore(flags.common.prefs)
	if err != nil {
		return err
	}
	if flags.common.fontSize != "" {
		if err := store.SetFontSize(cellmd.FontSize(flags.common.fontSize)); err != nil {
			return err
		}
	}

	bridgeOpts := []host.FileBridgeOption{}
	if theme != "" {
		bridgeOpts = append(bridgeOpts, host.WithFileTheme(theme))
	}
	bridge, err := host.NewFileBridge(rest[0], bridgeOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = bridge.Close() }()

	svc := cellmd.New()
	defer func() { _ = svc.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(bridge)
	go watcher.Run(ctx)

	srv := server.New(svc, store)
	go srv.Consume(watcher.Updates())

	httpSrv := &http.Server{
		Addr:              flags.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	fmt.Fprintf(os.Stderr, "Serving panel for %s on http://%s\n", rest[0], flags.addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// openStore resolves the preference store from the flag or the XDG
// default.
func openStore(path string) (*prefs.Store, error) {
	if path != "" {
		return prefs.NewStoreAt(path), nil
	}
	return prefs.NewStore()
}
