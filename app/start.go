package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run starts every background task and blocks until ctx is cancelled or one
// of them fails.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.Queue.Run(ctx) })
	g.Go(func() error { return app.Reconciler.Run(ctx) })
	g.Go(func() error { return app.Cycle.Run(ctx) })
	g.Go(func() error { return app.serve(ctx, app.server, "control") })
	if app.metricsServer != nil {
		g.Go(func() error { return app.serve(ctx, app.metricsServer, "metrics") })
	}

	app.Logger.InfoContext(ctx, "Broadcast driver running",
		slog.String("http_addr", app.Config.HTTP.Addr),
		slog.String("event_id", app.Config.Scoring.EventID),
	)
	return g.Wait()
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func (app *App) serve(ctx context.Context, srv *http.Server, name string) error {
	errCh := make(chan error, 1)
	go func() {
		app.Logger.InfoContext(ctx, "HTTP server listening", slog.String("server", name), slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", slog.String("server", name), slog.Any("error", err))
		return err
	}
	return <-errCh
}
