package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/idilsaglam/shoplist/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, s store.Store) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(&ListPage{Store: s}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("web: listening", "addr", addr, "data", s.Path())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("web: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
