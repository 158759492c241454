package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gamepress/internal/config"
	"gamepress/internal/logger"
	"gamepress/internal/relevance"
	"gamepress/internal/server"
)

// NewServeCmd creates the serve command that runs the content API.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the content and admin HTTP API",
		Long: `Serve the HTTP API the site frontend and admin panel consume: articles,
breaking news, newsletter subscription, subscriber administration, groups
and search.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = config.GetServer().Addr
			}
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func runServe(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	opts := server.Options{Addr: addr, AdminKey: config.GetServer().AdminKey}
	if opts.AdminKey == "" {
		logger.Warn("ADMIN_API_KEY not set, admin endpoints are unprotected")
	}
	srv := server.New(opts, st, newNewsletterService(st), relevance.NewSearcher(st), logger.Get())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
