package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vovarama1992/aigizi-wa-bridge/internal/metrics"
	"github.com/Vovarama1992/aigizi-wa-bridge/internal/relay"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newAppFromViper()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + viper.GetString("server.port"),
				Handler:           newRouter(a, viper.GetBool("webhook.ping_on_get")),
				ReadHeaderTimeout: 10 * time.Second,
				WriteTimeout:      60 * time.Second, // generation, then up to two sends
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("shutdown_timeout"))
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("port", "", "Listen port (default 8000, env PORT).")
	cmd.Flags().Bool("ping-on-get", false, "Let GET /webhook?ping=1 run a diagnostic ping to the test recipient.")
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("webhook.ping_on_get", cmd.Flags().Lookup("ping-on-get"))

	return cmd
}

func newRouter(a *app, pingOnGet bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	relay.RegisterRoutes(r, relay.NewHandler(a.service, relay.HandlerConfig{
		Logger:    a.logger.With("component", "webhook"),
		Recorder:  a.metrics,
		PingOnGet: pingOnGet,
	}))

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(a.registry))

	return r
}
