package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rgehrsitz/egpension/internal/api"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadTables(config.NewInputParser())
			if err != nil {
				return err
			}

			opts := api.DefaultOptions()
			opts.RateLimit = viper.GetInt("server.rate_limit")
			if origins := viper.GetStringSlice("server.allowed_origins"); len(origins) > 0 {
				opts.AllowedOrigins = origins
			}
			router := api.NewRouter(api.NewHandler(newEngine(), set), opts)
			srv := api.NewServer(viper.GetString("server.addr"), router)

			errCh := make(chan error, 1)
			go func() {
				slog.Info("server starting", "addr", srv.Addr, "tables", len(set.Tables))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			slog.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
