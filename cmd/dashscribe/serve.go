package main

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/spf13/cobra"

	"dashscribe/internal/http"
	"dashscribe/internal/storage"
)

//go:embed web/index.html
var indexHTML string

const shutdownTimeout = 10 * time.Second

func serveCommand(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if port == "" {
				port = a.cfg.APIPort
			}

			db, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			router := http.NewRouter(&http.Deps{
				Store:     storage.NewQueryRepo(db),
				IndexHTML: indexHTML,
			})
			server := &nethttp.Server{
				Addr:              ":" + port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("Starting API server", "addr", server.Addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, nethttp.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			slog.Info("Shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			<-errCh
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default: API_PORT)")

	return cmd
}
