package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/biodata-intake/internal/export"
	"github.com/joseph-ayodele/biodata-intake/internal/ingest"
	"github.com/joseph-ayodele/biodata-intake/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP intake server",
	Long: `Serve runs the intake API in the foreground until interrupted.
The biodatad binary is the deployable form of the same server; this
command exists for local runs against a scratch database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		zlog, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = zlog.Sync() }()

		addr := a.cfg.Server.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := &http.Server{
			Addr: addr,
			Handler: server.New(
				a.service,
				ingest.NewFSIngestor(a.store.Intakes, a.logger),
				export.NewService(a.store.Profiles, a.logger),
				zlog,
			).Handler(),
		}

		errCh := make(chan error, 1)
		go func() {
			zlog.Info("HTTP serving", zap.String("addr", addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
