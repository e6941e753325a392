package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	videocmd "github.com/Taichi-iskw/vidlike/cmd/video"
	"github.com/Taichi-iskw/vidlike/internal/api"
	"github.com/Taichi-iskw/vidlike/internal/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serve the /video HTTP API until SIGINT or SIGTERM is received.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.JWTSecret == "" {
			return errors.New("jwt_secret is not configured")
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		service, cleanup, err := videocmd.NewServiceFactory().CreateServiceWithConfig(openCtx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create video service: %w", err)
		}
		defer cleanup()

		gin.SetMode(gin.ReleaseMode)
		server := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(service, cfg.JWTSecret, slog.Default()),
			ReadHeaderTimeout: readHeaderTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("http server listening", "addr", addr)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("shutting down http server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to listen_addr from config)")
	rootCmd.AddCommand(serveCmd)
}
