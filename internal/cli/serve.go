package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmccomb/pastrami/internal/config"
	"github.com/cmccomb/pastrami/pkg/gateway"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket gateway server",
	Long: `Start the WebSocket gateway server for embedding applications.
Exposes script execution, package management, and the completion catalog over
JSON-RPC, plus Prometheus metrics on the same listener.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lg, err := initLogger(cfg, cfg.Logging.Console)
	if err != nil {
		return err
	}
	defer lg.Close()
	zl := lg.GetZerolog()

	manager, err := newManager(cfg, zl)
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	server, err := gateway.NewServer(gateway.Config{
		Addr:         cfg.Gateway.Addr,
		SharedSecret: cfg.Gateway.SharedSecret,
		Manager:      manager,
		History:      store,
		Logger:       zl,
	})
	if err != nil {
		return err
	}

	// Hot-apply package toggles when the config file changes
	loader := config.NewLoader(cfgFile)
	watcher, err := config.NewWatcher(loader, func(next *config.Config) error {
		if next.Packages.Enabled == nil {
			return nil
		}
		return manager.SetEnabledPackages(next.Packages.Enabled)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		zl.Warn().Err(err).Msg("Config watcher disabled")
	} else {
		defer watcher.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	zl.Info().
		Str("addr", cfg.Gateway.Addr).
		Strs("packages", manager.EnabledPackages()).
		Msg("Gateway started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		zl.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
