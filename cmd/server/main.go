package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickreach/internal/api"
	"quickreach/internal/config"
	"quickreach/internal/database"
	"quickreach/internal/logger"
	"quickreach/internal/seed"
	"quickreach/internal/store"
	"quickreach/internal/whatsapp"
	"quickreach/internal/ws"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "quickreach",
		Short: "Serve the QuickReach dashboard",
		Long: `quickreach keeps a list of phone numbers and reusable quick replies in memory
and turns any pair of them into a WhatsApp click-to-chat link.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")

	cmd.AddCommand(newLinkCmd())
	return cmd
}

func newState(cfg *config.Config, log *zap.SugaredLogger) (*store.State, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemoryState(), nil
	case config.BackendSQLite:
		return database.NewState(log)
	default:
		return nil, errors.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger()
	defer log.Sync()

	state, err := newState(cfg, log)
	if err != nil {
		return err
	}

	s, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	if err := s.Apply(state); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	router := api.NewRouter(api.Deps{
		State:  state,
		Linker: whatsapp.NewLinker(whatsapp.NewBuilder(cfg), state),
		Hub:    hub,
		Log:    log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "port", cfg.Port, "store", cfg.StoreBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "failed to run server")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
