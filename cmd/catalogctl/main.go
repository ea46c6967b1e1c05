// Command catalogctl inspects and maintains the case-study catalog directly
// in its storage backend.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"rts-backend/internal/casestudies"
	"rts-backend/internal/config"
	"rts-backend/internal/storage"

	"github.com/spf13/cobra"
)

type openFunc func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage.Opened, error)

// app carries what every subcommand needs; tests swap open for a memory
// backend.
type app struct {
	cfg     *config.Config
	open    openFunc
	out     io.Writer
	log     *slog.Logger
	backend string
	timeout time.Duration
}

func main() {
	a := &app{open: storage.Open, out: os.Stdout}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Maintain the case-study catalog",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			if a.cfg == nil {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			if a.backend != "" {
				a.cfg.StorageBackend = a.backend
			}
			return nil
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend (overrides STORAGE_BACKEND)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "Operation timeout")

	root.AddCommand(newResetCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newHomepageCmd(a))
	return root
}

// withRepository opens the backend for the duration of fn.
func (a *app) withRepository(cmd *cobra.Command, fn func(ctx context.Context, repo *casestudies.KVRepository) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	backend, err := a.open(ctx, a.cfg, a.log)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", a.cfg.StorageBackend, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			a.log.Warn("storage close error", slog.String("error", err.Error()))
		}
	}()

	return fn(ctx, casestudies.NewRepository(backend.Store, a.cfg.CatalogKey, a.log))
}

func (a *app) newStore(repo casestudies.Repository) *casestudies.Store {
	return casestudies.NewStore(repo, a.log, casestudies.Options{
		PersistDebounce: a.cfg.PersistDebounce,
		LoadTimeout:     a.cfg.LoadTimeout,
	})
}
