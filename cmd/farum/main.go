// Command farum runs the support API or triages a single message offline.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/PabloGalante/farum-support/internal/adapters/http"
	"github.com/PabloGalante/farum-support/internal/adapters/llm"
	"github.com/PabloGalante/farum-support/internal/adapters/storage"
	"github.com/PabloGalante/farum-support/internal/app/mood"
	"github.com/PabloGalante/farum-support/internal/app/support"
	"github.com/PabloGalante/farum-support/internal/config"
	"github.com/PabloGalante/farum-support/internal/mentalstate"
	"github.com/PabloGalante/farum-support/internal/observability"
	"github.com/PabloGalante/farum-support/internal/persona"
	"github.com/PabloGalante/farum-support/internal/triage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "farum",
		Short:         "Farum mental health support service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd(), assessCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides FARUM_PORT)")
	return cmd
}

func assessCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "assess <text>",
		Short: "Triage a message and print the assessment as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			res := support.Assess(cmd.Context(), triage.NewAnalyzer(), mentalstate.NewAggregator(), text, time.Now())

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "indent the JSON output")
	return cmd
}

func runServer(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.SetLevel(cfg.LogLevel)
	log := observability.Logger()

	handler, closeStores, err := buildHandler(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStores(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("farum api listening", "addr", srv.Addr, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandler wires personas, the LLM provider and the storage backend
// named by cfg into the HTTP handler. The returned func closes storage.
func buildHandler(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	log := observability.Logger()

	registry, err := loadPersonas(cfg.PersonasFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load personas: %w", err)
	}

	gen, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init llm: %w", err)
	}
	log.Info("llm client ready", "provider", cfg.LLM.Provider, "model", cfg.LLM.ModelName)

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	log.Info("storage ready", "backend", cfg.Storage.Backend)

	dispatchCfg := dispatchConfig(cfg)

	supportSvc := support.NewService(support.Deps{
		Sessions:   stores.Sessions,
		Messages:   stores.Messages,
		History:    stores.History,
		Registry:   registry,
		Dispatcher: persona.NewDispatcher(gen, dispatchCfg),
	}, support.WithSessionTimeout(cfg.SessionTimeout))
	moodSvc := mood.NewService(stores.Moods)

	return httpadapter.NewServer(supportSvc, moodSvc, requestTimeout(dispatchCfg)), stores.Close, nil
}

func dispatchConfig(cfg *config.Config) persona.DispatchConfig {
	return persona.DispatchConfig{
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		TopP:        cfg.Generation.TopP,
		Timeout:     cfg.Generation.Timeout,
		MaxAttempts: cfg.Generation.MaxAttempts,
		Backoff:     cfg.Generation.RetryBackoff,
	}
}

func loadPersonas(path string) (*persona.Registry, error) {
	if path == "" {
		return persona.Default()
	}
	return persona.LoadFile(path)
}

// requestTimeout leaves room for every generation attempt plus backoff.
func requestTimeout(cfg persona.DispatchConfig) time.Duration {
	attempts := max(cfg.MaxAttempts, 1)
	backoff := time.Duration(attempts*(attempts-1)/2) * cfg.Backoff
	return time.Duration(attempts)*cfg.Timeout + backoff + 5*time.Second
}
