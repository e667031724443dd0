package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliState is shared by the subcommands once the root pre-run has loaded it.
type cliState struct {
	configPath string
	verbose    bool
	cfg        Config
	logger     *log.Logger
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:           "crossgen",
		Short:         "crossgen places word lists on crossword grids",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(st.configPath)
			if err != nil {
				return err
			}
			level, _ := parseLevel(cfg.LogLevel)
			if st.verbose {
				level = log.DebugLevel
			}
			st.cfg = cfg
			st.logger = newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), st.logger))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&st.configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newServeCmd(st))
	root.AddCommand(newGenerateCmd(st))
	return root
}

func newServeCmd(st *cliState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				st.cfg.Addr = addr
			}
			return serve(cmd.Context(), st.cfg, st.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config and PORT)")
	return cmd
}

func serve(ctx context.Context, cfg Config, logger *log.Logger) error {
	var suggester WordSuggester
	if cfg.Gemini.Project != "" {
		gemini, err := NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return fmt.Errorf("init gemini: %w", err)
		}
		defer gemini.Close()
		suggester = gemini
		logger.Info("gemini client ready", "project", cfg.Gemini.Project, "model", gemini.modelName)
	} else {
		logger.Info("GCP_PROJECT_ID not set, word suggestions disabled")
	}

	srv := NewServer(cfg, logger, suggester)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  cfg.Limits.ReadTimeout.Duration,
		WriteTimeout: cfg.Limits.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", cfg.Addr, "grid_size", cfg.Grid.Size)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newGenerateCmd(st *cliState) *cobra.Command {
	var (
		seed       uint64
		enforce    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "generate WORD...",
		Short: "Place words on a grid and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := GenerateRequest{Words: args, EnforceBlackRatio: enforce}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			resp, err := NewGenerator(st.cfg.Grid).Generate(req)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			logger.Debug("generated grid", "seed", resp.Seed, "placed", len(resp.PlacedWords))
			if len(resp.DroppedWords) > 0 {
				logger.Warn("some words could not be placed", "dropped", resp.DroppedWords)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(out, resp.Grid.String())
			for _, w := range resp.PlacedWords {
				p := resp.WordPositions[w]
				fmt.Fprintf(out, "%s %s (%d,%d)\n", p.Direction, w, p.Start[0], p.Start[1])
			}
			fmt.Fprintf(out, "seed %d\n", resp.Seed)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a reproducible grid")
	cmd.Flags().BoolVar(&enforce, "enforce-black-ratio", false, "fill blank cells up to the configured black ratio")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the JSON response instead of the grid")
	return cmd
}
