package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"countdown_tui/internal"
	"countdown_tui/internal/config"
	"countdown_tui/internal/countdown"
	"countdown_tui/internal/display"
	"countdown_tui/internal/ticker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Count down from a number of seconds",
		Long:  "countdown ticks a number of seconds down to zero, rendering the remaining time\nin a chosen format and recording finished runs.",
		Args:  cobra.NoArgs,
		RunE:  runCountdown,
	}

	cmd.Flags().String("config", os.Getenv("COUNTDOWN_CONFIG"), "YAML config file [$COUNTDOWN_CONFIG]")
	cmd.Flags().Int("timestamp", envIntOrDefault("COUNTDOWN_TIMESTAMP", 0), "Seconds to count down from [$COUNTDOWN_TIMESTAMP]")
	cmd.Flags().Duration("delay", envDurationOrDefault("COUNTDOWN_DELAY", time.Second), "Tick period [$COUNTDOWN_DELAY]")
	cmd.Flags().String("format", os.Getenv("COUNTDOWN_FORMAT"), "Display format: DHMS, HMS, MS, HM, DHM, DH or empty for auto [$COUNTDOWN_FORMAT]")
	cmd.Flags().Bool("show-double-zero", envBoolOrDefault("COUNTDOWN_SHOW_DOUBLE_ZERO", false), "Show a zero leading field as 00 [$COUNTDOWN_SHOW_DOUBLE_ZERO]")
	cmd.Flags().String("log-db", os.Getenv("COUNTDOWN_LOG_DB"), "SQLite file recording finished runs [$COUNTDOWN_LOG_DB]")
	cmd.Flags().String("debug-log", os.Getenv("COUNTDOWN_DEBUG_LOG"), "Write diagnostics to this file [$COUNTDOWN_DEBUG_LOG]")
	cmd.Flags().Bool("plain", false, "Print the countdown on one line instead of the full-screen view")

	return cmd
}

func runCountdown(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Plain {
		return runPlain(cmd, cfg)
	}
	return runTUI(cfg)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.ApplyFlags(cmd.Flags(), true)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, cfg.ApplyFlags(cmd.Flags(), false)
}

func runTUI(cfg *config.Config) error {
	logger := log.New(io.Discard, "", 0)
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "countdown")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	m, err := internal.NewModel(cfg, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if err := m.Mount(p); err != nil {
		return err
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func runPlain(cmd *cobra.Command, cfg *config.Config) error {
	logger := log.New(os.Stderr, "countdown: ", 0)
	out := cmd.OutOrStdout()

	cd, err := countdown.New(countdown.Options{
		Seconds:        cfg.Timestamp,
		Format:         cfg.DisplayFormat(),
		ShowDoubleZero: cfg.ShowDoubleZero,
		OnComplete: func(bool) {
			fmt.Fprint(out, "\a")
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := &display.Plain{Out: out, Color: isTerminal(out)}
	if err := p.Run(ctx, cd, ticker.New(nil), cfg.Delay); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func Execute() error {
	// Load .env if present (silently ignored if missing).
	godotenv.Load()

	return newRootCmd().Execute()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
