package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/uoon-dev/sancho/internal/app"
	"github.com/uoon-dev/sancho/internal/config"
	"github.com/uoon-dev/sancho/internal/logging"
)

func newDemoCmd() *cobra.Command {
	var (
		configPath string
		recordPath string
	)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive sheet in the terminal",
		Long: `Run the interactive sheet in the terminal.

Drag the sheet with the mouse, click the dimmed page or press esc to close
it, and o to open it again. Appearance and animation settings are reloaded
when the config file changes.

Examples:
  sancho demo                       # left sheet from the default config
  sancho demo --edge bottom         # override the edge
  sancho demo --record drag.jsonl   # record every input for sancho replay`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return err
			}
			if err := mgr.Viper().BindPFlag("sheet.edge", cmd.Flags().Lookup("edge")); err != nil {
				return fmt.Errorf("failed to bind flag: %w", err)
			}
			if err := mgr.Load(); err != nil {
				return err
			}
			cfg := mgr.Get()

			// The program owns the terminal, so logs only go to a file.
			logger, closer, err := logging.New(logging.Config{
				Level:      cfg.Logging.Level,
				Format:     cfg.Logging.Format,
				File:       cfg.Logging.File,
				TimeFormat: logging.DefaultConfig().TimeFormat,
			}, nil)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := logging.WithContext(cmd.Context(), logger)
			return runDemo(ctx, mgr, cfg, recordPath)
		},
	}

	demoCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/sancho/config.yaml)")
	demoCmd.Flags().String("edge", "", "edge the sheet is anchored to (left, top, right, bottom)")
	demoCmd.Flags().StringVar(&recordPath, "record", "", "write every sheet input to this trace file")
	return demoCmd
}

func runDemo(ctx context.Context, mgr *config.Manager, cfg *config.Config, recordPath string) error {
	log := logging.FromContext(ctx)

	var opts []app.Option
	if recordPath != "" {
		f, err := os.Create(recordPath)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		opts = append(opts, app.WithRecorder(f))
	}

	tuiApp, err := app.NewApplication(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	program := tea.NewProgram(
		tuiApp,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	tuiApp.SetProgram(program)

	mgr.SetLogger(log.With().Str("component", "config").Logger())
	mgr.OnConfigChange(func(c *config.Config) {
		tuiApp.EventBus().Publish(app.EventConfigReloaded, c)
	})
	mgr.OnReloadError(func(err error) {
		tuiApp.EventBus().Publish(app.EventError, err)
	})
	if err := mgr.Watch(); err != nil {
		log.Debug().Err(err).Msg("config watching disabled")
	}

	log.Info().Str("edge", cfg.Sheet.Edge).Msg("starting demo")
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// stderrLogger builds the logger for non-interactive commands from the
// persistent log flags
func stderrLogger(cmd *cobra.Command, stderr io.Writer) zerolog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	if f, ok := stderr.(*os.File); ok {
		logger, _, err := logging.New(logging.Config{
			Level:      level,
			Format:     format,
			TimeFormat: logging.DefaultConfig().TimeFormat,
		}, f)
		if err == nil {
			return logger
		}
	}
	return zerolog.New(stderr).Level(logging.ParseLevel(level)).With().Timestamp().Logger()
}
