package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/iris/internal/config"
	"github.com/UnknownOlympus/iris/internal/directory"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// cli carries what every subcommand needs after the root pre-run.
type cli struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// main is the entry point of the application.
func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:           "iris",
		Short:         "Employee phone directory",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			path := app.configPath
			if path == "" {
				path = os.Getenv("CONFIG_PATH")
			}

			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			app.cfg = cfg
			app.logger = setupLogger(cfg.Env)

			return nil
		},
	}

	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "path to the YAML config (defaults to $CONFIG_PATH)")

	root.AddCommand(app.serveCmd(), app.showCmd())

	return root
}

func (c *cli) settings() directory.Settings {
	return directory.Settings{
		Offices:     c.cfg.Offices,
		EmailDomain: c.cfg.Directory.EmailDomain,
		Location:    c.cfg.Directory.Location,
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{Key: "", Value: slog.Value{}}
	}
	return a
}
