package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"packetfields/internal/analysis"
	"packetfields/internal/config"
	"packetfields/internal/logging"
	"packetfields/internal/reporting"
	"packetfields/internal/tshark"
)

var cmd Cmd

// Cmd is the command line arguments.
type Cmd struct {
	// ConfigPath is the path to the optional configuration file.
	ConfigPath string
	// LogLevel overrides the configured logging level when set.
	LogLevel string
}

var rootCmd = &cobra.Command{
	Use:   "packetfields",
	Short: "Extract unique ports, addresses and HTTP fields from packets.json",
	Long: `Reads packets.json (a tshark/Wireshark JSON export) from the current
directory and prints, one per line: TCP ports, UDP ports, IP addresses,
MAC addresses and HTTP values (host, full URI, method, user agent).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(rawCmd *cobra.Command, _ []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		ctx, stop := signal.NotifyContext(rawCmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cmd, dir, rawCmd.OutOrStdout(), rawCmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.ConfigPath, "config", "c", "", "Path to the configuration file")
	rootCmd.Flags().StringVar(&cmd.LogLevel, "log-level", "", "Logging level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd Cmd, dir string, stdout io.Writer, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	if cmd.ConfigPath != "" {
		loaded, err := config.LoadConfig(cmd.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.LogLevel != "" {
		level, err := zapcore.ParseLevel(cmd.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		cfg.Logging.Level = level
	}

	log, _ := logging.Init(&cfg.Logging, stderr)
	defer log.Sync()

	path := filepath.Join(dir, tshark.DefaultFileName)
	doc, err := tshark.LoadDocument(path, cfg.Input.MaxSize)
	if err != nil {
		return fmt.Errorf("failed to load packets: %w", err)
	}
	log.Debugw("loaded packet export",
		"path", path,
		"packets", len(doc),
		"limit", cfg.Input.MaxSize.HR(),
	)

	results, err := analysis.Run(ctx, doc, analysis.DefaultPasses(), analysis.WithLog(log))
	if err != nil {
		return fmt.Errorf("failed to extract fields: %w", err)
	}

	return reporting.Print(stdout, results)
}
