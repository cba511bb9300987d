package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/harrison/flame"
	"github.com/harrison/flame/internal/config"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for flame
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flame",
		Short: "Timestamped console logging with a live active jobs panel",
		Long: `Flame prints timestamped, color-coded log lines and keeps a live
panel of running and retry-waiting jobs in the terminal.

Output switches to plain text when LAMBDA_TASK_ROOT or FLAME_PLAIN is set,
or when stdout is not a terminal.

Configuration is loaded from .flame/config.yaml (or $FLAME_HOME/config.yaml)
if present. CLI flags override configuration file settings.`,
		Version: Version,
		// main prints the error once; usage is noise on runtime failures
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .flame/config.yaml)")
	cmd.PersistentFlags().Int("retries", 0, "Total attempts per job")
	cmd.PersistentFlags().Duration("delay", 0, "Backoff after the first failed attempt (doubles each retry)")
	cmd.PersistentFlags().String("mode", "", "Output mode: auto, interactive, plain")
	cmd.PersistentFlags().Bool("disabled", false, "Suppress all output")
	cmd.PersistentFlags().Bool("clear", false, "Clear the screen before starting")

	cmd.AddCommand(NewDemoCommand())
	cmd.AddCommand(NewRunCommand())

	return cmd
}

// loadConfig resolves the config file and merges changed flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	cfg, err := readConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var (
		retries  *int
		delay    *time.Duration
		mode     *string
		disabled *bool
		clear    *bool
	)
	if flags.Changed("retries") {
		v, _ := flags.GetInt("retries")
		retries = &v
	}
	if flags.Changed("delay") {
		v, _ := flags.GetDuration("delay")
		delay = &v
	}
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		mode = &v
	}
	if flags.Changed("disabled") {
		v, _ := flags.GetBool("disabled")
		disabled = &v
	}
	if flags.Changed("clear") {
		v, _ := flags.GetBool("clear")
		clear = &v
	}
	cfg.MergeWithFlags(retries, delay, mode, disabled, clear)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// readConfig loads path, or config.yaml in the flame home when path is empty
func readConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	home, err := config.GetFlameHome()
	if err != nil {
		return nil, err
	}
	return config.LoadConfigFromDir(home)
}

// newLogger builds a flame logger from configuration
func newLogger(cfg *config.Config, out io.Writer) *flame.Logger {
	return flame.New(flame.Options{
		Disabled:        cfg.Disabled,
		Clear:           cfg.Clear,
		Pallet:          cfg.PalletOverrides(),
		RetryLimit:      cfg.RetryLimit,
		BaseRetryDelay:  cfg.BaseRetryDelay,
		RefreshInterval: cfg.RefreshInterval,
		UUID:            cfg.UUID,
		Output:          out,
		Mode:            cfg.OutputMode(),
	})
}
