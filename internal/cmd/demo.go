package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harrison/flame"
	"github.com/spf13/cobra"
)

// NewDemoCommand creates the demo command
func NewDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay a scripted session of log lines and jobs",
		Long: `Replay a scripted session: one line of each kind, three concurrent
jobs where one completes, one fails and one finishes last, plus a flaky
job that recovers through the retry orchestrator.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}

	cmd.Flags().Duration("step", 500*time.Millisecond, "Pause between scripted steps")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	step, _ := cmd.Flags().GetDuration("step")

	log := newLogger(cfg, cmd.OutOrStdout())
	defer log.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pause := func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step):
			return nil
		}
	}

	log.Log("flame demo starting")
	log.LogWarning("this is a warning")
	log.LogError("this is an error")
	log.Debug(fmt.Sprintf("retry limit %d, base delay %s", cfg.RetryLimit, cfg.BaseRetryDelay))

	first := log.StartJob("fetch manifest")
	second := log.StartJob("compile assets")
	third := log.StartJob("upload bundle")
	if err := pause(); err != nil {
		return err
	}

	if err := log.CompleteJob(first); err != nil {
		return err
	}
	if err := pause(); err != nil {
		return err
	}
	if err := log.FailJob(second); err != nil {
		return err
	}

	attempts := 0
	flaky := errors.New("connection reset")
	n, err := flame.RunWithRetries(ctx, log, "flaky download", func(ctx context.Context) (int, error) {
		attempts++
		if attempts < log.RetryLimit() {
			return 0, flaky
		}
		return attempts, nil
	})
	if err != nil {
		return err
	}
	log.Log(fmt.Sprintf("flaky download recovered after %d attempts", n))

	if err := pause(); err != nil {
		return err
	}
	return log.CompleteJob(third)
}
