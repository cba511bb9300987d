package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/harrison/flame"
	"github.com/harrison/flame/internal/filelock"
	"github.com/harrison/flame/internal/report"
	"github.com/spf13/cobra"
)

// jobSpec is one command to run as a tracked job
type jobSpec struct {
	title string
	argv  []string
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [-- command [args...]]",
		Short: "Run commands as tracked jobs with retries",
		Long: `Run one or more commands concurrently, each as a job in the active
jobs panel. A failing command is retried with exponential backoff until the
attempt limit is reached.

Commands come from repeated --cmd flags (run through sh -c) and from the
arguments after "--". Titles from repeated --title flags are matched to
commands in order; commands without a title use the command text.`,
		Example: `  flame run -- make test
  flame run --cmd "go vet ./..." --cmd "go test ./..." --title vet --title test
  flame run --retries 5 --delay 2s --report run.yaml -- ./deploy.sh`,
		RunE: runCommands,
	}

	cmd.Flags().StringArray("cmd", nil, "Shell command to run as a job (repeatable)")
	cmd.Flags().StringArray("title", nil, "Job title, matched to commands in order (repeatable)")
	cmd.Flags().String("lock", "", "Lock file serializing terminal ownership between flame processes")
	cmd.Flags().Duration("lock-timeout", 30*time.Second, "Maximum time to wait for the terminal lock (0 fails at once when held)")
	cmd.Flags().String("report", "", "Write a YAML run report to this path")

	return cmd
}

func runCommands(cmd *cobra.Command, args []string) error {
	specs, err := collectJobs(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	lockPath, _ := cmd.Flags().GetString("lock")
	if lockPath != "" {
		timeout, _ := cmd.Flags().GetDuration("lock-timeout")
		lock := filelock.NewTerminalLock(lockPath)
		if err := lockTerminal(ctx, lock, timeout); err != nil {
			return err
		}
		defer lock.Release()
	}

	log := newLogger(cfg, cmd.OutOrStdout())
	defer log.Close()

	rep := report.New()
	var wg sync.WaitGroup
	for _, spec := range specs {
		wg.Add(1)
		go func(spec jobSpec) {
			defer wg.Done()
			rep.Add(runJob(ctx, log, spec))
		}(spec)
	}
	wg.Wait()

	completed, failed := rep.Counts()
	summary := fmt.Sprintf("%d job(s) completed, %d failed", completed, failed)
	if failed > 0 {
		log.LogError(summary)
	} else {
		log.Log(summary)
	}

	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath != "" {
		if err := rep.Write(reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d job(s) failed", failed, len(specs))
	}
	return nil
}

// lockTerminal takes lock, waiting up to timeout. A non-positive timeout
// fails at once if another process holds it.
func lockTerminal(ctx context.Context, lock *filelock.TerminalLock, timeout time.Duration) error {
	if timeout <= 0 {
		ok, err := lock.TryAcquire()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s is held by another process", filelock.ErrLockTimeout, lock.Path())
		}
		return nil
	}

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return lock.Acquire(lockCtx)
}

// collectJobs builds the job list from --cmd flags, trailing args and --title flags
func collectJobs(cmd *cobra.Command, args []string) ([]jobSpec, error) {
	commands, _ := cmd.Flags().GetStringArray("cmd")
	titles, _ := cmd.Flags().GetStringArray("title")

	var specs []jobSpec
	for _, c := range commands {
		if strings.TrimSpace(c) == "" {
			return nil, errors.New("--cmd must not be empty")
		}
		specs = append(specs, jobSpec{title: c, argv: []string{"sh", "-c", c}})
	}
	if len(args) > 0 {
		specs = append(specs, jobSpec{title: strings.Join(args, " "), argv: args})
	}

	if len(specs) == 0 {
		return nil, errors.New("no command given: use --cmd or pass a command after --")
	}
	if len(titles) > len(specs) {
		return nil, fmt.Errorf("%d title(s) given for %d command(s)", len(titles), len(specs))
	}
	for i, title := range titles {
		specs[i].title = title
	}
	return specs, nil
}

// runJob runs one command under the retry orchestrator and reports its outcome
func runJob(ctx context.Context, log *flame.Logger, spec jobSpec) report.Entry {
	entry := report.Entry{Title: spec.title, Command: spec.argv}
	start := time.Now()

	err := log.Retry(ctx, spec.title, func(ctx context.Context) error {
		entry.Attempts++
		out, err := exec.CommandContext(ctx, spec.argv[0], spec.argv[1:]...).CombinedOutput()
		if err != nil {
			if last := lastLine(out); last != "" {
				return fmt.Errorf("%w: %s", err, last)
			}
			return err
		}
		return nil
	})

	entry.Duration = time.Since(start)
	if err != nil {
		entry.Status = report.StatusFailed
		entry.Error = err.Error()
	} else {
		entry.Status = report.StatusCompleted
	}
	return entry
}

// lastLine returns the last non-empty line of command output
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
