package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/logger"
	"github.com/hermes-labs/hermes-cli/internal/sidecar"
)

// watchDebounce coalesces bursts of file events into one sync pass.
const watchDebounce = 300 * time.Millisecond

var watchWorkerPath string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and keep the index reconciled",
	Long: `Watches the workspace directory for page file changes (from editors
or other tools) and runs an index reconciliation pass after each
change. With --worker, a companion worker process is started for the
watch session and stopped on exit. Stops on interrupt.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchWorkerPath, "worker", "",
		"worker binary started for the watch session")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	if watchWorkerPath != "" {
		worker, err := startWatchWorker(context.Background(), watchWorkerPath)
		if err != nil {
			return fmt.Errorf("starting worker %s: %w", watchWorkerPath, err)
		}
		defer stopWatchWorker(worker)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := os.MkdirAll(workspaceRoot, 0o755); err != nil {
		return fmt.Errorf("creating workspace directory %s: %w", workspaceRoot, err)
	}
	if err := watcher.Add(workspaceRoot); err != nil {
		return fmt.Errorf("watching %s: %w", workspaceRoot, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cmd.Printf("Watching %s (ctrl-c to stop)...\n", workspaceRoot)

	ctx := context.Background()
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPageEvent(event) {
				continue
			}
			logger.Debug("page event: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := workspaceService.Resync(ctx, workspaceRoot); err != nil {
				logger.Error("resync after change: %v", err)
				continue
			}
			cmd.Println("Index reconciled.")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)

		case <-sigCh:
			cmd.Println("Stopping watch.")
			return nil
		}
	}
}

// startWatchWorker launches the session worker. The handle lives for
// the duration of the watch.
func startWatchWorker(ctx context.Context, path string, args ...string) (*sidecar.Manager, error) {
	worker := sidecar.New(path, args...)
	if err := worker.Start(ctx); err != nil {
		return nil, err
	}
	return worker, nil
}

// stopWatchWorker releases the session worker. The worker may have
// already exited on its own, which is not an error worth surfacing.
func stopWatchWorker(worker *sidecar.Manager) {
	if err := worker.Stop(); err != nil && !errors.Is(err, domain.ErrSidecarNotRunning) {
		logger.Warn("stopping worker: %v", err)
	}
}

// isPageEvent reports whether the event concerns a known page file.
func isPageEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	for _, slot := range domain.Slots() {
		if name == slot.Filename() {
			return true
		}
	}
	return false
}
