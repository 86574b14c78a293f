package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driving"
	"github.com/patternpath/pagepatch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-patch lesson pages as they change",
	Long: `Runs the pipeline once over the corpus, then watches the corpus
directory and re-runs it for each page that is created or written.
Pages pagepatch itself rewrites are seen again but are already applied,
so they settle after one pass. Stop with Ctrl+C.`,
	RunE: runWatch,
}

var watchInitial bool

// watchDebounce groups bursts of editor writes into a single run.
var watchDebounce = 200 * time.Millisecond

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", true, "run over the whole corpus before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if batchDriver == nil {
		return errors.New("batch driver not configured")
	}
	ctx := cmd.Context()

	if watchInitial {
		report, err := batchDriver.Run(ctx, driving.RunOptions{})
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		printReport(cmd, report)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(config.CorpusDir); err != nil {
		return fmt.Errorf("watch %s: %w", config.CorpusDir, err)
	}
	cmd.Printf("Watching %s for changes...\n", config.CorpusDir)

	return watchLoop(ctx, cmd, w.Events, w.Errors)
}

// watchLoop collects changed pages and runs the pipeline on them once the
// events have been quiet for watchDebounce. It returns when ctx is done or
// the event channel closes.
func watchLoop(ctx context.Context, cmd *cobra.Command, events <-chan fsnotify.Event, errs <-chan error) error {
	s := stylesFor(cmd.OutOrStdout())
	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			name, relevant := watchedPage(ev)
			if !relevant {
				continue
			}
			logger.Debug("change: %s %s", ev.Op, name)
			pending[name] = true
			timer.Reset(watchDebounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			clear(pending)

			for _, name := range names {
				o := batchDriver.RunFile(ctx, name, driving.RunOptions{})
				if o.Status == domain.StatusAlreadyApplied {
					logger.Debug("%s: already applied", name)
					continue
				}
				printOutcome(cmd, s, o)
			}
		}
	}
}

// watchedPage returns the document name for events that should trigger a run.
func watchedPage(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, domain.DocumentExt) || strings.HasPrefix(name, ".") {
		return "", false
	}
	if config.IsExcluded(name) {
		return "", false
	}
	return name, true
}
