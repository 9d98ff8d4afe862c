package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gfdtools/gfdfile/gfd"
	"github.com/spf13/cobra"
)

// Time to wait after the last change to a file before verifying it.
const settleDelay = 200 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Verify GFD files in a directory as they change",
		Long: `Watches DIR and verifies each file with a GFD extension when it is created
or written. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, args[0])
		},
	}
}

// watch verifies files in dir as they change, until ctx is done.
func (a *app) watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	a.logger.Info("watch", "dir", dir)

	// Paths are verified once they have not changed for settleDelay.
	pending := map[string]time.Time{}
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !(gfd.Format{}).CanDecode(nil, event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watch", "err", err)
		case now := <-ticker.C:
			for path, changed := range pending {
				if now.Sub(changed) < settleDelay {
					continue
				}
				delete(pending, path)
				a.verifyFile(path)
			}
		}
	}
}
