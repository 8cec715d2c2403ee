package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"crosswarped.com/haiku"
	"crosswarped.com/haiku/pkg/syllable"
)

// debounceWindow is how long word-list events must settle before a
// regeneration. Editors tend to fire several events per save.
const debounceWindow = 300 * time.Millisecond

// watchAndRegenerate runs one generation, then keeps regenerating whenever
// a word-list file changes, until the context is canceled. The first run
// must succeed; later failures are logged and the watch continues.
func watchAndRegenerate(ctx context.Context, opts *GenerateOptions, cmd *cobra.Command, pattern haiku.Pattern, counter syllable.Counter) error {
	if _, err := generateOnce(ctx, opts, cmd, pattern, counter); err != nil {
		return err
	}

	files, err := matchWordLists(opts.Words)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve word lists to watch", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start file watcher", err)
	}
	defer watcher.Close()

	// Watch the parent directories rather than the files themselves, so
	// save-via-rename editors do not drop the watch.
	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			continue
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return WrapExitError(ExitCommandError, "failed to watch "+dir, err)
		}
	}
	slog.Info("watching word lists", "files", len(watched), "dirs", len(dirs))

	debounce := time.NewTimer(debounceWindow)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				slog.Debug("word list changed", "path", event.Name, "op", event.Op.String())
				debounce.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)

		case <-debounce.C:
			count, err := generateOnce(ctx, opts, cmd, pattern, counter)
			if err != nil {
				slog.Error("regeneration failed", "error", err)
				continue
			}
			slog.Info("regenerated", "poems", count)
		}
	}
}
