package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce собирает серию событий одного сохранения в один прогон
const watchDebounce = 100 * time.Millisecond

// watchFiles calls rerun after any of files changes until ctx is done.
// Directories are watched instead of the files themselves, so editors that
// save through rename are still seen.
func watchFiles(ctx context.Context, files []string, logw io.Writer, rerun func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(logw, "watch: %v\n", err)
		case <-fire:
			fire = nil
			fmt.Fprintf(logw, "--- %s: change detected, re-evaluating\n", time.Now().Format(time.TimeOnly))
			if err := rerun(); err != nil && !errors.Is(err, errFailed) {
				// файл мог пропасть посреди сохранения, ждём следующего события
				fmt.Fprintf(logw, "watch: %v\n", err)
			}
		}
	}
}
