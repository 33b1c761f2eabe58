package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reusee/mdll/logs"
	"github.com/reusee/mdll/mdllconfigs"
)

const watchDelay = 100 * time.Millisecond

// Watch processes req, then again whenever a file beside an input changes,
// until ctx is done. Failed runs are logged and do not stop watching.
type Watch func(ctx context.Context, req Request) error

func (Module) Watch(
	logger logs.Logger,
	process Process,
	suffix mdllconfigs.OutputSuffix,
) Watch {
	return func(ctx context.Context, req Request) error {
		if len(req.Inputs) == 0 {
			return ErrNoInput
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return wrap(err)
		}
		defer watcher.Close()

		// outputs are written by this process
		ignore := make(map[string]bool)
		dirs := make(map[string]bool)
		for _, input := range req.Inputs {
			abs, err := filepath.Abs(input)
			if err != nil {
				return wrap(err)
			}
			dirs[filepath.Dir(abs)] = true
			if output := outputPath(req, input, suffix); output != "" {
				abs, err := filepath.Abs(output)
				if err != nil {
					return wrap(err)
				}
				ignore[abs] = true
			}
		}
		for dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return wrap(err)
			}
		}

		rerun := func() {
			if err := process(ctx, req); err != nil {
				logger.ErrorContext(ctx, "expand failed", "error", err)
			}
		}
		rerun()

		var fire <-chan time.Time
		for {
			select {

			case <-ctx.Done():
				return nil

			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
					!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
					continue
				}
				// temporary outputs
				if strings.HasPrefix(filepath.Base(ev.Name), ".") {
					continue
				}
				if abs, err := filepath.Abs(ev.Name); err == nil && ignore[abs] {
					continue
				}
				logger.DebugContext(ctx, "changed", "path", ev.Name, "op", ev.Op.String())
				fire = time.After(watchDelay)

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.WarnContext(ctx, "watch", "error", err)

			case <-fire:
				fire = nil
				rerun()

			}
		}
	}
}
