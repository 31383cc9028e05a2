package columns

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the override file whenever it changes and hands the result to onChange.
// The parent directory is watched so editors that replace the file are seen too. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(Overrides, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			onChange(LoadOverrides(target))
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}
