package batch

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig controls inbox watching.
type WatchConfig struct {
	Root        string        // inbox directory, watched recursively
	SettleDelay time.Duration // wait for copy bursts to finish before firing
}

// Watch watches the inbox tree and emits a signal on the returned channel
// after new or rewritten PDFs settle. Several files arriving together
// coalesce into one signal, so a drag-and-drop of a whole folder triggers a
// single batch run. The channel closes when ctx is cancelled.
func Watch(ctx context.Context, cfg WatchConfig) (<-chan struct{}, error) {
	if cfg.Root == "" {
		return nil, errors.New("no inbox directory to watch")
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 2 * time.Second
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the inbox and every existing vendor folder.
	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	trigger := make(chan struct{}, 1)

	go func() {
		defer close(trigger)
		defer func() { _ = w.Close() }()

		var timer *time.Timer
		fire := func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&fsnotify.Create != 0 {
					// A new vendor folder needs watching too. Adding a
					// plain file fails quietly on some platforms; ignore.
					_ = w.Add(e.Name)
				}
				if !isPDF(e.Name) || e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(cfg.SettleDelay, fire)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("inbox watcher: %v", err)
			}
		}
	}()

	return trigger, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
