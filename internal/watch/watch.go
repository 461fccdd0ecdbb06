// Package watch re-runs a computation over a whole file every time it changes.
//
// The file is always re-read in full: results are recomputed from scratch,
// never patched incrementally. Bursts of write events are coalesced by a
// debounce timer, and log rotation can optionally be followed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bimmerbailey/squash/internal/source"
)

// Defaults applied by New when an option is zero.
const (
	DefaultDebounce      = 250 * time.Millisecond
	DefaultRotateTimeout = 10 * time.Second
	rotatePollInterval   = 100 * time.Millisecond
)

// ErrRotated is returned by Run when the file is removed or renamed and
// rotation is not being followed.
var ErrRotated = errors.New("file was removed or renamed")

// Options configures the watcher behavior.
type Options struct {
	Path string // File to watch

	// Debounce is the quiet period after the last change before OnChange runs.
	Debounce time.Duration

	// FollowRotate waits up to RotateTimeout for a removed file to reappear.
	FollowRotate  bool
	RotateTimeout time.Duration

	// OnChange receives every line of the file, once at start and once per
	// settled change. A non-nil error stops Run.
	OnChange func(lines []string) error

	Logger *slog.Logger
}

// Watcher recomputes over a file whenever it changes.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RotateTimeout <= 0 {
		opts.RotateTimeout = DefaultRotateTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{opts: opts}
}

// Run processes the file once, then again after every settled change. It
// blocks until ctx is cancelled (returning nil) or an error occurs.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.OnChange == nil {
		return errors.New("watch: OnChange is required")
	}

	if err := w.recompute(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher
	defer watcher.Close()

	if err := watcher.Add(w.opts.Path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Path, err)
	}

	return w.loop(ctx)
}

// loop dispatches fsnotify events. The debounce timer channel is nil while
// no change is pending.
func (w *Watcher) loop(ctx context.Context) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-pending:
			pending = nil
			if err := w.recompute(); err != nil {
				return err
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			w.opts.Logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if timer == nil {
					timer = time.NewTimer(w.opts.Debounce)
				} else {
					timer.Reset(w.opts.Debounce)
				}
				pending = timer.C

			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				if err := w.handleRotation(ctx); err != nil {
					return err
				}
				if ctx.Err() != nil {
					return nil
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// recompute reads the whole file and hands it to OnChange.
func (w *Watcher) recompute() error {
	lines, err := source.ReadFile(w.opts.Path)
	if err != nil {
		return err
	}
	w.opts.Logger.Debug("recomputing", "path", w.opts.Path, "lines", len(lines))
	return w.opts.OnChange(lines)
}

// handleRotation waits for the path to reappear, re-adds it to the watcher
// and recomputes over the new file.
func (w *Watcher) handleRotation(ctx context.Context) error {
	if !w.opts.FollowRotate {
		return fmt.Errorf("%s: %w (use --follow-rotate to keep watching)", w.opts.Path, ErrRotated)
	}

	w.opts.Logger.Info("file rotated, waiting for it to reappear", "path", w.opts.Path)

	timeout := time.NewTimer(w.opts.RotateTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(rotatePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout.C:
			return fmt.Errorf("timeout waiting for %s to reappear", w.opts.Path)
		case <-ticker.C:
			if _, err := os.Stat(w.opts.Path); err != nil {
				continue
			}
			// A rename leaves the old inode watched; drop it before re-adding.
			_ = w.watcher.Remove(w.opts.Path)
			if err := w.watcher.Add(w.opts.Path); err != nil {
				return fmt.Errorf("failed to watch rotated file: %w", err)
			}
			w.opts.Logger.Info("following new file", "path", w.opts.Path)
			return w.recompute()
		}
	}
}
