// Package watch regenerates accessors when resource sources change.
//
// Events are debounced so an editor's save burst produces one run, and
// runs are rate limited per minute. Generated files, satellites and
// backups never trigger a run. A change to resgen.toml regenerates every
// source under the watched directories.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/generate"
	"github.com/teranos/resgen/logger"
)

// Handler regenerates the given inputs. It runs on the watcher's goroutine.
type Handler func(ctx context.Context, inputs []string)

// Options configure a Watcher
type Options struct {
	Dirs []string
	// Include selects JSON, YAML and TOML sources, as in generate.Discover
	Include          []string
	Debounce         time.Duration
	MaxRunsPerMinute int // 0 = unlimited
	Logger           *zap.SugaredLogger
}

// OptionsFromConfig fills timing options from cfg
func OptionsFromConfig(cfg *config.Config, dirs []string) Options {
	return Options{
		Dirs:             dirs,
		Include:          cfg.Generate.Include,
		Debounce:         time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		MaxRunsPerMinute: cfg.Watch.MaxRunsPerMinute,
	}
}

// Watcher watches resource directories
type Watcher struct {
	opts    Options
	fs      *fsnotify.Watcher
	handler Handler
	limiter *rate.Limiter
	logger  *zap.SugaredLogger

	pending       map[string]bool
	configChanged bool
}

// New creates a watcher over opts.Dirs and their subdirectories
func New(opts Options, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, errors.NewInvalidRequestError("watch handler is nil")
	}
	if len(opts.Dirs) == 0 {
		return nil, errors.NewInvalidRequestError("no directories to watch")
	}
	if opts.Logger == nil {
		opts.Logger = logger.ComponentLogger("watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		opts:    opts,
		fs:      fsw,
		handler: handler,
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  opts.Logger,
		pending: make(map[string]bool),
	}
	if opts.MaxRunsPerMinute > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(float64(opts.MaxRunsPerMinute)/60.0), 1)
	}

	for _, dir := range opts.Dirs {
		if err := w.addTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches dir and every non-hidden directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "failed to walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		w.logger.Debugw("Watching directory", "dir", path)
		return nil
	})
}

// Run processes events until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.accept(event) {
				fire = time.After(w.opts.Debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)

		case <-fire:
			fire = nil
			if !w.flush(ctx) {
				// rate limited; the pending set is kept for the next window
				fire = time.After(w.retryDelay())
			}
		}
	}
}

// accept records event and reports whether a run should be scheduled
func (w *Watcher) accept(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warnw("Failed to watch new directory", logger.FieldError, err)
				}
			}
			return false
		}
	}

	if filepath.Base(event.Name) == config.ProjectConfigFile {
		w.logger.Infow("Config changed, regenerating everything", logger.FieldFile, event.Name)
		w.configChanged = true
		return true
	}

	if !generate.IsCandidate(w.root(event.Name), event.Name, w.opts.Include) {
		return false
	}

	w.logger.Debugw("Source changed", logger.FieldFile, event.Name, "op", event.Op.String())
	w.pending[event.Name] = true
	return true
}

// root returns the watched directory path lies under
func (w *Watcher) root(path string) string {
	for _, dir := range w.opts.Dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return dir
		}
	}
	return filepath.Dir(path)
}

// flush hands the pending inputs to the handler. It returns false when the
// rate limiter refused the run.
func (w *Watcher) flush(ctx context.Context) bool {
	if len(w.pending) == 0 && !w.configChanged {
		return true
	}
	if !w.limiter.Allow() {
		w.logger.Debugw("Regeneration rate limited", logger.FieldCount, len(w.pending))
		return false
	}

	inputs := w.drain()
	if len(inputs) > 0 {
		w.handler(ctx, inputs)
	}
	return true
}

// drain empties the pending set and returns what to regenerate
func (w *Watcher) drain() []string {
	defer func() {
		w.pending = make(map[string]bool)
		w.configChanged = false
	}()

	if w.configChanged {
		inputs, err := generate.Discover(w.opts.Dirs, w.opts.Include)
		if err != nil {
			w.logger.Warnw("Failed to discover sources", logger.FieldError, err)
		} else {
			return inputs
		}
	}

	inputs := make([]string, 0, len(w.pending))
	for path := range w.pending {
		// deleted between the event and the flush
		if _, err := os.Stat(path); err == nil {
			inputs = append(inputs, path)
		}
	}
	sort.Strings(inputs)
	return inputs
}

func (w *Watcher) retryDelay() time.Duration {
	r := w.limiter.Reserve()
	delay := r.Delay()
	r.Cancel()
	if delay < w.opts.Debounce {
		delay = w.opts.Debounce
	}
	return delay
}

// Close stops watching. Run also closes the watcher when it returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
