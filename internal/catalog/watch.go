package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of events, such as a template copy, into
// a single notification.
const DefaultDebounce = 200 * time.Millisecond

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// Watcher signals when the set of projects under a directory may have
// changed. It carries no data; receivers call List again.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	log      *zap.Logger
}

// NewWatcher creates a watcher for projectsDir. The directory must exist.
func NewWatcher(projectsDir string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	if err := fw.Add(projectsDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", projectsDir, err)
	}

	return &Watcher{
		dir:      projectsDir,
		debounce: debounce,
		watcher:  fw,
		changes:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
		log:      log.Named("watch"),
	}, nil
}

// Start processes filesystem events in a background goroutine until ctx is
// done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Changes delivers one value per debounced burst of changes. The channel is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Stop releases the underlying watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.stop:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Not recursive: only projects being added, removed or
			// renamed are seen.
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.log.Debug("project directory changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// A notification is already pending.
			}
		}
	}
}
