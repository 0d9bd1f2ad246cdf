// Package watch feeds new files in a directory to the transcription and
// formatting pipelines.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"github.com/mgpai22/zhsub/internal/audio"
	"github.com/mgpai22/zhsub/internal/logging"
	"github.com/mgpai22/zhsub/internal/subtitle"
)

// LockName is the lock file created in the watched directory.
const LockName = ".zhsub.lock"

// ErrLocked is returned when another process already watches the directory.
var ErrLocked = errors.New("directory is already being watched")

// Handler receives settled files. Media is called with every media file
// that appeared during one quiet period; Subtitle, when set, with each new
// subtitle file that is not itself a formatted copy.
type Handler struct {
	Media    func(ctx context.Context, paths []string)
	Subtitle func(ctx context.Context, path string)
}

type kind int

const (
	kindIgnored kind = iota
	kindMedia
	kindSubtitle
)

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	dir      string
	debounce time.Duration
	handler  Handler
	logger   *logging.Logger
	lock     *flock.Flock

	// last handled modification time per path
	handled map[string]time.Time
}

func New(dir string, debounce time.Duration, handler Handler, logger *logging.Logger) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory: %s is not a directory", dir)
	}
	if debounce <= 0 {
		debounce = 1500 * time.Millisecond
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		handler:  handler,
		logger:   logger.With("dir", dir),
		lock:     flock.New(filepath.Join(dir, LockName)),
		handled:  make(map[string]time.Time),
	}, nil
}

// Run blocks until ctx is done. Files are handed over once no event touched
// them for the debounce period, so half-copied files are not picked up.
func (w *Watcher) Run(ctx context.Context) error {
	locked, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", w.dir, err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = w.lock.Unlock() }()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Infow("watching for new files", "debounce", w.debounce)

	pending := make(map[string]kind)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			k := w.classify(event.Name)
			if k == kindIgnored {
				continue
			}
			w.logger.Debugw("file event", logging.FieldFile, event.Name, "op", event.Op.String())
			pending[event.Name] = k
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			w.logger.Warnw("watch error", "error", err)

		case <-timer.C:
			w.flush(ctx, pending)
			pending = make(map[string]kind)
		}
	}
}

func (w *Watcher) classify(path string) kind {
	name := filepath.Base(path)
	// hidden files include our lock and the temp files of atomic writes
	if strings.HasPrefix(name, ".") {
		return kindIgnored
	}
	if audio.IsMediaFile(path) {
		return kindMedia
	}
	if w.handler.Subtitle != nil && strings.EqualFold(filepath.Ext(name), ".srt") &&
		!strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), subtitle.FormattedSuffix) {
		return kindSubtitle
	}
	return kindIgnored
}

func (w *Watcher) flush(ctx context.Context, pending map[string]kind) {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var media []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if last, ok := w.handled[path]; ok && last.Equal(info.ModTime()) {
			continue
		}
		w.handled[path] = info.ModTime()

		switch pending[path] {
		case kindMedia:
			media = append(media, path)
		case kindSubtitle:
			if ctx.Err() == nil {
				w.handler.Subtitle(ctx, path)
			}
		}
	}

	if len(media) > 0 && w.handler.Media != nil && ctx.Err() == nil {
		w.logger.Infow("new media files", "count", len(media))
		w.handler.Media(ctx, media)
	}
}
