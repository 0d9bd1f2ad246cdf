package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

type recorder struct {
	mu        sync.Mutex
	media     [][]string
	subtitles []string
	notify    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan struct{}, 16)}
}

func (r *recorder) handler() Handler {
	return Handler{
		Media: func(_ context.Context, paths []string) {
			r.mu.Lock()
			r.media = append(r.media, paths)
			r.mu.Unlock()
			r.notify <- struct{}{}
		},
		Subtitle: func(_ context.Context, path string) {
			r.mu.Lock()
			r.subtitles = append(r.subtitles, path)
			r.mu.Unlock()
			r.notify <- struct{}{}
		},
	}
}

func (r *recorder) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.notify:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for handler call %d", i+1)
		}
	}
}

func startWatcher(t *testing.T, w *Watcher) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelFn := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// wait for the lock, which Run takes before watching
	lockPath := filepath.Join(w.dir, LockName)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(lockPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("watcher did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	return cancelFn, errc
}

func TestWatcherBatchesMediaAndReformatsSubtitles(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(dir, 300*time.Millisecond, rec.handler(), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	cancel, done := startWatcher(t, w)

	for _, name := range []string{"b.mp3", "a.mp4", "notes.txt", ".hidden.mp3", "talk_cht.srt", "talk_cht_formatted.srt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rec.wait(t, 2)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	wantMedia := [][]string{{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp3")}}
	if !reflect.DeepEqual(rec.media, wantMedia) {
		t.Errorf("media = %v, want %v", rec.media, wantMedia)
	}
	if want := []string{filepath.Join(dir, "talk_cht.srt")}; !reflect.DeepEqual(rec.subtitles, want) {
		t.Errorf("subtitles = %v, want %v", rec.subtitles, want)
	}
}

func TestWatcherSingleInstance(t *testing.T) {
	dir := t.TempDir()
	other := flock.New(filepath.Join(dir, LockName))
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not take lock: %v", err)
	}
	defer other.Unlock()

	w, err := New(dir, 0, Handler{}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := w.Run(context.Background()); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestNewRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.mp3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path, 0, Handler{}, nil); err == nil {
		t.Fatal("expected error for non-directory")
	}
}

func TestClassify(t *testing.T) {
	w := &Watcher{handler: Handler{Subtitle: func(context.Context, string) {}}}
	tests := map[string]kind{
		"/d/talk.mp3":               kindMedia,
		"/d/clip.MKV":               kindMedia,
		"/d/talk_cht.srt":           kindSubtitle,
		"/d/talk_cht_formatted.srt": kindIgnored,
		"/d/.zhsub-123.tmp":         kindIgnored,
		"/d/talk_cht.txt":           kindIgnored,
	}
	for path, want := range tests {
		if got := w.classify(path); got != want {
			t.Errorf("classify(%q) = %v, want %v", path, got, want)
		}
	}

	noSubs := &Watcher{}
	if noSubs.classify("/d/talk.srt") != kindIgnored {
		t.Error("subtitles must be ignored without a handler")
	}
}
