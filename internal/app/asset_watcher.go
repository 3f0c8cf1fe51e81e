package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"easel/internal/domain"
)

// settleDelay lets a dropped file finish writing before it becomes an item.
const settleDelay = 200 * time.Millisecond

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// assetWatcher watches the imports directory; image files dropped there
// become image items on the open canvas at an auto-placed position.
type assetWatcher struct {
	app     *App
	dir     string
	watcher *fsnotify.Watcher
	log     *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopCh  chan struct{}
}

func newAssetWatcher(app *App, dir string) *assetWatcher {
	return &assetWatcher{
		app:     app,
		dir:     dir,
		log:     slog.With("component", "asset-watcher"),
		pending: make(map[string]*time.Timer),
	}
}

func (w *assetWatcher) Start() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher
	w.stopCh = make(chan struct{})
	go w.loop()
	return nil
}

func (w *assetWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.mu.Lock()
	for _, t := range w.pending {
		t.Stop()
	}
	w.pending = map[string]*time.Timer{}
	w.mu.Unlock()
}

func (w *assetWatcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !imageExts[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			w.schedule(ev.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		case <-w.stopCh:
			return
		}
	}
}

// schedule debounces per path: repeated write events while the file is
// still being copied collapse into one import.
func (w *assetWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.importFile(path)
	})
}

// importFile runs on the debounce timer goroutine, so it takes the app state
// lock before touching the store.
func (w *assetWatcher) importFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	w.app.mu.Lock()
	defer w.app.mu.Unlock()
	const defaultW, defaultH = 320.0, 240.0
	x, y := w.app.layout.NextPosition(w.app.store.Items(), defaultW, defaultH)
	item := domain.Item{
		ID:     uuid.New().String(),
		Type:   domain.ItemTypeImage,
		X:      x,
		Y:      y,
		Width:  defaultW,
		Height: defaultH,
		Image:  &domain.ImageProps{Src: path},
	}
	w.app.store.Add(item)
	w.log.Info("imported dropped image", "path", path)
	w.app.onCanvasChanged()
}
