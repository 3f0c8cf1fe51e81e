package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"easel/internal/canvas"
	"easel/internal/clipboard"
	"easel/internal/collab"
	"easel/internal/domain"
	"easel/internal/export"
	"easel/internal/service"
	"easel/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	db       *storage.DB
	projects *service.ProjectService

	// mu serializes all access to the live editor state below. The store and
	// controller carry no locks of their own, so every exported binding takes
	// mu, and so do the background producers (asset watcher, backup cron, MCP
	// tools). Unexported helpers assume the caller holds it.
	mu sync.Mutex

	store      *canvas.Store
	vp         canvas.Viewport
	controller *canvas.Controller
	dispatcher *canvas.Dispatcher
	clip       *clipboard.Service
	layout     *canvas.LayoutEngine

	projectID   string
	projectName string

	// Pending generations: placeholder item id → source image ids captured
	// when generation began.
	pendingGen map[string][]string

	collab  *collab.Client
	watcher *assetWatcher
	backups *backupScheduler
}

// New creates a new App.
func New() *App {
	return &App{pendingGen: make(map[string][]string)}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "easel")
	dbPath := filepath.Join(dataDir, "easel.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db

	renderer := export.NewRenderer(320, 200)
	a.projects = service.NewProjectService(
		storage.NewProjectStore(db), a, renderer, filepath.Join(dataDir, "thumbnails"))

	a.store = canvas.NewStore()
	a.vp = canvas.Viewport{Scale: 1}
	a.controller = canvas.NewController(a.store, &a.vp)
	a.clip = clipboard.New()
	a.dispatcher = canvas.NewDispatcher(a.controller, a.clip)
	a.layout = canvas.NewLayoutEngine()

	a.controller.OnChange = a.onCanvasChanged
	a.controller.OnCursorMove = a.broadcastCursor
	a.controller.OnOverlayCommit = func() {
		a.Emit(ctx, "canvas:overlay-commit", nil)
	}

	a.watcher = newAssetWatcher(a, filepath.Join(dataDir, "imports"))
	if err := a.watcher.Start(); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start asset watcher: %v", err)
	}

	a.backups = newBackupScheduler(a, filepath.Join(dataDir, "backups"))
	a.backups.Start()

	if url := os.Getenv("EASEL_COLLAB_URL"); url != "" {
		a.ConnectCollab(url)
	}
}

// Shutdown is called when the app is closing. The final save is issued
// synchronously so no trailing edit is lost.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.backups != nil {
		a.backups.Stop()
	}
	a.DisconnectCollab()
	if a.projects != nil {
		a.mu.Lock()
		a.saveNow()
		a.mu.Unlock()
		a.projects.Shutdown()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Emit implements service.EventEmitter by delegating to wailsRuntime.
func (a *App) Emit(_ context.Context, event string, data any) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

// onCanvasChanged runs after every item/viewport mutation: re-render and
// (re)start the debounced autosave.
func (a *App) onCanvasChanged() {
	a.Emit(a.ctx, "canvas:changed", nil)
	if a.projectID == "" {
		return
	}
	a.projects.ScheduleSave(a.snapshot())
}

// broadcastCursor relays the local pointer position when a collaboration
// session is active. Fire-and-forget on the pointer-move hot path.
func (a *App) broadcastCursor(p domain.Point) {
	if a.collab != nil {
		a.collab.SendCursor(p)
	}
}

// broadcastSelection relays the local selection after gestures and shortcuts.
func (a *App) broadcastSelection() {
	if a.collab != nil {
		a.collab.SendSelection(a.store.SelectedIDs())
	}
}

// ConnectCollab joins a collaboration session. Remote cursor/selection events
// are re-emitted to the frontend for rendering only.
func (a *App) ConnectCollab(url string) error {
	a.mu.Lock()
	projectID := a.projectID
	a.mu.Unlock()
	client, err := collab.Dial(context.Background(), url, uuid.New().String(), projectID, a)
	if err != nil {
		return fmt.Errorf("connect collab: %w", err)
	}
	a.mu.Lock()
	a.collab = client
	a.mu.Unlock()
	return nil
}

// DisconnectCollab leaves the collaboration session.
func (a *App) DisconnectCollab() {
	a.mu.Lock()
	client := a.collab
	a.collab = nil
	a.mu.Unlock()
	if client != nil {
		client.Close()
	}
}
