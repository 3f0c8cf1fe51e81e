package app

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"easel/internal/canvas"
	"easel/internal/clipboard"
	"easel/internal/export"
	mcpserver "easel/internal/mcp"
	"easel/internal/service"
	"easel/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI, operating on the most recently updated project.
func ServeMCP() {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "easel")
	dbPath := filepath.Join(dataDir, "easel.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	a := New()
	a.db = db
	a.projects = service.NewProjectService(
		storage.NewProjectStore(db), noopEmitter{},
		export.NewRenderer(320, 200), filepath.Join(dataDir, "thumbnails"))
	a.store = canvas.NewStore()
	a.vp = canvas.Viewport{Scale: 1}
	a.controller = canvas.NewController(a.store, &a.vp)
	a.clip = clipboard.New()
	a.dispatcher = canvas.NewDispatcher(a.controller, a.clip)
	a.layout = canvas.NewLayoutEngine()
	a.controller.OnChange = a.onCanvasChanged

	// Open the most recent project so tools have a canvas to work on.
	if projects, err := a.projects.ListProjects(); err == nil && len(projects) > 0 {
		if err := a.OpenProject(projects[0].ID); err != nil {
			log.Printf("[MCP] open project: %v", err)
		}
	}
	defer func() {
		a.SaveProject()
		a.projects.Shutdown()
	}()

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Emitter: noopEmitter{},
		Canvas:  a,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
