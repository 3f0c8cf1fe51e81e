package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"easel/internal/domain"
	"easel/internal/service"
)

// CanvasAPI is the slice of the live editor the MCP tools operate on. The
// App struct implements it; tools never touch the store directly.
type CanvasAPI interface {
	// Items returns a snapshot of the current item list in paint order.
	Items() []domain.Item
	// SelectedIDs returns the current selection.
	SelectedIDs() []string
	// PlaceGeneratedImage creates an image item for a generation result at an
	// auto-placed position and routes provenance connections from the source
	// images that were selected when generation began.
	PlaceGeneratedImage(src, prompt string, width, height float64, sourceIDs []string) (domain.Item, error)
	// ConnectItems creates provenance connection items from each source to
	// the target, fanning in on a unified endpoint.
	ConnectItems(sourceIDs []string, targetID string) ([]domain.Item, error)
}

// Server is the MCP server for the editor. It exposes the generation/editing
// collaborator surface so AI agents can place results on the canvas.
type Server struct {
	mcp     *server.MCPServer
	canvas  CanvasAPI
	emitter service.EventEmitter
}

// Deps holds the dependencies passed from the App layer.
type Deps struct {
	Emitter service.EventEmitter
	Canvas  CanvasAPI
}

// New creates and configures a new MCP server with all tools registered.
func New(deps Deps) *Server {
	s := &Server{
		canvas:  deps.Canvas,
		emitter: deps.Emitter,
	}

	s.mcp = server.NewMCPServer(
		"easel-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerCanvasTools()
	return s
}

func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
