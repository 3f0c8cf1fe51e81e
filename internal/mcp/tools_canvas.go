package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerCanvasTools() {
	s.mcp.AddTool(mcp.NewTool("list_canvas_items",
		mcp.WithDescription("List all items on the canvas with their IDs, types, and geometry"),
	), s.handleListCanvasItems)

	s.mcp.AddTool(mcp.NewTool("get_selection",
		mcp.WithDescription("Get the IDs of the currently selected items"),
	), s.handleGetSelection)

	s.mcp.AddTool(mcp.NewTool("place_generated_image",
		mcp.WithDescription("Place a generated image on the canvas at a free position, with provenance connections from its source images"),
		mcp.WithString("src", mcp.Description("Image payload reference (file path or URL)"), mcp.Required()),
		mcp.WithString("prompt", mcp.Description("Generation prompt, stored as provenance")),
		mcp.WithNumber("width", mcp.Description("Final pixel width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("Final pixel height"), mcp.Required()),
		mcp.WithString("sourceIds", mcp.Description("Comma-separated IDs of the source images (optional, defaults to current selection)")),
	), s.handlePlaceGeneratedImage)

	s.mcp.AddTool(mcp.NewTool("connect_items",
		mcp.WithDescription("Create provenance connection curves from source items to a target item"),
		mcp.WithString("sourceIds", mcp.Description("Comma-separated source item IDs"), mcp.Required()),
		mcp.WithString("targetId", mcp.Description("Target item ID"), mcp.Required()),
	), s.handleConnectItems)
}

func (s *Server) handleListCanvasItems(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type itemInfo struct {
		ID     string  `json:"id"`
		Type   string  `json:"type"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		ZIndex int     `json:"zIndex"`
	}
	items := s.canvas.Items()
	out := make([]itemInfo, 0, len(items))
	for _, it := range items {
		out = append(out, itemInfo{
			ID: it.ID, Type: string(it.Type),
			X: it.X, Y: it.Y, Width: it.Width, Height: it.Height,
			ZIndex: it.ZIndex,
		})
	}
	return jsonResult(out)
}

func (s *Server) handleGetSelection(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.canvas.SelectedIDs())
}

func (s *Server) handlePlaceGeneratedImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	src, _ := args["src"].(string)
	prompt, _ := args["prompt"].(string)
	width, _ := args["width"].(float64)
	height, _ := args["height"].(float64)

	sourceIDs := s.canvas.SelectedIDs()
	if raw, ok := args["sourceIds"].(string); ok && raw != "" {
		sourceIDs = splitIDs(raw)
	}

	item, err := s.canvas.PlaceGeneratedImage(src, prompt, width, height, sourceIDs)
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, "mcp:canvas-changed", map[string]string{"itemId": item.ID})
	return jsonResult(item)
}

func (s *Server) handleConnectItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	targetID, _ := args["targetId"].(string)
	raw, _ := args["sourceIds"].(string)

	conns, err := s.canvas.ConnectItems(splitIDs(raw), targetID)
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, "mcp:canvas-changed", map[string]string{"itemId": targetID})
	return jsonResult(conns)
}

func splitIDs(raw string) []string {
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
