package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"easel/internal/canvas"
	"easel/internal/clipboard"
)

// newTestApp wires the live editor state without the Wails shell or the
// database, the way the standalone MCP entry point does.
func newTestApp() *App {
	a := New()
	a.store = canvas.NewStore()
	a.vp = canvas.Viewport{Scale: 1}
	a.controller = canvas.NewController(a.store, &a.vp)
	a.clip = clipboard.New()
	a.dispatcher = canvas.NewDispatcher(a.controller, a.clip)
	a.layout = canvas.NewLayoutEngine()
	a.controller.OnChange = a.onCanvasChanged
	return a
}

// Dropped-file imports and read bindings run on their own goroutines while
// pointer gestures mutate the same store; everything must serialize on the
// app state lock.
func TestApp_BackgroundImportsDuringGestures(t *testing.T) {
	a := newTestApp()
	w := newAssetWatcher(a, t.TempDir())
	img := filepath.Join(t.TempDir(), "drop.png")
	if err := os.WriteFile(img, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			w.importFile(img)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			a.GetItems()
			a.GetSelection()
			a.GetInteractionState()
		}
	}()

	a.SetTool("rectangle")
	for i := 0; i < rounds; i++ {
		fx := float64(i * 7)
		a.PointerDown(fx, fx, 0)
		a.PointerMove(fx+40, fx+30)
		a.PointerUp()
	}
	wg.Wait()

	items := a.GetItems()
	if len(items) != 2*rounds {
		t.Fatalf("expected %d items (drawn + imported), got %d", 2*rounds, len(items))
	}
}

// The MCP tool surface is another goroutine-entry into the store.
func TestApp_ConnectItemsDuringGestures(t *testing.T) {
	a := newTestApp()
	targetID := a.BeginGeneration("moodboard", 320, 240)
	if err := a.CompleteGeneration(targetID, "/assets/out.png", 320, 240); err != nil {
		t.Fatalf("complete: %v", err)
	}

	const rounds = 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < rounds; i++ {
			src, err := a.PlaceGeneratedImage("/assets/src.png", "", 100, 100, nil)
			if err != nil {
				t.Errorf("place: %v", err)
				return
			}
			if _, err := a.ConnectItems([]string{src.ID}, targetID); err != nil {
				t.Errorf("connect: %v", err)
				return
			}
		}
	}()

	a.SetTool("brush")
	for i := 0; i < rounds; i++ {
		fx := float64(i)
		a.PointerDown(fx, fx, 0)
		a.PointerMove(fx+5, fx-5)
		a.PointerUp()
	}
	<-done

	// rounds placed images + rounds connections + rounds brush strokes + target.
	if got := len(a.GetItems()); got != 3*rounds+1 {
		t.Fatalf("expected %d items, got %d", 3*rounds+1, got)
	}
}
