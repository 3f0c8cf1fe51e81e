package canvas

import (
	"strings"

	"easel/internal/clipboard"
	"easel/internal/domain"
)

// KeyContext describes the focus/modal situation at the time of a key event.
// Shortcuts are ignored entirely while a text item is being edited, while
// focus sits in a text input, or while a modal overlay is open.
type KeyContext struct {
	EditingText  bool
	InputFocused bool
	ModalOpen    bool
}

// digitTools maps the digit shortcut row to tool modes.
var digitTools = map[string]Tool{
	"1": ToolSelect,
	"2": ToolPan,
	"3": ToolText,
	"4": ToolBrush,
	"5": ToolRectangle,
	"6": ToolCircle,
	"7": ToolLine,
	"8": ToolArrow,
}

// Dispatcher maps key combinations to store/clipboard operations.
type Dispatcher struct {
	controller *Controller
	clip       *clipboard.Service
}

func NewDispatcher(controller *Controller, clip *clipboard.Service) *Dispatcher {
	return &Dispatcher{controller: controller, clip: clip}
}

// HandleKey dispatches one key event. mod is the platform modifier
// (ctrl/cmd). Returns whether the event was consumed.
func (d *Dispatcher) HandleKey(key string, mod bool, kctx KeyContext) bool {
	if kctx.EditingText || kctx.InputFocused || kctx.ModalOpen {
		return false
	}
	key = strings.ToLower(key)
	store := d.controller.Store()

	if tool, ok := digitTools[key]; ok && !mod {
		d.controller.ToggleTool(tool)
		return true
	}

	switch {
	case key == "delete" || key == "backspace":
		d.deleteSelection(store)
		return true

	case mod && key == "c":
		d.copySelection(store)
		return true

	case mod && key == "x":
		d.copySelection(store)
		d.deleteSelection(store)
		return true

	case mod && key == "v":
		d.paste(store)
		return true

	case mod && key == "d":
		pasted := clipboard.Duplicate(store.SelectedItems())
		d.insert(store, pasted)
		return true

	case mod && key == "a":
		var ids []string
		for _, it := range store.Items() {
			if it.Type != domain.ItemTypeConnection {
				ids = append(ids, it.ID)
			}
		}
		store.SetSelection(ids)
		d.controller.notify()
		return true
	}
	return false
}

// deleteSelection removes the selected items; the store's cascade rule also
// removes any connection attached to them.
func (d *Dispatcher) deleteSelection(store *Store) {
	ids := store.SelectedIDs()
	if len(ids) == 0 {
		return
	}
	store.DeleteMany(ids)
	d.controller.notify()
}

// copySelection fills the internal buffer and mirrors text content to the
// system clipboard, overwriting whatever was there — so a later paste either
// reads our own text back or falls through to the internal buffer.
func (d *Dispatcher) copySelection(store *Store) {
	items := store.SelectedItems()
	if len(items) == 0 {
		return
	}
	d.clip.Copy(items)
	var texts []string
	allText := true
	for _, it := range items {
		if it.Text == nil {
			allText = false
			break
		}
		texts = append(texts, it.Text.Content)
	}
	if allText {
		d.clip.WriteSystemText(strings.Join(texts, "\n"))
	} else {
		// Clear the system clipboard so paste falls through to the buffer.
		d.clip.WriteSystemText("")
	}
}

// paste prefers plain text from the system clipboard (a new text item at the
// last known pointer position); on read failure or empty clipboard it falls
// back to the internal buffer, and with nothing there it is a no-op.
func (d *Dispatcher) paste(store *Store) {
	if text, ok := d.clip.ReadSystemText(); ok {
		it := clipboard.TextItem(text, d.controller.Pointer())
		d.insert(store, []domain.Item{it})
		return
	}
	if pasted := d.clip.Paste(); pasted != nil {
		d.insert(store, pasted)
	}
}

func (d *Dispatcher) insert(store *Store, items []domain.Item) {
	if len(items) == 0 {
		return
	}
	var ids []string
	for _, it := range items {
		added := store.Add(it)
		ids = append(ids, added.ID)
	}
	store.SetSelection(ids)
	d.controller.notify()
}
