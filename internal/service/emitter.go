package service

import "context"

// EventEmitter is the event sink services publish through. The App implements
// it over wailsRuntime.EventsEmit; the headless MCP entry point supplies a
// no-op, and tests record emissions with an in-package mock. Services never
// hold a Wails context directly.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}
