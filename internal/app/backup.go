package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// backupInterval is the cron spec for periodic full-project snapshots. The
// debounced autosave covers the live db; backups guard against a corrupted
// db file.
const backupInterval = "@every 10m"

// backupScheduler periodically dumps the open project to a JSON file.
type backupScheduler struct {
	app  *App
	dir  string
	cron *cron.Cron
	log  *slog.Logger
}

func newBackupScheduler(app *App, dir string) *backupScheduler {
	return &backupScheduler{
		app: app,
		dir: dir,
		log: slog.With("component", "backup"),
	}
}

func (b *backupScheduler) Start() {
	b.cron = cron.New()
	if _, err := b.cron.AddFunc(backupInterval, b.writeBackup); err != nil {
		b.log.Error("schedule backup", "err", err)
		return
	}
	b.cron.Start()
}

func (b *backupScheduler) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

func (b *backupScheduler) writeBackup() {
	// Cron goroutine: take the state lock just long enough to deep-copy the
	// project, then marshal and write without blocking gestures.
	b.app.mu.Lock()
	if b.app.projectID == "" {
		b.app.mu.Unlock()
		return
	}
	p := b.app.snapshot()
	b.app.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		b.log.Error("marshal backup", "err", err)
		return
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		b.log.Error("create backup dir", "err", err)
		return
	}
	name := fmt.Sprintf("%s-%s.json", p.ID, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(filepath.Join(b.dir, name), data, 0644); err != nil {
		b.log.Error("write backup", "err", err)
		return
	}
	b.log.Info("wrote backup", "file", name)
}
