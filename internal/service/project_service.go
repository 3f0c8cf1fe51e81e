package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"easel/internal/domain"
	"easel/internal/export"
)

// ─────────────────────────────────────────────────────────────
// Project Service — persistence of canvas projects
// ─────────────────────────────────────────────────────────────

// ProjectService manages project lifecycle and owns the autosave scheduler.
type ProjectService struct {
	store    domain.ProjectStore
	emitter  EventEmitter
	autosave *AutoSave
	thumbs   *export.Renderer
	thumbDir string
}

// NewProjectService creates a ProjectService. thumbs may be nil to disable
// rendered thumbnails.
func NewProjectService(store domain.ProjectStore, emitter EventEmitter, thumbs *export.Renderer, thumbDir string) *ProjectService {
	s := &ProjectService{store: store, emitter: emitter, thumbs: thumbs, thumbDir: thumbDir}
	s.autosave = NewAutoSave(DefaultAutoSaveDelay, s.persist)
	return s
}

// CreateProject creates an empty project.
func (s *ProjectService) CreateProject(name string) (*domain.Project, error) {
	p := &domain.Project{
		ID:       uuid.New().String(),
		Name:     name,
		Viewport: domain.Viewport{Scale: 1},
	}
	if err := s.store.CreateProject(p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) GetProject(id string) (*domain.Project, error) {
	return s.store.GetProject(id)
}

func (s *ProjectService) ListProjects() ([]domain.Project, error) {
	return s.store.ListProjects()
}

func (s *ProjectService) RenameProject(id, name string) error {
	p, err := s.store.GetProject(id)
	if err != nil {
		return err
	}
	p.Name = name
	return s.store.SaveProject(p)
}

func (s *ProjectService) DeleteProject(id string) error {
	return s.store.DeleteProject(id)
}

// BuildSnapshot assembles an immutable persisted-project snapshot from the
// live editor state. The thumbnail reference is taken from the first image
// item; projects without images get a rendered thumbnail at save time.
func (s *ProjectService) BuildSnapshot(id, name string, items []domain.Item, vp domain.Viewport) *domain.Project {
	p := &domain.Project{
		ID:        id,
		Name:      name,
		Items:     items,
		Viewport:  vp,
		UpdatedAt: time.Now(),
	}
	for i := range items {
		if items[i].Image != nil {
			p.Thumbnail = items[i].Image.Src
			break
		}
	}
	return p
}

// ScheduleSave (re)starts the debounced save for the snapshot.
func (s *ProjectService) ScheduleSave(p *domain.Project) {
	s.autosave.Schedule(p)
}

// SaveNow persists a snapshot immediately.
func (s *ProjectService) SaveNow(p *domain.Project) {
	s.autosave.Cancel()
	s.persist(p)
}

// Shutdown flushes any pending save synchronously. Called on editor
// teardown so no trailing edit is lost.
func (s *ProjectService) Shutdown() {
	s.autosave.Flush()
}

func (s *ProjectService) persist(p *domain.Project) {
	if p.Thumbnail == "" && s.thumbs != nil && len(p.Items) > 0 {
		path := filepath.Join(s.thumbDir, p.ID+".png")
		if err := s.thumbs.RenderPNG(p.Items, path); err == nil {
			p.Thumbnail = path
		}
	}
	p.UpdatedAt = time.Now()
	if err := s.store.SaveProject(p); err != nil {
		// Persistence errors belong to the surrounding layer; report and
		// keep the editor responsive.
		if s.emitter != nil {
			s.emitter.Emit(context.Background(), "project:save-error", err.Error())
		}
		return
	}
	if s.emitter != nil {
		s.emitter.Emit(context.Background(), "project:saved", p.ID)
	}
}
