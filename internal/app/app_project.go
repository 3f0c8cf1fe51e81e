package app

import (
	"fmt"

	"easel/internal/domain"
)

// ============================================================
// Projects
// ============================================================

func (a *App) NewProject(name string) (*domain.Project, error) {
	p, err := a.projects.CreateProject(name)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.openProject(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// OpenProject loads a project into the editor, saving the one that was open.
func (a *App) OpenProject(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.openProject(id)
}

func (a *App) openProject(id string) error {
	a.saveNow()

	p, err := a.projects.GetProject(id)
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	a.projectID = p.ID
	a.projectName = p.Name
	a.store.Replace(p.Items)
	a.vp.Scale = p.Viewport.Scale
	a.vp.Pan = p.Viewport.Pan
	a.Emit(a.ctx, "project:opened", p.ID)
	return nil
}

func (a *App) ListProjects() ([]domain.Project, error) {
	return a.projects.ListProjects()
}

// RenameProject renames the project; a rename of the open project also
// refreshes the autosave snapshot name.
func (a *App) RenameProject(id, name string) error {
	if err := a.projects.RenameProject(id, name); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if id == a.projectID {
		a.projectName = name
		a.projects.ScheduleSave(a.snapshot())
	}
	return nil
}

func (a *App) DeleteProject(id string) error {
	a.mu.Lock()
	if id == a.projectID {
		a.projectID = ""
		a.projectName = ""
		a.store.Replace(nil)
	}
	a.mu.Unlock()
	return a.projects.DeleteProject(id)
}

// SaveProject persists the open project immediately, skipping the debounce.
func (a *App) SaveProject() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saveNow()
}

// CloseProject saves and detaches the open project.
func (a *App) CloseProject() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saveNow()
	a.projectID = ""
	a.projectName = ""
	a.store.Replace(nil)
}

// snapshot builds an immutable persisted-project snapshot of the live editor.
// Caller holds a.mu.
func (a *App) snapshot() *domain.Project {
	return a.projects.BuildSnapshot(a.projectID, a.projectName, a.store.Snapshot(), a.vp.State())
}

func (a *App) saveNow() {
	if a.projectID == "" {
		return
	}
	a.projects.SaveNow(a.snapshot())
}
