package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"easel/internal/domain"
)

// ProjectStore implements domain.ProjectStore using SQLite. The item list is
// stored as one JSON document per project: projects are loaded and saved
// whole, never item-by-item.
type ProjectStore struct {
	db *DB
}

func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) CreateProject(p *domain.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	_, err = s.db.Conn().Exec(
		`INSERT INTO projects (id, name, items_json, viewport_scale, viewport_x, viewport_y, thumbnail, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(items), p.Viewport.Scale, p.Viewport.Pan.X, p.Viewport.Pan.Y, p.Thumbnail, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *ProjectStore) GetProject(id string) (*domain.Project, error) {
	p := &domain.Project{}
	var items string
	err := s.db.Conn().QueryRow(
		`SELECT id, name, items_json, viewport_scale, viewport_x, viewport_y, thumbnail, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &items, &p.Viewport.Scale, &p.Viewport.Pan.X, &p.Viewport.Pan.Y, &p.Thumbnail, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects, most recently updated first. Item lists
// are included (projects are small documents, not per-item rows).
func (s *ProjectStore) ListProjects() ([]domain.Project, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, name, items_json, viewport_scale, viewport_x, viewport_y, thumbnail, created_at, updated_at FROM projects ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var items string
		if err := rows.Scan(&p.ID, &p.Name, &items, &p.Viewport.Scale, &p.Viewport.Pan.X, &p.Viewport.Pan.Y, &p.Thumbnail, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
			return nil, fmt.Errorf("parse items for %s: %w", p.ID, err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *ProjectStore) SaveProject(p *domain.Project) error {
	p.UpdatedAt = time.Now()
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	res, err := s.db.Conn().Exec(
		`UPDATE projects SET name = ?, items_json = ?, viewport_scale = ?, viewport_x = ?, viewport_y = ?, thumbnail = ?, updated_at = ? WHERE id = ?`,
		p.Name, string(items), p.Viewport.Scale, p.Viewport.Pan.X, p.Viewport.Pan.Y, p.Thumbnail, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.CreateProject(p)
	}
	return nil
}

func (s *ProjectStore) DeleteProject(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}
