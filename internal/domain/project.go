package domain

import "time"

// Viewport is the zoom/pan state of one editor session. Scale is clamped to
// the editor's min/max zoom range before it is stored here.
type Viewport struct {
	Scale float64 `json:"scale"`
	Pan   Point   `json:"pan"`
}

// Project is the persisted form of one canvas: the item list plus the
// viewport the user left it at.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []Item    `json:"items"`
	Viewport  Viewport  `json:"viewport"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectStore interface {
	CreateProject(p *Project) error
	GetProject(id string) (*Project, error)
	ListProjects() ([]Project, error)
	SaveProject(p *Project) error
	DeleteProject(id string) error
}
