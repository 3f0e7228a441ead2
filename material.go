package readtrack

import (
	"context"
	"time"
)

// MaterialKind distinguishes single documents from multi-chapter materials.
type MaterialKind string

// MaterialKind constants.
const (
	KindSingle MaterialKind = "single"
	KindBook   MaterialKind = "book"
)

// Material represents a tracked document or document set.
type Material struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      MaterialKind `json:"kind"`
	SourceURL string       `json:"sourceUrl"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Validate returns an error if the material contains invalid fields.
func (m *Material) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "material name required")
	}
	if m.SourceURL == "" {
		return Errorf(EINVALID, "material source URL required")
	}
	switch m.Kind {
	case KindSingle, KindBook:
	default:
		return Errorf(EINVALID, "unknown material kind %q", m.Kind)
	}
	return nil
}

// MaterialService represents a service for managing materials.
type MaterialService interface {
	// CreateMaterial creates a new material.
	// Returns ECONFLICT if a material with the same name exists.
	CreateMaterial(ctx context.Context, material *Material) error

	// FindMaterialByID retrieves a material by ID.
	// Returns ENOTFOUND if material does not exist.
	FindMaterialByID(ctx context.Context, id string) (*Material, error)

	// FindMaterials retrieves materials matching the filter.
	FindMaterials(ctx context.Context, filter MaterialFilter) ([]*Material, error)

	// DeleteMaterial permanently removes a material with its chapters and quotes.
	// Returns ENOTFOUND if material does not exist.
	DeleteMaterial(ctx context.Context, id string) error
}

// MaterialFilter represents a filter for FindMaterials.
type MaterialFilter struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
