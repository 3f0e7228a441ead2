package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readtrack.MaterialService = (*MaterialService)(nil)

// MaterialService implements readtrack.MaterialService using SQLite.
type MaterialService struct {
	db *DB
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(db *DB) *MaterialService {
	return &MaterialService{db: db}
}

const materialColumns = "id, name, kind, source_url, created_at, updated_at"

// CreateMaterial creates a new material.
func (s *MaterialService) CreateMaterial(ctx context.Context, material *readtrack.Material) error {
	if material.Kind == "" {
		material.Kind = readtrack.KindSingle
	}
	if err := material.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM materials WHERE name = ?", material.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return readtrack.Errorf(readtrack.ECONFLICT, "material %q already exists", material.Name)
	}

	material.ID = uuid.New().String()
	now := time.Now().UTC()
	material.CreatedAt = now
	material.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO materials (id, name, kind, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, material.ID, material.Name, string(material.Kind), material.SourceURL,
		formatTime(material.CreatedAt), formatTime(material.UpdatedAt))

	return err
}

// FindMaterialByID retrieves a material by ID.
func (s *MaterialService) FindMaterialByID(ctx context.Context, id string) (*readtrack.Material, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+materialColumns+" FROM materials WHERE id = ?", id)
	material, err := scanMaterial(row)
	if err == sql.ErrNoRows {
		return nil, readtrack.Errorf(readtrack.ENOTFOUND, "material not found")
	}
	return material, err
}

// FindMaterials retrieves materials matching the filter, newest first.
func (s *MaterialService) FindMaterials(ctx context.Context, filter readtrack.MaterialFilter) ([]*readtrack.Material, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + materialColumns + " FROM materials WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*readtrack.Material
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}

	return materials, rows.Err()
}

// DeleteMaterial permanently removes a material. Chapters and quotes go
// with it through the foreign key cascade.
func (s *MaterialService) DeleteMaterial(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM materials WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result, readtrack.Errorf(readtrack.ENOTFOUND, "material not found"))
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row scanner) (*readtrack.Material, error) {
	var material readtrack.Material
	var kind, createdAt, updatedAt string

	if err := row.Scan(&material.ID, &material.Name, &kind, &material.SourceURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	material.Kind = readtrack.MaterialKind(kind)

	var err error
	if material.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if material.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &material, nil
}
