package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.MaterialService = (*MaterialService)(nil)

// MaterialService is a mock implementation of readtrack.MaterialService.
type MaterialService struct {
	CreateMaterialFn   func(ctx context.Context, material *readtrack.Material) error
	FindMaterialByIDFn func(ctx context.Context, id string) (*readtrack.Material, error)
	FindMaterialsFn    func(ctx context.Context, filter readtrack.MaterialFilter) ([]*readtrack.Material, error)
	DeleteMaterialFn   func(ctx context.Context, id string) error
}

func (s *MaterialService) CreateMaterial(ctx context.Context, material *readtrack.Material) error {
	return s.CreateMaterialFn(ctx, material)
}

func (s *MaterialService) FindMaterialByID(ctx context.Context, id string) (*readtrack.Material, error) {
	return s.FindMaterialByIDFn(ctx, id)
}

func (s *MaterialService) FindMaterials(ctx context.Context, filter readtrack.MaterialFilter) ([]*readtrack.Material, error) {
	return s.FindMaterialsFn(ctx, filter)
}

func (s *MaterialService) DeleteMaterial(ctx context.Context, id string) error {
	return s.DeleteMaterialFn(ctx, id)
}
