package ports

import (
	"context"

	"github.com/clinicdesk/specialists-api/internal/core/domain"
)

// CatalogRepository defines the interface for catalog service persistence.
// Mutating methods commit before returning, mirroring SpecialistRepository.
type CatalogRepository interface {
	Create(ctx context.Context, s *domain.CatalogService) (*domain.CatalogService, error)
	FindByID(ctx context.Context, id int64) (*domain.CatalogService, error)
	FindAll(ctx context.Context) ([]*domain.CatalogService, error)
	Update(ctx context.Context, s *domain.CatalogService) (*domain.CatalogService, error)
	Delete(ctx context.Context, id int64) error
}
