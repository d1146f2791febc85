package ports

import (
	"context"

	"github.com/clinicdesk/specialists-api/internal/core/domain"
)

// SpecialistRepository defines the interface for specialist persistence.
// Every mutating method runs inside its own transaction and returns only
// after the transaction committed.
type SpecialistRepository interface {
	Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	FindByID(ctx context.Context, id int64) (*domain.Specialist, error)
	FindAll(ctx context.Context) ([]*domain.Specialist, error)
	Update(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	Delete(ctx context.Context, id int64) error
}
