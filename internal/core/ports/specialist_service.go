package ports

import "context"

// CreateSpecialistInput carries all data needed to create a specialist.
type CreateSpecialistInput struct {
	LastName  string
	FirstName string
	Avatar    []byte
}

// UpdateSpecialistInput carries the full replacement state for a specialist.
// Updates overwrite every field; there is no partial patch.
type UpdateSpecialistInput struct {
	LastName  string
	FirstName string
	Avatar    []byte
}

// SpecialistResult is the public projection of a specialist record.
// AvatarBase64 is nil only in list results for records without an avatar;
// detail reads fail instead of projecting a nil avatar.
type SpecialistResult struct {
	ID           int64   `json:"id"`
	LastName     string  `json:"last_name"`
	FirstName    string  `json:"first_name"`
	AvatarBase64 *string `json:"avatar_base64"`
}

type SpecialistService interface {
	Create(ctx context.Context, in CreateSpecialistInput) (*SpecialistResult, error)
	Get(ctx context.Context, id int64) (*SpecialistResult, error)
	List(ctx context.Context) ([]*SpecialistResult, error)
	Update(ctx context.Context, id int64, in UpdateSpecialistInput) (*SpecialistResult, error)
	Delete(ctx context.Context, id int64) error
}
