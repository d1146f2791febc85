package ports

import "context"

// CreateServiceInput carries all data needed to create a catalog service.
type CreateServiceInput struct {
	Name          string
	Description   string
	Price         float64
	ExecutionTime string
	Image         []byte
}

// UpdateServiceInput carries the full replacement state for a catalog service.
type UpdateServiceInput struct {
	Name          string
	Description   string
	Price         float64
	ExecutionTime string
	Image         []byte
}

// ServiceResult is the public projection of a catalog service record.
type ServiceResult struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ExecutionTime string  `json:"execution_time"`
	ImageBase64   *string `json:"image_base64"`
}

type CatalogService interface {
	Create(ctx context.Context, in CreateServiceInput) (*ServiceResult, error)
	Get(ctx context.Context, id int64) (*ServiceResult, error)
	List(ctx context.Context) ([]*ServiceResult, error)
	Update(ctx context.Context, id int64, in UpdateServiceInput) (*ServiceResult, error)
	Delete(ctx context.Context, id int64) error
}
