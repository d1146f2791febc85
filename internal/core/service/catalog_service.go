package service

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/specialists-api/internal/api/metrics"
	"github.com/clinicdesk/specialists-api/internal/core/cache"
	"github.com/clinicdesk/specialists-api/internal/core/domain"
	"github.com/clinicdesk/specialists-api/internal/core/ports"
)

const (
	resourceServices = "service"
	opGetService     = "get_service"
	opGetAllServices = "get_all_services"
)

// CatalogService implements CRUD for the service catalog with the same
// cache composition as SpecialistService.
type CatalogService struct {
	repo   ports.CatalogRepository
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, store cache.Store, ttl time.Duration, logger zerolog.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CatalogService{repo: repo, store: store, ttl: ttl, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, in ports.CreateServiceInput) (*ports.ServiceResult, error) {
	created, err := s.repo.Create(ctx, &domain.CatalogService{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		ExecutionTime: in.ExecutionTime,
		Image:         in.Image,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create service")
		return nil, err
	}

	cache.Invalidate(ctx, s.store, s.logger, resourceServices)
	metrics.ResourceWritesTotal.WithLabelValues(resourceServices, "create").Inc()
	s.logger.Info().Int64("id", created.ID).Str("name", created.Name).Msg("service created")

	return serviceProjection(created), nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*ports.ServiceResult, error) {
	key := cache.NewKey(resourceServices, opGetService, id)
	return cache.GetOrFill(ctx, s.store, s.logger, key, s.ttl, func(ctx context.Context) (*ports.ServiceResult, error) {
		svc, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(svc.Image) == 0 {
			return nil, domain.ErrServiceImageNotFound
		}
		return serviceProjection(svc), nil
	})
}

func (s *CatalogService) List(ctx context.Context) ([]*ports.ServiceResult, error) {
	key := cache.NewKey(resourceServices, opGetAllServices)
	return cache.GetOrFill(ctx, s.store, s.logger, key, s.ttl, func(ctx context.Context) ([]*ports.ServiceResult, error) {
		services, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*ports.ServiceResult, 0, len(services))
		for _, svc := range services {
			out = append(out, serviceProjection(svc))
		}
		return out, nil
	})
}

func (s *CatalogService) Update(ctx context.Context, id int64, in ports.UpdateServiceInput) (*ports.ServiceResult, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(current.Image) == 0 {
		return nil, domain.ErrServiceImageNotFound
	}

	updated, err := s.repo.Update(ctx, &domain.CatalogService{
		ID:            id,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		ExecutionTime: in.ExecutionTime,
		Image:         in.Image,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update service")
		return nil, err
	}

	cache.Invalidate(ctx, s.store, s.logger, resourceServices)
	metrics.ResourceWritesTotal.WithLabelValues(resourceServices, "update").Inc()
	s.logger.Info().Int64("id", id).Msg("service updated")

	return serviceProjection(updated), nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.Invalidate(ctx, s.store, s.logger, resourceServices)
	metrics.ResourceWritesTotal.WithLabelValues(resourceServices, "delete").Inc()
	s.logger.Info().Int64("id", id).Msg("service deleted")

	return nil
}

func serviceProjection(s *domain.CatalogService) *ports.ServiceResult {
	res := &ports.ServiceResult{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		ExecutionTime: s.ExecutionTime,
	}
	if len(s.Image) > 0 {
		enc := base64.StdEncoding.EncodeToString(s.Image)
		res.ImageBase64 = &enc
	}
	return res
}
