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
	resourceSpecialists = "specialist"
	opGetSpecialist     = "get_specialist"
	opGetAllSpecialists = "get_all_specialists"
	defaultCacheTTL     = 5 * time.Minute
)

// SpecialistService implements specialist CRUD, composing the repository with
// the read-through cache on reads and coarse invalidation on writes.
type SpecialistService struct {
	repo   ports.SpecialistRepository
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSpecialistService(repo ports.SpecialistRepository, store cache.Store, ttl time.Duration, logger zerolog.Logger) *SpecialistService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SpecialistService{repo: repo, store: store, ttl: ttl, logger: logger}
}

// Create persists a new specialist. The cache is invalidated only after the
// insert committed; a failed insert leaves the cache untouched.
func (s *SpecialistService) Create(ctx context.Context, in ports.CreateSpecialistInput) (*ports.SpecialistResult, error) {
	created, err := s.repo.Create(ctx, &domain.Specialist{
		LastName:  in.LastName,
		FirstName: in.FirstName,
		Avatar:    in.Avatar,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create specialist")
		return nil, err
	}

	cache.Invalidate(ctx, s.store, s.logger, resourceSpecialists)
	metrics.ResourceWritesTotal.WithLabelValues(resourceSpecialists, "create").Inc()
	s.logger.Info().Int64("id", created.ID).Msg("specialist created")

	return specialistProjection(created), nil
}

// Get returns one specialist, read-through cached. A record without an avatar
// is treated as incomplete and reported as its own not-found variant.
func (s *SpecialistService) Get(ctx context.Context, id int64) (*ports.SpecialistResult, error) {
	key := cache.NewKey(resourceSpecialists, opGetSpecialist, id)
	return cache.GetOrFill(ctx, s.store, s.logger, key, s.ttl, func(ctx context.Context) (*ports.SpecialistResult, error) {
		sp, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(sp.Avatar) == 0 {
			return nil, domain.ErrAvatarNotFound
		}
		return specialistProjection(sp), nil
	})
}

// List returns all specialists, read-through cached. Records without an
// avatar are included with a null avatar projection.
func (s *SpecialistService) List(ctx context.Context) ([]*ports.SpecialistResult, error) {
	key := cache.NewKey(resourceSpecialists, opGetAllSpecialists)
	return cache.GetOrFill(ctx, s.store, s.logger, key, s.ttl, func(ctx context.Context) ([]*ports.SpecialistResult, error) {
		specialists, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*ports.SpecialistResult, 0, len(specialists))
		for _, sp := range specialists {
			out = append(out, specialistProjection(sp))
		}
		return out, nil
	})
}

// Update overwrites every field of an existing specialist. The record must
// exist and already carry an avatar, matching the detail-read contract.
func (s *SpecialistService) Update(ctx context.Context, id int64, in ports.UpdateSpecialistInput) (*ports.SpecialistResult, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(current.Avatar) == 0 {
		return nil, domain.ErrAvatarNotFound
	}

	updated, err := s.repo.Update(ctx, &domain.Specialist{
		ID:        id,
		LastName:  in.LastName,
		FirstName: in.FirstName,
		Avatar:    in.Avatar,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update specialist")
		return nil, err
	}

	cache.Invalidate(ctx, s.store, s.logger, resourceSpecialists)
	metrics.ResourceWritesTotal.WithLabelValues(resourceSpecialists, "update").Inc()
	s.logger.Info().Int64("id", id).Msg("specialist updated")

	return specialistProjection(updated), nil
}

// Delete removes a specialist by id.
func (s *SpecialistService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.Invalidate(ctx, s.store, s.logger, resourceSpecialists)
	metrics.ResourceWritesTotal.WithLabelValues(resourceSpecialists, "delete").Inc()
	s.logger.Info().Int64("id", id).Msg("specialist deleted")

	return nil
}

func specialistProjection(s *domain.Specialist) *ports.SpecialistResult {
	res := &ports.SpecialistResult{
		ID:        s.ID,
		LastName:  s.LastName,
		FirstName: s.FirstName,
	}
	if len(s.Avatar) > 0 {
		enc := base64.StdEncoding.EncodeToString(s.Avatar)
		res.AvatarBase64 = &enc
	}
	return res
}
