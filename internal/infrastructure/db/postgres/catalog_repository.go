package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/specialists-api/internal/core/domain"
)

// CatalogRepository persists catalog services in the services table.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) Create(ctx context.Context, s *domain.CatalogService) (*domain.CatalogService, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	created := *s
	err = tx.QueryRow(ctx,
		`INSERT INTO services (name, description, price, execution_time, image)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		s.Name, s.Description, s.Price, s.ExecutionTime, s.Image,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit service insert: %w", err)
	}
	return &created, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id int64) (*domain.CatalogService, error) {
	var s domain.CatalogService
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, price, execution_time, image FROM services WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.ExecutionTime, &s.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepository) FindAll(ctx context.Context) ([]*domain.CatalogService, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, price, execution_time, image FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []*domain.CatalogService
	for rows.Next() {
		var s domain.CatalogService
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.ExecutionTime, &s.Image); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) Update(ctx context.Context, s *domain.CatalogService) (*domain.CatalogService, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE services SET name = $2, description = $3, price = $4, execution_time = $5, image = $6
		 WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Price, s.ExecutionTime, s.Image,
	)
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrServiceNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit service update: %w", err)
	}
	updated := *s
	return &updated, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit service delete: %w", err)
	}
	return nil
}
