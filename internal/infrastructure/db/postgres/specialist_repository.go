package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/specialists-api/internal/core/domain"
)

// SpecialistRepository persists specialists in the specialists table.
// Mutations run inside an explicit transaction so the commit completes
// before the service layer invalidates any cache entries.
type SpecialistRepository struct {
	pool *pgxpool.Pool
}

func NewSpecialistRepository(pool *pgxpool.Pool) *SpecialistRepository {
	return &SpecialistRepository{pool: pool}
}

// Create inserts a new specialist row and returns it with the assigned id.
func (r *SpecialistRepository) Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	created := *s
	err = tx.QueryRow(ctx,
		`INSERT INTO specialists (last_name, first_name, avatar)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.LastName, s.FirstName, s.Avatar,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert specialist: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit specialist insert: %w", err)
	}
	return &created, nil
}

// FindByID retrieves a single specialist by id.
func (r *SpecialistRepository) FindByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	var s domain.Specialist
	err := r.pool.QueryRow(ctx,
		`SELECT id, last_name, first_name, avatar FROM specialists WHERE id = $1`, id,
	).Scan(&s.ID, &s.LastName, &s.FirstName, &s.Avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpecialistNotFound
		}
		return nil, fmt.Errorf("find specialist: %w", err)
	}
	return &s, nil
}

// FindAll retrieves every specialist ordered by id.
func (r *SpecialistRepository) FindAll(ctx context.Context) ([]*domain.Specialist, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, last_name, first_name, avatar FROM specialists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list specialists: %w", err)
	}
	defer rows.Close()

	var out []*domain.Specialist
	for rows.Next() {
		var s domain.Specialist
		if err := rows.Scan(&s.ID, &s.LastName, &s.FirstName, &s.Avatar); err != nil {
			return nil, fmt.Errorf("scan specialist: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list specialists: %w", err)
	}
	return out, nil
}

// Update overwrites every mutable field of the row. Concurrent writers are
// last-writer-wins; there is no version check.
func (r *SpecialistRepository) Update(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE specialists SET last_name = $2, first_name = $3, avatar = $4 WHERE id = $1`,
		s.ID, s.LastName, s.FirstName, s.Avatar,
	)
	if err != nil {
		return nil, fmt.Errorf("update specialist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrSpecialistNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit specialist update: %w", err)
	}
	updated := *s
	return &updated, nil
}

// Delete removes the row with the given id.
func (r *SpecialistRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM specialists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete specialist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpecialistNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit specialist delete: %w", err)
	}
	return nil
}
