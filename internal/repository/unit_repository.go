package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careops/hospitalops/internal/domain"
)

// UnitRepository encapsulates hospital unit persistence.
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	List(ctx context.Context) ([]domain.Unit, error)
}

type unitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository instantiates repository.
func NewUnitRepository(pool *pgxpool.Pool) UnitRepository {
	return &unitRepository{pool: pool}
}

func (r *unitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	const query = `
        INSERT INTO units (name, address, phone, email, departments)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		unit.Name,
		unit.Address,
		unit.Phone,
		unit.Email,
		unit.Departments,
	).Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
}

func (r *unitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	const query = `
        SELECT id, name, address, phone, email, departments, created_at, updated_at
        FROM units WHERE id=$1`
	var unit domain.Unit
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.Name,
		&unit.Address,
		&unit.Phone,
		&unit.Email,
		&unit.Departments,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) List(ctx context.Context) ([]domain.Unit, error) {
	const query = `
        SELECT id, name, address, phone, email, departments, created_at, updated_at
        FROM units ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		var unit domain.Unit
		if err := rows.Scan(
			&unit.ID,
			&unit.Name,
			&unit.Address,
			&unit.Phone,
			&unit.Email,
			&unit.Departments,
			&unit.CreatedAt,
			&unit.UpdatedAt,
		); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}
