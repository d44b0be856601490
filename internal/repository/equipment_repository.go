package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careops/hospitalops/internal/domain"
)

// EquipmentFilter narrows equipment listings within a unit.
type EquipmentFilter struct {
	UnitID     string
	Status     *domain.EquipmentStatus
	Category   *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// EquipmentRepository encapsulates equipment persistence.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) error
	Update(ctx context.Context, equipment *domain.Equipment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, error)
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository instantiates repository.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

const equipmentColumns = `id, unit_id, name, category, serial_number, manufacturer, model,
       purchase_date, warranty_expiry, location, status, last_maintenance, next_maintenance,
       cost, created_at, updated_at`

func (r *equipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) error {
	const query = `
        INSERT INTO equipment (unit_id, name, category, serial_number, manufacturer, model,
            purchase_date, warranty_expiry, location, status, last_maintenance, next_maintenance, cost)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		equipment.UnitID,
		equipment.Name,
		equipment.Category,
		equipment.SerialNumber,
		equipment.Manufacturer,
		equipment.Model,
		equipment.PurchaseDate,
		equipment.WarrantyExpiry,
		equipment.Location,
		equipment.Status,
		equipment.LastMaintenance,
		equipment.NextMaintenance,
		equipment.Cost,
	).Scan(&equipment.ID, &equipment.CreatedAt, &equipment.UpdatedAt)
}

func (r *equipmentRepository) Update(ctx context.Context, equipment *domain.Equipment) error {
	const query = `
        UPDATE equipment SET name=$1, category=$2, serial_number=$3, manufacturer=$4, model=$5,
            purchase_date=$6, warranty_expiry=$7, location=$8, status=$9,
            last_maintenance=$10, next_maintenance=$11, cost=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		equipment.Name,
		equipment.Category,
		equipment.SerialNumber,
		equipment.Manufacturer,
		equipment.Model,
		equipment.PurchaseDate,
		equipment.WarrantyExpiry,
		equipment.Location,
		equipment.Status,
		equipment.LastMaintenance,
		equipment.NextMaintenance,
		equipment.Cost,
		equipment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM equipment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment WHERE id=$1`, equipmentColumns)
	var equipment domain.Equipment
	if err := r.pool.QueryRow(ctx, query, id).Scan(equipmentFields(&equipment)...); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) List(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment WHERE unit_id=$1`, equipmentColumns)
	args := []any{filter.UnitID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category=$%d", len(args))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		query += fmt.Sprintf(" AND (LOWER(name) LIKE %s OR LOWER(serial_number) LIKE %s)", placeholder, placeholder)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Equipment
	for rows.Next() {
		var equipment domain.Equipment
		if err := rows.Scan(equipmentFields(&equipment)...); err != nil {
			return nil, err
		}
		result = append(result, equipment)
	}
	return result, rows.Err()
}

func equipmentFields(equipment *domain.Equipment) []any {
	return []any{
		&equipment.ID,
		&equipment.UnitID,
		&equipment.Name,
		&equipment.Category,
		&equipment.SerialNumber,
		&equipment.Manufacturer,
		&equipment.Model,
		&equipment.PurchaseDate,
		&equipment.WarrantyExpiry,
		&equipment.Location,
		&equipment.Status,
		&equipment.LastMaintenance,
		&equipment.NextMaintenance,
		&equipment.Cost,
		&equipment.CreatedAt,
		&equipment.UpdatedAt,
	}
}
