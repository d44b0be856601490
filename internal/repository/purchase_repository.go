package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careops/hospitalops/internal/domain"
)

// PurchaseFilter narrows purchase listings within a unit.
type PurchaseFilter struct {
	UnitID        string
	EquipmentID   *string
	PaymentStatus *domain.PaymentStatus
	Limit         int
	Offset        int
}

// PurchaseRepository encapsulates purchase persistence.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
	GetByBillNumber(ctx context.Context, unitID, billNumber string) ([]domain.Purchase, error)
	List(ctx context.Context, filter PurchaseFilter) ([]domain.Purchase, error)
}

type purchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository instantiates repository.
func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{pool: pool}
}

const purchaseColumns = `id, unit_id, equipment_id, equipment_name, quantity, unit_price,
       total_amount, purchase_date, vendor_name, vendor_contact, bill_number,
       payment_method, payment_status, notes, created_at, updated_at`

func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        INSERT INTO purchases (unit_id, equipment_id, equipment_name, quantity, unit_price,
            total_amount, purchase_date, vendor_name, vendor_contact, bill_number,
            payment_method, payment_status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		purchase.UnitID,
		purchase.EquipmentID,
		purchase.EquipmentName,
		purchase.Quantity,
		purchase.UnitPrice,
		purchase.TotalAmount,
		purchase.PurchaseDate,
		purchase.VendorName,
		purchase.VendorContact,
		purchase.BillNumber,
		purchase.PaymentMethod,
		purchase.PaymentStatus,
		purchase.Notes,
	).Scan(&purchase.ID, &purchase.CreatedAt, &purchase.UpdatedAt)
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE id=$1`, purchaseColumns)
	var purchase domain.Purchase
	if err := r.pool.QueryRow(ctx, query, id).Scan(purchaseFields(&purchase)...); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) GetByBillNumber(ctx context.Context, unitID, billNumber string) ([]domain.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE unit_id=$1 AND bill_number=$2 ORDER BY created_at ASC`, purchaseColumns)
	rows, err := r.pool.Query(ctx, query, unitID, billNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func (r *purchaseRepository) List(ctx context.Context, filter PurchaseFilter) ([]domain.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE unit_id=$1`, purchaseColumns)
	args := []any{filter.UnitID}

	if filter.EquipmentID != nil {
		args = append(args, *filter.EquipmentID)
		query += fmt.Sprintf(" AND equipment_id=$%d", len(args))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status=$%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY purchase_date DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func purchaseFields(purchase *domain.Purchase) []any {
	return []any{
		&purchase.ID,
		&purchase.UnitID,
		&purchase.EquipmentID,
		&purchase.EquipmentName,
		&purchase.Quantity,
		&purchase.UnitPrice,
		&purchase.TotalAmount,
		&purchase.PurchaseDate,
		&purchase.VendorName,
		&purchase.VendorContact,
		&purchase.BillNumber,
		&purchase.PaymentMethod,
		&purchase.PaymentStatus,
		&purchase.Notes,
		&purchase.CreatedAt,
		&purchase.UpdatedAt,
	}
}

func scanPurchases(rows pgx.Rows) ([]domain.Purchase, error) {
	var result []domain.Purchase
	for rows.Next() {
		var purchase domain.Purchase
		if err := rows.Scan(purchaseFields(&purchase)...); err != nil {
			return nil, err
		}
		result = append(result, purchase)
	}
	return result, rows.Err()
}
