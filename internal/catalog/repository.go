package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbill-erp/gstbill/internal/shared"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Get(ctx context.Context, id int64) (*Product, error)
	GetByBarcode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	ListLowStock(ctx context.Context, threshold float64) ([]Product, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

var _ Repository = (*PGRepository)(nil)

const productColumns = `id, name, hsn_code, barcode, price, discount_price,
	gst_percent, discount_percent, stock_quantity, unit, is_active, created_at, updated_at`

// Get fetches a product by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns), id)
	return scanProduct(row)
}

// GetByBarcode resolves a scanned code to one product record.
func (r *PGRepository) GetByBarcode(ctx context.Context, code string) (*Product, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM products WHERE barcode = $1", productColumns), code)
	return scanProduct(row)
}

// List returns products matching the filters plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	conditions := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions += fmt.Sprintf(" AND (name ILIKE $%d OR hsn_code ILIKE $%d OR barcode = $%d)", argPos, argPos, argPos+1)
		args = append(args, "%"+filters.Search+"%", filters.Search)
		argPos += 2
	}
	if filters.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filters.IsActive)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products "+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := 0
	if filters.Page > 1 {
		offset = (filters.Page - 1) * limit
	}

	query := fmt.Sprintf("SELECT %s FROM products %s ORDER BY name, id LIMIT $%d OFFSET $%d",
		productColumns, conditions, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

// ListLowStock returns active products at or below the threshold.
func (r *PGRepository) ListLowStock(ctx context.Context, threshold float64) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE is_active AND stock_quantity <= $1 ORDER BY stock_quantity, name", productColumns)
	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var barcode pgtype.Text
	var discountPrice pgtype.Float8

	err := row.Scan(
		&p.ID, &p.Name, &p.HSNCode, &barcode, &p.Price, &discountPrice,
		&p.GSTPercent, &p.DiscountPercent, &p.StockQuantity, &p.Unit,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if barcode.Valid {
		p.Barcode = barcode.String
	}
	if discountPrice.Valid {
		p.DiscountPrice = &discountPrice.Float64
	}
	return &p, nil
}
