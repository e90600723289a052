package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbill-erp/gstbill/internal/shared"
)

// Repository defines persistence operations for customers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Create(ctx context.Context, c Customer) (int64, error)
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

const customerColumns = "id, name, mobile, email, address, gstin, created_at, updated_at"

// Get fetches a customer by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Customer, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns), id)
	return scanCustomer(row)
}

// List returns customers matching the filters plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	conditions := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if req.Search != "" {
		conditions += fmt.Sprintf(" AND (name ILIKE $%d OR mobile LIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers "+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf("SELECT %s FROM customers %s ORDER BY name, id LIMIT $%d OFFSET $%d",
		customerColumns, conditions, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, total, rows.Err()
}

// Create inserts a customer and returns the new id.
func (r *PGRepository) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, mobile, email, address, gstin, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), now(), now())
		RETURNING id
	`, c.Name, c.Mobile, c.Email, c.Address, c.GSTIN).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	var email, address, gstin pgtype.Text

	err := row.Scan(&c.ID, &c.Name, &c.Mobile, &email, &address, &gstin, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if email.Valid {
		c.Email = email.String
	}
	if address.Valid {
		c.Address = address.String
	}
	if gstin.Valid {
		c.GSTIN = gstin.String
	}
	return &c, nil
}
