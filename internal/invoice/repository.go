package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbill-erp/gstbill/internal/billing"
	"github.com/gstbill-erp/gstbill/internal/platform/db"
	"github.com/gstbill-erp/gstbill/internal/shared"
)

// Repository defines persistence operations for submitted documents.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, inv Invoice) (int64, error)
	InsertLine(ctx context.Context, invoiceID int64, lineNo int, line billing.LineItem) error
	DecrementStock(ctx context.Context, productID int64, quantity float64) error
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	GenerateNumber(ctx context.Context, kind DocumentKind, date time.Time) (string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Create(ctx context.Context, inv Invoice) (int64, error) {
	customer, err := json.Marshal(inv.Customer)
	if err != nil {
		return 0, err
	}
	summary, err := json.Marshal(inv.SummaryData)
	if err != nil {
		return 0, err
	}
	var eway []byte
	if inv.EwayData != nil {
		if eway, err = json.Marshal(inv.EwayData); err != nil {
			return 0, err
		}
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO invoices (doc_number, kind, customer, summary, eway, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, inv.DocNumber, inv.Kind, customer, summary, eway, inv.CreatedBy, inv.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertLine(ctx context.Context, invoiceID int64, lineNo int, line billing.LineItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO invoice_lines (
			invoice_id, line_no, line_id, product_id, name, hsn_code,
			quantity, unit, rate, gst_percent, discount_percent,
			amount, price_including_gst, stock_quantity
		) VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, invoiceID, lineNo, line.LineID, line.ProductID, line.Name, line.HSNCode,
		line.Quantity, line.Unit, line.Rate, line.GSTPercent, line.DiscountPercent,
		line.Amount, line.PriceIncludingGST, line.StockQuantity)
	return err
}

// DecrementStock reduces a product's stock by the invoiced quantity. Stock
// may go negative; quantities are advisory, never enforced.
func (r *repository) DecrementStock(ctx context.Context, productID int64, quantity float64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1
	`, productID, quantity)
	return err
}

func (r *repository) Get(ctx context.Context, id int64) (*Invoice, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, doc_number, kind, customer, summary, eway, created_by, created_at
		FROM invoices WHERE id = $1
	`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT line_id, COALESCE(product_id, 0), name, hsn_code, quantity, unit,
		       rate, gst_percent, discount_percent, amount, price_including_gst, stock_quantity
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_no
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var li billing.LineItem
		if err := rows.Scan(
			&li.LineID, &li.ProductID, &li.Name, &li.HSNCode, &li.Quantity, &li.Unit,
			&li.Rate, &li.GSTPercent, &li.DiscountPercent, &li.Amount, &li.PriceIncludingGST, &li.StockQuantity,
		); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	conditions := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if req.Kind != nil {
		conditions += fmt.Sprintf(" AND kind = $%d", argPos)
		args = append(args, *req.Kind)
		argPos++
	}
	if req.DateFrom != nil {
		conditions += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions += fmt.Sprintf(" AND created_at <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM invoices "+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT id, doc_number, kind, customer, summary, eway, created_by, created_at
		FROM invoices %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d
	`, conditions, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, total, rows.Err()
}

// GenerateNumber allocates the next document number for the month, e.g.
// INV-202506-0007.
func (r *repository) GenerateNumber(ctx context.Context, kind DocumentKind, date time.Time) (string, error) {
	prefix := "INV"
	if kind == KindBill {
		prefix = "BILL"
	}
	month := date.Format("200601")

	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM invoices WHERE kind = $1 AND doc_number LIKE $2
	`, kind, fmt.Sprintf("%s-%s-%%", prefix, month)).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, month, count+1), nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var customer, summary []byte
	var eway []byte

	err := row.Scan(&inv.ID, &inv.DocNumber, &inv.Kind, &customer, &summary, &eway, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(customer, &inv.Customer); err != nil {
		return nil, fmt.Errorf("invoice: decode customer: %w", err)
	}
	if err := json.Unmarshal(summary, &inv.SummaryData); err != nil {
		return nil, fmt.Errorf("invoice: decode summary: %w", err)
	}
	if len(eway) > 0 {
		inv.EwayData = &billing.EwayBill{}
		if err := json.Unmarshal(eway, inv.EwayData); err != nil {
			return nil, fmt.Errorf("invoice: decode eway: %w", err)
		}
	}
	return &inv, nil
}
