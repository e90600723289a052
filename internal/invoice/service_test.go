package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gstbill-erp/gstbill/internal/billing"
	"github.com/gstbill-erp/gstbill/internal/shared"
)

type memoryRepo struct {
	invoices map[int64]Invoice
	stock    map[int64]float64
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{invoices: make(map[int64]Invoice), stock: make(map[int64]float64)}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) Create(ctx context.Context, inv Invoice) (int64, error) {
	r.nextID++
	inv.ID = r.nextID
	inv.Lines = nil
	r.invoices[inv.ID] = inv
	return inv.ID, nil
}

func (r *memoryRepo) InsertLine(ctx context.Context, invoiceID int64, lineNo int, line billing.LineItem) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return shared.ErrNotFound
	}
	inv.Lines = append(inv.Lines, line)
	r.invoices[invoiceID] = inv
	return nil
}

func (r *memoryRepo) DecrementStock(ctx context.Context, productID int64, quantity float64) error {
	r.stock[productID] -= quantity
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &inv, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var out []Invoice
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (r *memoryRepo) GenerateNumber(ctx context.Context, kind DocumentKind, date time.Time) (string, error) {
	prefix := "INV"
	if kind == KindBill {
		prefix = "BILL"
	}
	count := 0
	for _, inv := range r.invoices {
		if inv.Kind == kind {
			count++
		}
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("200601"), count+1), nil
}

func validInvoiceRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		Customer: billing.Customer{
			Name:          "Asha Traders",
			Mobile:        "9876543210",
			Date:          "2025-06-01",
			InvoiceNumber: "INV-001",
		},
		Lines: []LineInput{
			{ProductID: 1, Name: "Soap", HSNCode: "3401", Quantity: 3, Unit: "pcs", Rate: 100, GSTPercent: 18, DiscountPercent: 10, StockQuantity: 12},
		},
		Modifiers: billing.Modifiers{
			DiscountType:      billing.DiscountPercent,
			DiscountPercent:   10,
			OverallGSTPercent: 18,
			PaymentType:       "cash",
			PaymentStatus:     billing.PaymentFull,
		},
	}
}

func TestSubmitInvoiceRecomputesServerSide(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	req := validInvoiceRequest()
	inv, warnings, err := svc.SubmitInvoice(context.Background(), req, 42)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, int64(42), inv.CreatedBy)
	require.Equal(t, KindInvoice, inv.Kind)

	require.Len(t, inv.Lines, 1)
	require.Equal(t, 270.00, inv.Lines[0].Amount)
	require.Equal(t, 318.60, inv.Lines[0].PriceIncludingGST)

	require.Equal(t, 318.60, inv.SummaryData.Subtotal)
	require.Equal(t, 31.86, inv.SummaryData.DiscountValue)
}

func TestSubmitInvoiceNumbering(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	inv, _, err := svc.SubmitInvoice(ctx, validInvoiceRequest(), 42)
	require.NoError(t, err)
	require.Contains(t, inv.DocNumber, "INV-")
	require.Contains(t, inv.DocNumber, "-0001")

	inv, _, err = svc.SubmitInvoice(ctx, validInvoiceRequest(), 42)
	require.NoError(t, err)
	require.Contains(t, inv.DocNumber, "-0002")
}

func TestSubmitInvoiceMissingCustomerFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	req := validInvoiceRequest()
	req.Customer.InvoiceNumber = ""
	_, _, err := svc.SubmitInvoice(ctx, req, 42)
	require.ErrorIs(t, err, ErrMissingCustomer)

	req = validInvoiceRequest()
	req.Customer.Date = ""
	_, _, err = svc.SubmitInvoice(ctx, req, 42)
	require.ErrorIs(t, err, ErrMissingCustomer)

	// Nothing persisted on validation failure.
	require.Empty(t, repo.invoices)
}

func TestSubmitBillRequiresOnlyNameAndMobile(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	inv, _, err := svc.SubmitBill(context.Background(), CreateBillRequest{
		Customer: billing.Customer{Name: "Walk-in", Mobile: "9876543210"},
	}, 7)
	require.NoError(t, err)
	require.Equal(t, KindBill, inv.Kind)
	require.Contains(t, inv.DocNumber, "BILL-")
}

func TestSubmitAdvancePaymentRequiresAmountAndDueDate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	req := validInvoiceRequest()
	req.Modifiers.PaymentStatus = billing.PaymentAdvance
	_, _, err := svc.SubmitInvoice(ctx, req, 42)
	require.ErrorIs(t, err, ErrAdvanceIncomplete)

	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	req.Modifiers.AdvanceAmount = 100
	req.Modifiers.DueDate = &due
	_, _, err = svc.SubmitInvoice(ctx, req, 42)
	require.NoError(t, err)
}

func TestSubmitStockAdvisoriesDoNotBlock(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	req := validInvoiceRequest()
	req.Lines = append(req.Lines,
		LineInput{ProductID: 2, Name: "Oil", Quantity: 5, Rate: 200, StockQuantity: 0},
		LineInput{ProductID: 3, Name: "Rice", Quantity: 50, Rate: 60, StockQuantity: 10},
	)

	inv, warnings, err := svc.SubmitInvoice(context.Background(), req, 42)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	require.Contains(t, warnings[0], "out of stock")
	require.Contains(t, warnings[1], "exceeds available stock")

	// All three rows persisted and priced despite the advisories.
	require.Len(t, inv.Lines, 3)
	require.Equal(t, 1000.00, inv.Lines[1].Amount)
	require.Equal(t, 3000.00, inv.Lines[2].Amount)
}

func TestSubmitDecrementsStock(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, _, err := svc.SubmitInvoice(context.Background(), validInvoiceRequest(), 42)
	require.NoError(t, err)
	require.Equal(t, -3.0, repo.stock[1])
}

func TestSubmitDropsBlankScratchRows(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	req := validInvoiceRequest()
	req.Lines = append(req.Lines, LineInput{Name: "  "})

	inv, _, err := svc.SubmitInvoice(context.Background(), req, 42)
	require.NoError(t, err)
	require.Len(t, inv.Lines, 1)
}

func TestPreviewComputesSummaryWithoutPersisting(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	resp := svc.Preview(PreviewRequest{
		Lines: []LineInput{
			{ProductID: 1, Name: "A", Quantity: 3, Rate: 100, GSTPercent: 18, DiscountPercent: 10, StockQuantity: 5},
			{ProductID: 2, Name: "B", Quantity: 1, Rate: 100, StockQuantity: 5},
			{ProductID: 3, Name: "C", Quantity: 1, Rate: 50, StockQuantity: 5},
		},
		Modifiers: billing.Modifiers{
			DiscountType:      billing.DiscountPercent,
			DiscountPercent:   10,
			OverallGSTPercent: 18,
		},
	})

	require.Equal(t, 468.60, resp.SummaryData.Subtotal)
	require.Equal(t, 46.86, resp.SummaryData.DiscountValue)
	require.Equal(t, 75.91, resp.SummaryData.GSTCost)
	require.Equal(t, 37.96, resp.SummaryData.CGSTCost)
	require.Equal(t, 497.65, resp.SummaryData.Total)
	require.Empty(t, resp.Warnings)
	require.Empty(t, repo.invoices)
}

func TestSubmitBlankRowWithoutNameFailsValidation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	req := validInvoiceRequest()
	req.Lines = nil
	_, _, err := svc.SubmitInvoice(context.Background(), req, 42)
	require.Error(t, err)
	require.Empty(t, repo.invoices)
}
