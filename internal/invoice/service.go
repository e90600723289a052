package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gstbill-erp/gstbill/internal/billing"
)

var (
	// ErrMissingCustomer covers incomplete required customer fields for the
	// requested document mode.
	ErrMissingCustomer = errors.New("invoice: required customer fields missing")
	// ErrAdvanceIncomplete covers advance payments without amount or due date.
	ErrAdvanceIncomplete = errors.New("invoice: advance payment requires amount and due date")
)

// Service coordinates invoice and bill submission. All monetary fields are
// recomputed server-side through the billing engine; client-derived values
// are never trusted.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Preview recomputes the rows and summary for a working invoice. Nothing is
// persisted; stock advisories are reported but never block.
func (s *Service) Preview(req PreviewRequest) PreviewResponse {
	lines, warnings := s.recompute(req.Lines)
	return PreviewResponse{
		Lines:       lines,
		SummaryData: billing.Aggregate(lines, req.Modifiers),
		Warnings:    warnings,
	}
}

// SubmitInvoice validates and persists a full GST invoice. Validation
// failures abort before anything is written.
func (s *Service) SubmitInvoice(ctx context.Context, req CreateInvoiceRequest, createdBy int64) (*Invoice, []string, error) {
	if err := requireCustomerFields(req.Customer, KindInvoice); err != nil {
		return nil, nil, err
	}
	if err := requireAdvanceFields(req.Modifiers); err != nil {
		return nil, nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, nil, err
	}

	lines, warnings := s.recompute(req.Lines)
	summary := billing.Aggregate(lines, req.Modifiers)

	inv, err := s.persist(ctx, Invoice{
		Kind:        KindInvoice,
		Customer:    req.Customer,
		Lines:       lines,
		SummaryData: summary,
		EwayData:    req.EwayData,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, warnings, nil
}

// SubmitBill validates and persists a simple bill. Only customer name and
// mobile are required.
func (s *Service) SubmitBill(ctx context.Context, req CreateBillRequest, createdBy int64) (*Invoice, []string, error) {
	if err := requireCustomerFields(req.Customer, KindBill); err != nil {
		return nil, nil, err
	}
	if err := requireAdvanceFields(req.Modifiers); err != nil {
		return nil, nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, nil, err
	}

	lines, warnings := s.recompute(req.Lines)
	summary := billing.Aggregate(lines, req.Modifiers)

	inv, err := s.persist(ctx, Invoice{
		Kind:        KindBill,
		Customer:    req.Customer,
		Lines:       lines,
		SummaryData: summary,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, warnings, nil
}

// Get fetches one submitted document with its lines.
func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

// List returns submitted documents matching the filters.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) persist(ctx context.Context, inv Invoice) (*Invoice, error) {
	now := time.Now().UTC()
	docNumber, err := s.repo.GenerateNumber(ctx, inv.Kind, now)
	if err != nil {
		return nil, fmt.Errorf("generate doc number: %w", err)
	}
	inv.DocNumber = docNumber
	inv.CreatedAt = now

	var invoiceID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, inv)
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		invoiceID = id

		for i, line := range inv.Lines {
			if err := repo.InsertLine(ctx, id, i+1, line); err != nil {
				return fmt.Errorf("insert line: %w", err)
			}
			if line.ProductID != 0 && line.Quantity > 0 {
				if err := repo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
					return fmt.Errorf("decrement stock: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, invoiceID)
}

// recompute rebuilds every posted row through the billing engine and
// collects stock advisories. Blank rows with no name and no product are
// dropped; everything else is kept, warnings or not.
func (s *Service) recompute(inputs []LineInput) ([]billing.LineItem, []string) {
	lines := make([]billing.LineItem, 0, len(inputs))
	var warnings []string

	for _, in := range inputs {
		if in.ProductID == 0 && strings.TrimSpace(in.Name) == "" {
			continue
		}
		li := billing.LineItem{
			LineID:          uuid.NewString(),
			ProductID:       in.ProductID,
			Name:            in.Name,
			HSNCode:         in.HSNCode,
			Quantity:        in.Quantity,
			Unit:            in.Unit,
			Rate:            in.Rate,
			GSTPercent:      in.GSTPercent,
			DiscountPercent: in.DiscountPercent,
			StockQuantity:   in.StockQuantity,
		}
		li.Amount, li.PriceIncludingGST = billing.ComputeLine(li.Quantity, li.Rate, li.GSTPercent, li.DiscountPercent)
		lines = append(lines, li)

		if li.ProductID != 0 {
			if status := billing.CheckStock(li.Quantity, li.StockQuantity); status != billing.StockOK {
				warnings = append(warnings, status.Advisory(li.Name))
			}
		}
	}
	return lines, warnings
}

func requireCustomerFields(c billing.Customer, kind DocumentKind) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s", ErrMissingCustomer, field)
	}
	if strings.TrimSpace(c.Name) == "" {
		return missing("name")
	}
	if strings.TrimSpace(c.Mobile) == "" {
		return missing("mobile")
	}
	if kind == KindInvoice {
		if strings.TrimSpace(c.Date) == "" {
			return missing("date")
		}
		if strings.TrimSpace(c.InvoiceNumber) == "" {
			return missing("invoiceNumber")
		}
	}
	return nil
}

func requireAdvanceFields(m billing.Modifiers) error {
	if m.PaymentStatus != billing.PaymentAdvance {
		return nil
	}
	if m.AdvanceAmount <= 0 || m.DueDate == nil {
		return ErrAdvanceIncomplete
	}
	return nil
}
