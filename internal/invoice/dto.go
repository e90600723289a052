package invoice

import (
	"github.com/gstbill-erp/gstbill/internal/billing"
)

// LineInput is one posted invoice row. Derived fields from the client are
// ignored; the service recomputes them. Quantity is deliberately not
// range-checked here: out-of-stock and invalid quantities are advisory, the
// row is accepted and priced either way.
type LineInput struct {
	ProductID       int64   `json:"product_id"`
	Name            string  `json:"name" validate:"required,max=200"`
	HSNCode         string  `json:"hsn_code" validate:"max=20"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit" validate:"max=20"`
	Rate            float64 `json:"rate" validate:"gte=0"`
	GSTPercent      float64 `json:"gst_percent" validate:"gte=0,lte=100"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	StockQuantity   float64 `json:"stock_quantity"`
}

// CreateInvoiceRequest is the full GST invoice submission payload.
type CreateInvoiceRequest struct {
	Customer  billing.Customer  `json:"customer"`
	Lines     []LineInput       `json:"lines" validate:"required,min=1,dive"`
	Modifiers billing.Modifiers `json:"modifiers"`
	EwayData  *billing.EwayBill `json:"eway_data,omitempty"`
}

// CreateBillRequest is the reduced simple-bill payload: customer name and
// mobile only, lines and modifiers optional.
type CreateBillRequest struct {
	Customer  billing.Customer  `json:"customer"`
	Lines     []LineInput       `json:"lines,omitempty" validate:"omitempty,dive"`
	Modifiers billing.Modifiers `json:"modifiers"`
}

// PreviewRequest recomputes a working invoice without persisting anything.
type PreviewRequest struct {
	Lines     []LineInput       `json:"lines"`
	Modifiers billing.Modifiers `json:"modifiers"`
}

// PreviewResponse carries the recomputed rows, the refreshed summary and
// any stock advisories.
type PreviewResponse struct {
	Lines       []billing.LineItem  `json:"lines"`
	SummaryData billing.SummaryData `json:"summary_data"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// SubmitResponse is returned on successful submission.
type SubmitResponse struct {
	Invoice  *Invoice `json:"invoice"`
	Warnings []string `json:"warnings,omitempty"`
}
