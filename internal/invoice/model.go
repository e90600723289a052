package invoice

import (
	"time"

	"github.com/gstbill-erp/gstbill/internal/billing"
)

// DocumentKind distinguishes full GST invoices from simple bills.
type DocumentKind string

const (
	KindInvoice DocumentKind = "INVOICE"
	KindBill    DocumentKind = "BILL"
)

// Invoice is a submitted document: the customer block, the line items and
// the frozen summary, exactly as computed at submission time.
type Invoice struct {
	ID          int64               `json:"id"`
	DocNumber   string              `json:"doc_number"`
	Kind        DocumentKind        `json:"kind"`
	Customer    billing.Customer    `json:"customer"`
	Lines       []billing.LineItem  `json:"lines,omitempty"`
	SummaryData billing.SummaryData `json:"summary_data"`
	EwayData    *billing.EwayBill   `json:"eway_data,omitempty"`
	CreatedBy   int64               `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ListInvoicesRequest narrows invoice listings.
type ListInvoicesRequest struct {
	Kind     *DocumentKind
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}
