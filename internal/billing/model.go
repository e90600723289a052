package billing

import "time"

// LineItem is one row of an invoice in progress. ProductID is zero for a
// blank scratch row that has not been bound to a catalog product yet.
// Amount and PriceIncludingGST are derived; callers must refresh them via
// ComputeLine (or RecomputeLines) after mutating the inputs.
type LineItem struct {
	LineID            string  `json:"lineId"`
	ProductID         int64   `json:"productId"`
	Name              string  `json:"name"`
	HSNCode           string  `json:"hsnCode"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit"`
	Rate              float64 `json:"rate"`
	GSTPercent        float64 `json:"gstPercent"`
	DiscountPercent   float64 `json:"discountPercent"`
	Amount            float64 `json:"amount"`
	PriceIncludingGST float64 `json:"priceIncludingGst"`
	StockQuantity     float64 `json:"stockQuantity"`
}

// Blank reports whether the row is an unbound scratch row.
func (li LineItem) Blank() bool {
	return li.ProductID == 0
}

// DiscountType selects how the invoice-level discount is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

// PaymentStatus distinguishes fully paid invoices from advance payments.
type PaymentStatus string

const (
	PaymentFull    PaymentStatus = "full"
	PaymentAdvance PaymentStatus = "advance"
)

// Modifiers carries the invoice-level charge inputs folded into the summary.
// OverallGSTPercent is a single invoice-level override distinct from each
// line's own GSTPercent.
type Modifiers struct {
	DiscountType      DiscountType  `json:"discountType"`
	DiscountPercent   float64       `json:"discountPercent"`
	FlatDiscount      float64       `json:"flatDiscount"`
	OverallGSTPercent float64       `json:"overallGstPercent"`
	TransportChecked  bool          `json:"transportChecked"`
	TransportCharge   float64       `json:"transportCharge"`
	PaymentType       string        `json:"paymentType"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	AdvanceAmount     float64       `json:"advanceAmount"`
	DueDate           *time.Time    `json:"dueDate,omitempty"`
}

// SummaryData is the aggregate financial record for the whole invoice.
// It is always recomputed in full, never patched incrementally.
type SummaryData struct {
	Subtotal         float64       `json:"subtotal"`
	DiscountType     DiscountType  `json:"discountType"`
	DiscountValue    float64       `json:"discountValue"`
	GSTCost          float64       `json:"gstCost"`
	CGSTCost         float64       `json:"cgstCost"`
	SGSTCost         float64       `json:"sgstCost"`
	TransportChecked bool          `json:"transportChecked"`
	TransportAmount  float64       `json:"transportAmount"`
	Total            float64       `json:"total"`
	PaymentType      string        `json:"paymentType"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	AdvanceAmount    float64       `json:"advanceAmount"`
	DueDate          *time.Time    `json:"dueDate,omitempty"`
}

// Customer identifies the party being billed. Which fields are required
// depends on the document mode (invoice vs simple bill); see the invoice
// service.
type Customer struct {
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	GSTIN         string `json:"gstin,omitempty"`
	Date          string `json:"date,omitempty"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	BillNo        string `json:"billNo,omitempty"`
}

// EwayBill is the optional e-way regulatory block carried along with an
// invoice; this engine stores it verbatim and never computes it.
type EwayBill struct {
	Number       string `json:"number,omitempty"`
	VehicleNo    string `json:"vehicleNo,omitempty"`
	Transporter  string `json:"transporter,omitempty"`
	DistanceKM   int    `json:"distanceKm,omitempty"`
	DispatchFrom string `json:"dispatchFrom,omitempty"`
	ShipTo       string `json:"shipTo,omitempty"`
}
