package billing

// Aggregate folds every line item plus the invoice-level modifiers into one
// summary. The fold is total, never incremental: any edit anywhere triggers
// a full recomputation. Invoices rarely exceed tens of rows, so O(n) per
// edit is acceptable and avoids incremental-update bugs.
//
// Subtotal is the sum of per-line PriceIncludingGST, which is already
// GST-inclusive, while GSTCost applies the invoice-level override on top of
// it. Whether that models a secondary invoice-level charge or double-counts
// tax is an open product question; the formula is kept as-is for parity
// with the billing frontend.
func Aggregate(items []LineItem, m Modifiers) SummaryData {
	var subtotal float64
	for _, li := range items {
		subtotal += li.PriceIncludingGST
	}

	var discountValue float64
	switch m.DiscountType {
	case DiscountFlat:
		discountValue = m.FlatDiscount
	default:
		discountValue = subtotal * m.DiscountPercent / 100
	}

	gstCost := (subtotal - discountValue) * m.OverallGSTPercent / 100

	var transportAmount float64
	if m.TransportChecked {
		transportAmount = m.TransportCharge
	}

	total := subtotal - discountValue + transportAmount + gstCost

	discountType := m.DiscountType
	if discountType == "" {
		discountType = DiscountPercent
	}

	return SummaryData{
		Subtotal:         Round2(subtotal),
		DiscountType:     discountType,
		DiscountValue:    Round2(discountValue),
		GSTCost:          Round2(gstCost),
		CGSTCost:         Round2(gstCost / 2),
		SGSTCost:         Round2(gstCost / 2),
		TransportChecked: m.TransportChecked,
		TransportAmount:  Round2(transportAmount),
		Total:            Round2(total),
		PaymentType:      m.PaymentType,
		PaymentStatus:    m.PaymentStatus,
		AdvanceAmount:    m.AdvanceAmount,
		DueDate:          m.DueDate,
	}
}
