package catalog

import "time"

// Product is a catalog record consumed read-only by the billing screens.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	HSNCode         string    `json:"hsn_code"`
	Barcode         string    `json:"barcode,omitempty"`
	Price           float64   `json:"price"`
	DiscountPrice   *float64  `json:"discount_price,omitempty"`
	GSTPercent      float64   `json:"gst_percent"`
	DiscountPercent float64   `json:"discount_percent"`
	StockQuantity   float64   `json:"stock_quantity"`
	Unit            string    `json:"unit"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EffectiveRate is the selling rate: the discount price when one is set,
// falling back to the list price.
func (p Product) EffectiveRate() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}

// ListFilters narrows product listings.
type ListFilters struct {
	Search   string
	Page     int
	Limit    int
	IsActive *bool
}
