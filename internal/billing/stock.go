package billing

import "fmt"

// StockStatus classifies a requested quantity against available stock.
type StockStatus string

const (
	StockOK       StockStatus = "ok"
	StockOut      StockStatus = "out_of_stock"
	StockExceeded StockStatus = "exceeds_stock"
	StockInvalid  StockStatus = "invalid"
)

// CheckStock validates a requested quantity against a product's available
// stock. Zero available stock wins over every other classification. The
// result is advisory: callers surface a warning but still accept the
// quantity and recompute the row.
func CheckStock(quantity, availableStock float64) StockStatus {
	switch {
	case availableStock == 0:
		return StockOut
	case quantity <= 0:
		return StockInvalid
	case quantity > availableStock:
		return StockExceeded
	default:
		return StockOK
	}
}

// Advisory renders the user-facing warning for a non-ok status. It returns
// an empty string for StockOK.
func (s StockStatus) Advisory(productName string) string {
	switch s {
	case StockOut:
		return fmt.Sprintf("%s is out of stock", productName)
	case StockExceeded:
		return fmt.Sprintf("requested quantity for %s exceeds available stock", productName)
	case StockInvalid:
		return fmt.Sprintf("invalid quantity for %s", productName)
	default:
		return ""
	}
}
