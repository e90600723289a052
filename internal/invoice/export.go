package invoice

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// inr formats amounts with Indian digit grouping (12,34,567.89).
var inr = message.NewPrinter(language.MustParse("en-IN"))

func formatAmount(v float64) string {
	return inr.Sprintf("%.2f", v)
}

// WriteCSV renders one document as CSV: a customer header block, the line
// items and the summary totals.
func WriteCSV(w io.Writer, inv *Invoice) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	header := [][]string{
		{"Document", inv.DocNumber},
		{"Kind", string(inv.Kind)},
		{"Customer", inv.Customer.Name},
		{"Mobile", inv.Customer.Mobile},
		{"Date", inv.Customer.Date},
		{},
	}
	for _, row := range header {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{"#", "Item", "HSN", "Qty", "Unit", "Rate", "Disc %", "GST %", "Amount", "Incl. GST"}); err != nil {
		return err
	}
	for i, li := range inv.Lines {
		row := []string{
			strconv.Itoa(i + 1),
			li.Name,
			li.HSNCode,
			strconv.FormatFloat(li.Quantity, 'f', -1, 64),
			li.Unit,
			formatAmount(li.Rate),
			strconv.FormatFloat(li.DiscountPercent, 'f', -1, 64),
			strconv.FormatFloat(li.GSTPercent, 'f', -1, 64),
			formatAmount(li.Amount),
			formatAmount(li.PriceIncludingGST),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	sum := inv.SummaryData
	totals := [][]string{
		{},
		{"Subtotal", formatAmount(sum.Subtotal)},
		{fmt.Sprintf("Discount (%s)", sum.DiscountType), formatAmount(sum.DiscountValue)},
		{"GST", formatAmount(sum.GSTCost)},
		{"CGST", formatAmount(sum.CGSTCost)},
		{"SGST", formatAmount(sum.SGSTCost)},
		{"Transport", formatAmount(sum.TransportAmount)},
		{"Total", formatAmount(sum.Total)},
	}
	for _, row := range totals {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
