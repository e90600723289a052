package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func itemsWithPriceIncludingGST(values ...float64) []LineItem {
	items := make([]LineItem, 0, len(values))
	for i, v := range values {
		items = append(items, LineItem{ProductID: int64(i + 1), PriceIncludingGST: v})
	}
	return items
}

func TestAggregatePercentDiscountWithOverallGST(t *testing.T) {
	items := itemsWithPriceIncludingGST(318.60, 100.00, 50.00)

	sum := Aggregate(items, Modifiers{
		DiscountType:      DiscountPercent,
		DiscountPercent:   10,
		OverallGSTPercent: 18,
	})

	require.Equal(t, 468.60, sum.Subtotal)
	require.Equal(t, 46.86, sum.DiscountValue)
	require.Equal(t, 75.91, sum.GSTCost)
	require.Equal(t, 37.96, sum.CGSTCost)
	require.Equal(t, 37.96, sum.SGSTCost)
	require.Equal(t, 0.00, sum.TransportAmount)
	require.Equal(t, 497.65, sum.Total)
}

func TestAggregateFlatDiscount(t *testing.T) {
	items := itemsWithPriceIncludingGST(200, 300)

	sum := Aggregate(items, Modifiers{
		DiscountType: DiscountFlat,
		FlatDiscount: 50,
	})

	require.Equal(t, 500.00, sum.Subtotal)
	require.Equal(t, 50.00, sum.DiscountValue)
	require.Equal(t, 0.00, sum.GSTCost)
	require.Equal(t, 450.00, sum.Total)
}

func TestAggregateTransportOnlyWhenChecked(t *testing.T) {
	items := itemsWithPriceIncludingGST(100)

	sum := Aggregate(items, Modifiers{TransportCharge: 80})
	require.Equal(t, 0.00, sum.TransportAmount)
	require.Equal(t, 100.00, sum.Total)

	sum = Aggregate(items, Modifiers{TransportChecked: true, TransportCharge: 80})
	require.Equal(t, 80.00, sum.TransportAmount)
	require.Equal(t, 180.00, sum.Total)
}

func TestAggregateCGSTSGSTSplit(t *testing.T) {
	items := itemsWithPriceIncludingGST(1000)

	sum := Aggregate(items, Modifiers{OverallGSTPercent: 5})

	require.Equal(t, 50.00, sum.GSTCost)
	require.Equal(t, 25.00, sum.CGSTCost)
	require.Equal(t, 25.00, sum.SGSTCost)
}

func TestAggregateEmptyInvoice(t *testing.T) {
	sum := Aggregate(nil, Modifiers{DiscountPercent: 10, OverallGSTPercent: 18})
	require.Zero(t, sum.Subtotal)
	require.Zero(t, sum.Total)
	require.Equal(t, DiscountPercent, sum.DiscountType)
}

func TestAggregateCarriesPaymentFields(t *testing.T) {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	sum := Aggregate(itemsWithPriceIncludingGST(100), Modifiers{
		PaymentType:   "upi",
		PaymentStatus: PaymentAdvance,
		AdvanceAmount: 40,
		DueDate:       &due,
	})
	require.Equal(t, "upi", sum.PaymentType)
	require.Equal(t, PaymentAdvance, sum.PaymentStatus)
	require.Equal(t, 40.0, sum.AdvanceAmount)
	require.Equal(t, &due, sum.DueDate)
}
