package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeLine(t *testing.T) {
	amount, incl := ComputeLine(3, 100, 18, 10)
	require.Equal(t, 270.00, amount)
	require.Equal(t, 318.60, incl)
}

func TestComputeLineNoDiscountNoGST(t *testing.T) {
	amount, incl := ComputeLine(4, 25.50, 0, 0)
	require.Equal(t, 102.00, amount)
	require.Equal(t, 102.00, incl)
}

func TestComputeLineZeroQuantity(t *testing.T) {
	amount, incl := ComputeLine(0, 999.99, 18, 5)
	require.Zero(t, amount)
	require.Zero(t, incl)
}

func TestComputeLineNonNumericTreatedAsZero(t *testing.T) {
	amount, incl := ComputeLine(math.NaN(), 100, 18, 0)
	require.Zero(t, amount)
	require.Zero(t, incl)

	amount, incl = ComputeLine(2, math.Inf(1), 18, 0)
	require.Zero(t, amount)
	require.Zero(t, incl)
}

func TestComputeLineNegativeNotClamped(t *testing.T) {
	amount, incl := ComputeLine(-2, 100, 18, 0)
	require.Equal(t, -200.00, amount)
	require.Equal(t, -236.00, incl)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	require.Equal(t, 0.13, Round2(0.125))
	require.Equal(t, -0.13, Round2(-0.125))
	require.Equal(t, 2.68, Round2(2.675))
	require.Equal(t, 75.91, Round2(75.9132))
}

func TestRecomputeLinesRefreshesDerivedFields(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, Quantity: 3, Rate: 100, GSTPercent: 18, DiscountPercent: 10},
		{ProductID: 2, Quantity: 1, Rate: 50},
	}
	items = RecomputeLines(items)
	require.Equal(t, 270.00, items[0].Amount)
	require.Equal(t, 318.60, items[0].PriceIncludingGST)
	require.Equal(t, 50.00, items[1].Amount)
	require.Equal(t, 50.00, items[1].PriceIncludingGST)
}
