package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckStock(t *testing.T) {
	require.Equal(t, StockOK, CheckStock(5, 10))
	require.Equal(t, StockOK, CheckStock(10, 10))
	require.Equal(t, StockExceeded, CheckStock(11, 10))
	require.Equal(t, StockInvalid, CheckStock(0, 10))
	require.Equal(t, StockInvalid, CheckStock(-3, 10))
}

func TestCheckStockZeroStockWinsRegardlessOfQuantity(t *testing.T) {
	require.Equal(t, StockOut, CheckStock(1, 0))
	require.Equal(t, StockOut, CheckStock(0, 0))
	require.Equal(t, StockOut, CheckStock(-1, 0))
}

func TestStockAdvisoryMessages(t *testing.T) {
	require.Empty(t, StockOK.Advisory("Soap"))
	require.Contains(t, StockOut.Advisory("Soap"), "out of stock")
	require.Contains(t, StockExceeded.Advisory("Soap"), "exceeds available stock")
	require.Contains(t, StockInvalid.Advisory("Soap"), "invalid quantity")
}
