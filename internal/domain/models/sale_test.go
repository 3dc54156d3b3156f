package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSaleRecordUnitPrice(t *testing.T) {
	t.Parallel()

	rec := SaleRecord{Quantity: 4, TotalPrice: decimal.RequireFromString("10.00")}
	if want := decimal.RequireFromString("2.5"); !rec.UnitPrice().Equal(want) {
		t.Fatalf("unit price = %s, want %s", rec.UnitPrice(), want)
	}
}

func TestSaleRecordUnitPriceZeroQuantity(t *testing.T) {
	t.Parallel()

	rec := SaleRecord{Quantity: 0, TotalPrice: decimal.NewFromInt(10)}
	if !rec.UnitPrice().IsZero() {
		t.Fatalf("unit price = %s, want 0 for zero quantity", rec.UnitPrice())
	}
}

func TestArticleLowStock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stock, min int
		low        bool
	}{
		{3, 10, true},
		{10, 10, true},
		{11, 10, false},
		{0, 0, true},
	}

	for _, tc := range cases {
		a := Article{Stock: tc.stock, MinStock: tc.min}
		if a.LowStock() != tc.low {
			t.Fatalf("LowStock(stock=%d, min=%d) = %v, want %v", tc.stock, tc.min, a.LowStock(), tc.low)
		}
	}
}
