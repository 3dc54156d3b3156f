package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFrenchPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00 TND"},
		{"5", "5,00 TND"},
		{"1500.5", "1 500,50 TND"},
		{"45000", "45 000,00 TND"},
		{"1234567.89", "1 234 567,89 TND"},
		{"-45000", "-45 000,00 TND"},
		{"0.005", "0,01 TND"},
	}

	var f French
	for _, tc := range cases {
		got := f.Price(decimal.RequireFromString(tc.in))
		if got != tc.want {
			t.Fatalf("Price(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFrenchQuantity(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:       "0",
		7:       "7",
		999:     "999",
		1000:    "1 000",
		25000:   "25 000",
		-1234:   "-1 234",
		1000000: "1 000 000",
	}

	var f French
	for n, want := range cases {
		if got := f.Quantity(n); got != want {
			t.Fatalf("Quantity(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFrenchDateTime(t *testing.T) {
	t.Parallel()

	var f French
	stamp := time.Date(2026, 3, 14, 9, 5, 0, 0, time.Local)
	if got := f.DateTime(stamp); got != "14/03/2026 09:05" {
		t.Fatalf("DateTime = %q", got)
	}
}
