package history

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gestock/internal/domain/models"
)

func record(name string, qty int, total string) models.SaleRecord {
	return models.SaleRecord{
		Date:        time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local),
		ArticleName: name,
		Quantity:    qty,
		TotalPrice:  decimal.RequireFromString(total),
	}
}

func TestAggregate_TextFilter(t *testing.T) {
	t.Parallel()

	records := []models.SaleRecord{
		record("bolt", 2, "10"),
		record("nut", 3, "9"),
	}

	filtered, summary := Aggregate(records, "bo")
	if len(filtered) != 1 || filtered[0].ArticleName != "bolt" {
		t.Fatalf("filtered = %+v, want only the bolt record", filtered)
	}
	if want := decimal.NewFromInt(10); !summary.TotalAmount.Equal(want) {
		t.Fatalf("totalAmount = %s, want %s", summary.TotalAmount, want)
	}
	if summary.TotalQuantity != 2 {
		t.Fatalf("totalQuantity = %d, want 2", summary.TotalQuantity)
	}
}

func TestAggregate_EmptyFilterMatchesAll(t *testing.T) {
	t.Parallel()

	records := []models.SaleRecord{
		record("bolt", 2, "10"),
		record("nut", 3, "9"),
	}

	filtered, summary := Aggregate(records, "")
	if len(filtered) != len(records) {
		t.Fatalf("filtered %d records, want %d", len(filtered), len(records))
	}
	if want := decimal.NewFromInt(19); !summary.TotalAmount.Equal(want) {
		t.Fatalf("totalAmount = %s, want %s", summary.TotalAmount, want)
	}
	if summary.TotalQuantity != 5 {
		t.Fatalf("totalQuantity = %d, want 5", summary.TotalQuantity)
	}
}

func TestAggregate_CaseInsensitive(t *testing.T) {
	t.Parallel()

	records := []models.SaleRecord{record("Clavier Mécanique", 1, "35")}

	filtered, _ := Aggregate(records, "CLAVIER")
	if len(filtered) != 1 {
		t.Fatalf("expected case-insensitive match, got %d records", len(filtered))
	}
}

func TestAggregate_PreservesOrder(t *testing.T) {
	t.Parallel()

	records := []models.SaleRecord{
		record("zulu", 1, "1"),
		record("alpha", 1, "1"),
		record("zulu-two", 1, "1"),
	}

	filtered, _ := Aggregate(records, "")
	for i := range records {
		if filtered[i].ArticleName != records[i].ArticleName {
			t.Fatalf("order changed at %d: got %s, want %s", i, filtered[i].ArticleName, records[i].ArticleName)
		}
	}
}

func TestAggregate_NoMatches(t *testing.T) {
	t.Parallel()

	records := []models.SaleRecord{record("bolt", 2, "10")}

	filtered, summary := Aggregate(records, "xyz")
	if len(filtered) != 0 {
		t.Fatalf("expected empty result, got %d records", len(filtered))
	}
	if !summary.TotalAmount.IsZero() || summary.TotalQuantity != 0 {
		t.Fatalf("summary not zeroed: %+v", summary)
	}
}

func TestAggregate_SummaryReflectsFilteredSetOnly(t *testing.T) {
	t.Parallel()

	records := []models.SaleRecord{
		record("bolt", 2, "10"),
		record("bolt large", 4, "30"),
		record("nut", 3, "9"),
	}

	_, summary := Aggregate(records, "bolt")
	if want := decimal.NewFromInt(40); !summary.TotalAmount.Equal(want) {
		t.Fatalf("totalAmount = %s, want %s", summary.TotalAmount, want)
	}
	if summary.TotalQuantity != 6 {
		t.Fatalf("totalQuantity = %d, want 6", summary.TotalQuantity)
	}
}

func TestRange_Presets(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 3, 14, 15, 30, 45, 0, time.Local)

	cases := []struct {
		preset Preset
		start  string
		end    string
	}{
		{PresetToday, "2026-03-14", "2026-03-14"},
		{PresetWeek, "2026-03-07", "2026-03-14"},
		{PresetMonth, "2026-02-14", "2026-03-14"},
		{PresetAll, "", ""},
		{Preset("bogus"), "", ""},
	}

	for _, tc := range cases {
		start, end := Range(tc.preset, ref)
		if start != tc.start || end != tc.end {
			t.Fatalf("Range(%s) = (%q, %q), want (%q, %q)", tc.preset, start, end, tc.start, tc.end)
		}
	}
}
