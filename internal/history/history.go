// Package history holds the client-side filtering and aggregation applied to
// sale records already fetched from the API, plus the preset date ranges that
// feed the upstream fetch.
package history

import (
	"strings"
	"time"

	"gestock/internal/domain/models"
)

// Aggregate filters records by a case-insensitive substring match on the
// article name and totals the filtered set. An empty filter matches
// everything. Input order is preserved; the records are assumed to arrive
// already sorted by the server.
func Aggregate(records []models.SaleRecord, textFilter string) ([]models.SaleRecord, models.HistorySummary) {
	needle := strings.ToLower(strings.TrimSpace(textFilter))

	filtered := make([]models.SaleRecord, 0, len(records))
	summary := models.HistorySummary{}

	for _, rec := range records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.ArticleName), needle) {
			continue
		}
		filtered = append(filtered, rec)
		summary.TotalAmount = summary.TotalAmount.Add(rec.TotalPrice)
		summary.TotalQuantity += rec.Quantity
	}

	return filtered, summary
}

// Preset identifies one of the quick date-range filters.
type Preset string

const (
	PresetToday Preset = "today"
	PresetWeek  Preset = "week"
	PresetMonth Preset = "month"
	PresetAll   Preset = "all"
)

const dayLayout = "2006-01-02"

// Range derives the (start, end) calendar-day bounds for a preset, evaluated
// against the supplied reference time in its own location. PresetAll (and any
// unknown preset) yields empty bounds, meaning no restriction.
func Range(p Preset, ref time.Time) (start, end string) {
	switch p {
	case PresetToday:
		day := ref.Format(dayLayout)
		return day, day
	case PresetWeek:
		return ref.AddDate(0, 0, -7).Format(dayLayout), ref.Format(dayLayout)
	case PresetMonth:
		return ref.AddDate(0, -1, 0).Format(dayLayout), ref.Format(dayLayout)
	default:
		return "", ""
	}
}
