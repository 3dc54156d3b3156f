package console

import (
	"fmt"

	"gestock/internal/domain/models"
	"gestock/internal/format"
	"gestock/internal/history"
	"gestock/internal/preview"
)

// StockRow is the render description of one stock table line.
type StockRow struct {
	ID       int
	Name     string
	Stock    string
	Price    string
	MinStock string
	Low      bool
}

// StockTable builds the table rows for the current article list.
func StockTable(articles []models.Article, f format.Formatter) []StockRow {
	rows := make([]StockRow, 0, len(articles))
	for _, a := range articles {
		row := StockRow{
			ID:       a.ID,
			Name:     a.Name,
			Stock:    f.Quantity(a.Stock),
			Price:    f.Price(a.UnitPrice),
			MinStock: f.Quantity(a.MinStock),
			Low:      a.LowStock(),
		}
		if row.Low {
			row.Stock += " ⚠️"
		}
		rows = append(rows, row)
	}
	return rows
}

// PreviewLines renders the live sale preview pane. An empty slice means the
// preview is suppressed (no article selected or non-positive quantity).
func PreviewLines(article *models.Article, quantity int, f format.Formatter) []string {
	p, ok := preview.Evaluate(article, quantity)
	if !ok {
		return nil
	}

	lines := []string{
		"Aperçu de la vente:",
		"Article: " + p.Article.Name,
		"Prix unitaire: " + f.Price(p.Article.UnitPrice),
		fmt.Sprintf("Quantité: %d", p.Quantity),
		"Total: " + f.Price(p.Total),
		fmt.Sprintf("Stock actuel: %d → %d", p.Article.Stock, p.StockAfter),
	}

	switch p.Warning {
	case models.WarningInsufficient:
		lines = append(lines, "⚠️ Stock insuffisant!")
	case models.WarningLowAfterSale:
		lines = append(lines, "⚠️ Attention: Stock sera faible après cette vente")
	}

	return lines
}

// HistoryRow is the render description of one history table line.
type HistoryRow struct {
	Date      string
	Article   string
	Quantity  string
	UnitPrice string
	Total     string
}

// HistoryView is the render description of the history screen.
type HistoryView struct {
	Rows    []HistoryRow
	Summary string
	Empty   string
}

// BuildHistoryView applies the local text filter to the fetched records and
// renders the table plus the summary line over the filtered set.
func BuildHistoryView(records []models.SaleRecord, textFilter string, f format.Formatter) HistoryView {
	filtered, summary := history.Aggregate(records, textFilter)

	view := HistoryView{
		Summary: fmt.Sprintf("Total: %s — %s articles vendus",
			f.Price(summary.TotalAmount), f.Quantity(summary.TotalQuantity)),
	}

	if len(filtered) == 0 {
		view.Empty = "Aucune vente ne correspond à vos critères"
		return view
	}

	view.Rows = make([]HistoryRow, 0, len(filtered))
	for _, rec := range filtered {
		view.Rows = append(view.Rows, HistoryRow{
			Date:      f.DateTime(rec.Date),
			Article:   rec.ArticleName,
			Quantity:  f.Quantity(rec.Quantity),
			UnitPrice: f.Price(rec.UnitPrice()),
			Total:     f.Price(rec.TotalPrice),
		})
	}
	return view
}

// Badge is the render description of the sync status indicator.
type Badge struct {
	Icon  string
	Label string
	Title string
}

// BadgeFor maps a sync status onto its visual badge state.
func BadgeFor(status models.SyncStatus) Badge {
	var badge Badge
	switch status.State {
	case models.SyncOnline:
		badge = Badge{Icon: "🟢", Label: "En ligne"}
	case models.SyncSyncing:
		badge = Badge{Icon: "🟡", Label: "Synchronisation..."}
	case models.SyncRestored:
		badge = Badge{Icon: "🔵", Label: "Restauré"}
	case models.SyncOffline:
		badge = Badge{Icon: "🔴", Label: "Hors ligne"}
	default:
		badge = Badge{Icon: "🔴", Label: "Inconnu"}
	}

	if status.LastSync != "" {
		badge.Title = "Dernière sync: " + status.LastSync
	} else {
		badge.Title = status.Message
	}
	return badge
}

// ToastKind distinguishes toast severities.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
)

// Toast is a transient alert shown to the user.
type Toast struct {
	Kind    ToastKind
	Title   string
	Message string
}

// NewToast builds a toast with the localized title for its kind.
func NewToast(kind ToastKind, message string) Toast {
	title := "Attention"
	switch kind {
	case ToastSuccess:
		title = "✅ Succès"
	case ToastError:
		title = "❌ Erreur"
	case ToastWarning:
		title = "⚠️ Attention"
	}
	return Toast{Kind: kind, Title: title, Message: message}
}

// AlertToasts converts low-stock alert articles into warning toasts.
func AlertToasts(alerts []models.Article) []Toast {
	toasts := make([]Toast, 0, len(alerts))
	for _, a := range alerts {
		toasts = append(toasts, NewToast(ToastWarning,
			fmt.Sprintf("%s: Stock = %d (Min: %d)", a.Name, a.Stock, a.MinStock)))
	}
	return toasts
}
