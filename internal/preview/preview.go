// Package preview computes the live projection of a proposed sale before it
// is submitted: total price, resulting stock level and a warning
// classification. It is pure and recomputed by callers on every input change.
package preview

import (
	"github.com/shopspring/decimal"

	"gestock/internal/domain/models"
)

// Evaluate builds the sale preview for the selected article and requested
// quantity. A nil article or a non-positive quantity suppresses the preview
// (ok=false); that is a display rule, not an error.
//
// StockAfter is not clamped and may go negative; it only feeds the warning
// classification and the display.
func Evaluate(article *models.Article, quantity int) (p models.SalePreview, ok bool) {
	if article == nil || quantity <= 0 {
		return models.SalePreview{}, false
	}

	p = models.SalePreview{
		Article:    *article,
		Quantity:   quantity,
		Total:      article.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		StockAfter: article.Stock - quantity,
	}

	switch {
	case quantity > article.Stock:
		p.Warning = models.WarningInsufficient
	case p.StockAfter <= article.MinStock:
		p.Warning = models.WarningLowAfterSale
	default:
		p.Warning = models.WarningNone
	}

	return p, true
}
