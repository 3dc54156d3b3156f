package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is an immutable log entry of a completed sale.
type SaleRecord struct {
	Date        time.Time       `json:"date" bson:"date"`
	Reference   string          `json:"reference" bson:"reference"`
	ArticleName string          `json:"nom_article" bson:"nom_article"`
	Quantity    int             `json:"quantite" bson:"quantite"`
	TotalPrice  decimal.Decimal `json:"prix_total" bson:"prix_total"`
}

// UnitPrice derives the per-unit price from the recorded total. Records with
// a zero quantity yield zero rather than dividing by it.
func (r SaleRecord) UnitPrice() decimal.Decimal {
	if r.Quantity == 0 {
		return decimal.Zero
	}
	return r.TotalPrice.Div(decimal.NewFromInt(int64(r.Quantity)))
}

// HistorySummary aggregates a filtered set of sale records.
type HistorySummary struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalQuantity int             `json:"total_quantity"`
}

// HistoryPage is the /api/historique response: the (possibly date-restricted)
// record set plus its totals.
type HistoryPage struct {
	Sales         []SaleRecord    `json:"sales"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalQuantity int             `json:"total_quantity"`
}

// SaleRequest is the /api/vente payload.
type SaleRequest struct {
	ArticleID int `json:"article_id" binding:"required"`
	Quantity  int `json:"quantite" binding:"required"`
}
