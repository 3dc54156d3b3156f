package models

import "github.com/shopspring/decimal"

// Article is a stock-keeping unit: quantity on hand, unit price and the
// reorder threshold below which the article counts as low stock.
// JSON field names follow the wire format of the inventory API.
type Article struct {
	ID        int             `json:"id" bson:"id"`
	Name      string          `json:"nom_article" bson:"nom_article" binding:"required"`
	Stock     int             `json:"stock" bson:"stock"`
	UnitPrice decimal.Decimal `json:"prix" bson:"prix"`
	MinStock  int             `json:"min_stock" bson:"min_stock"`
}

// LowStock reports whether the article sits at or below its reorder threshold.
func (a Article) LowStock() bool {
	return a.Stock <= a.MinStock
}

// Warning classifies the outcome of a proposed sale.
type Warning int

const (
	// WarningNone means the sale leaves a comfortable stock level.
	WarningNone Warning = iota
	// WarningInsufficient means the requested quantity exceeds current stock.
	WarningInsufficient
	// WarningLowAfterSale means the sale would push stock to or below MinStock.
	WarningLowAfterSale
)

func (w Warning) String() string {
	switch w {
	case WarningInsufficient:
		return "insufficient"
	case WarningLowAfterSale:
		return "low_after_sale"
	default:
		return "none"
	}
}

// SalePreview is the live, non-persisted projection of a proposed sale.
type SalePreview struct {
	Article    Article         `json:"article"`
	Quantity   int             `json:"quantite"`
	Total      decimal.Decimal `json:"total"`
	StockAfter int             `json:"stock_apres"`
	Warning    Warning         `json:"warning"`
}
