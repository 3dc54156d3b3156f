package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gestock/internal/domain/models"
	"gestock/internal/history"
	"gestock/internal/metrics"
	repo "gestock/internal/repository/mongodb"
)

// ErrArticleNotFound indicates the referenced article id does not exist.
var ErrArticleNotFound = errors.New("article non trouvé")

// ErrInvalidArticle indicates the submitted article fields fail validation.
var ErrInvalidArticle = errors.New("article invalide")

// InsufficientStockError reports a sale request exceeding the available stock.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuffisant! Disponible: %d, Demandé: %d", e.Available, e.Requested)
}

const dateLayout = "2006-01-02"

// Service implements the stock, sale and history operations exposed by the API.
type Service struct {
	store  repo.Store
	logger *zap.Logger
	now    func() time.Time
	newRef func() string
}

// NewService wires a new inventory service instance.
func NewService(store repo.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newRef: func() string { return uuid.NewString() },
	}
}

// ListArticles returns the full stock list.
func (s *Service) ListArticles(ctx context.Context) ([]models.Article, error) {
	return s.store.ListArticles(ctx)
}

// CreateArticle validates the submitted fields, assigns the next free id and
// persists the article.
func (s *Service) CreateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	if err := validateArticle(article); err != nil {
		return models.Article{}, err
	}

	existing, err := s.store.ListArticles(ctx)
	if err != nil {
		return models.Article{}, err
	}

	article.ID = nextID(existing)
	if err := s.store.InsertArticle(ctx, article); err != nil {
		return models.Article{}, err
	}

	s.logger.Info("article created", zap.Int("id", article.ID), zap.String("name", article.Name))
	return article, nil
}

// UpdateArticle replaces every field of the identified article.
func (s *Service) UpdateArticle(ctx context.Context, id int, article models.Article) error {
	if err := validateArticle(article); err != nil {
		return err
	}

	article.ID = id
	found, err := s.store.UpdateArticle(ctx, article)
	if err != nil {
		return err
	}
	if !found {
		return ErrArticleNotFound
	}

	s.logger.Info("article updated", zap.Int("id", id))
	return nil
}

// DeleteArticle removes the identified article.
func (s *Service) DeleteArticle(ctx context.Context, id int) error {
	found, err := s.store.DeleteArticle(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrArticleNotFound
	}

	s.logger.Info("article deleted", zap.Int("id", id))
	return nil
}

// ProcessSale validates stock availability, decrements the article stock and
// appends a history record carrying a fresh reference.
func (s *Service) ProcessSale(ctx context.Context, req models.SaleRequest) (models.SaleRecord, error) {
	if req.Quantity <= 0 {
		return models.SaleRecord{}, fmt.Errorf("%w: quantité invalide", ErrInvalidArticle)
	}

	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return models.SaleRecord{}, err
	}

	var article *models.Article
	for i := range articles {
		if articles[i].ID == req.ArticleID {
			article = &articles[i]
			break
		}
	}
	if article == nil {
		return models.SaleRecord{}, ErrArticleNotFound
	}

	if article.Stock < req.Quantity {
		return models.SaleRecord{}, &InsufficientStockError{Available: article.Stock, Requested: req.Quantity}
	}

	updated := *article
	updated.Stock -= req.Quantity
	if _, err := s.store.UpdateArticle(ctx, updated); err != nil {
		return models.SaleRecord{}, err
	}

	record := models.SaleRecord{
		Date:        s.now(),
		Reference:   s.newRef(),
		ArticleName: article.Name,
		Quantity:    req.Quantity,
		TotalPrice:  article.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}
	if err := s.store.AppendSale(ctx, record); err != nil {
		return models.SaleRecord{}, err
	}

	metrics.SalesProcessed.Inc()
	s.logger.Info("sale recorded",
		zap.String("reference", record.Reference),
		zap.String("article", record.ArticleName),
		zap.Int("quantity", record.Quantity))

	return record, nil
}

// Alerts lists every article currently at or below its reorder threshold.
func (s *Service) Alerts(ctx context.Context) ([]models.Article, error) {
	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.Article, 0)
	for _, a := range articles {
		if a.LowStock() {
			alerts = append(alerts, a)
		}
	}
	return alerts, nil
}

// History assembles the history page for an optional inclusive calendar-day
// range. Empty bounds mean no restriction on that side.
func (s *Service) History(ctx context.Context, startDate, endDate string) (models.HistoryPage, error) {
	var start, end *time.Time

	if startDate != "" {
		t, err := time.ParseInLocation(dateLayout, startDate, time.Local)
		if err != nil {
			return models.HistoryPage{}, fmt.Errorf("invalid start_date %q: %w", startDate, err)
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.ParseInLocation(dateLayout, endDate, time.Local)
		if err != nil {
			return models.HistoryPage{}, fmt.Errorf("invalid end_date %q: %w", endDate, err)
		}
		// Inclusive day bound: cover up to the last instant of the end day.
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &t
	}

	records, err := s.store.ListSales(ctx, start, end)
	if err != nil {
		return models.HistoryPage{}, err
	}

	_, summary := history.Aggregate(records, "")
	return models.HistoryPage{
		Sales:         records,
		TotalAmount:   summary.TotalAmount,
		TotalQuantity: summary.TotalQuantity,
	}, nil
}

func validateArticle(a models.Article) error {
	switch {
	case a.Name == "":
		return fmt.Errorf("%w: nom manquant", ErrInvalidArticle)
	case a.Stock < 0:
		return fmt.Errorf("%w: stock négatif", ErrInvalidArticle)
	case a.UnitPrice.IsNegative():
		return fmt.Errorf("%w: prix négatif", ErrInvalidArticle)
	case a.MinStock < 0:
		return fmt.Errorf("%w: seuil négatif", ErrInvalidArticle)
	}
	return nil
}

func nextID(articles []models.Article) int {
	max := 0
	for _, a := range articles {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}
