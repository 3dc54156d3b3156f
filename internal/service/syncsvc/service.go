// Package syncsvc keeps local data mirrored to a Google Spreadsheet and owns
// the sync status reported to the front-end badge.
package syncsvc

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gestock/internal/config"
	"gestock/internal/domain/models"
	"gestock/internal/metrics"
	repo "gestock/internal/repository/mongodb"
	"gestock/internal/repository/sheets"
)

const (
	stockSheet      = "stock"
	historiqueSheet = "historique"
	timeLayout      = "2006-01-02 15:04:05"
)

// Service coordinates cloud sync and exposes the badge status. It is shared
// by the HTTP handlers and the cron job, so state is mutex guarded.
type Service struct {
	store  repo.Store
	mirror sheets.Mirror
	logger *zap.Logger
	probe  func() bool
	now    func() time.Time

	mu       sync.Mutex
	state    models.SyncState
	message  string
	lastSync string
}

// NewService wires a sync service. A nil mirror disables cloud sync while
// keeping connectivity reporting alive.
func NewService(store repo.Store, mirror sheets.Mirror, cfg config.SyncConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		mirror: mirror,
		logger: logger,
		probe: func() bool {
			conn, err := net.DialTimeout("tcp", cfg.ProbeAddr, cfg.ProbeTimeout)
			if err != nil {
				return false
			}
			_ = conn.Close()
			return true
		},
		now:     time.Now,
		state:   models.SyncOffline,
		message: "Non connecté",
	}
}

// Status returns the current sync status, refreshing the online/offline state
// via the connectivity probe unless a sync is in flight or data was just
// restored.
func (s *Service) Status() models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SyncSyncing && s.state != models.SyncRestored {
		if s.probe() {
			if s.state == models.SyncOffline {
				s.state = models.SyncOnline
				s.message = "Connecté"
			}
		} else {
			s.state = models.SyncOffline
			s.message = "Hors ligne"
		}
	}

	return models.SyncStatus{State: s.state, Message: s.message, LastSync: s.lastSync}
}

// AcknowledgeRestore flips the transient restored state back to online. The
// front-end calls Status again a few seconds after showing the restored badge.
func (s *Service) AcknowledgeRestore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.SyncRestored {
		s.state = models.SyncOnline
		s.message = "Connecté"
	}
}

// SyncNow pushes the current articles and sales history to the spreadsheet,
// replacing both worksheets wholesale.
func (s *Service) SyncNow(ctx context.Context) models.APIResult {
	if s.mirror == nil {
		return models.APIResult{Success: false, Message: "Synchronisation cloud non configurée"}
	}

	s.setState(models.SyncSyncing, "Synchronisation en cours...")

	if !s.probe() {
		s.setState(models.SyncOffline, "Pas de connexion Internet")
		metrics.SyncAttempts.WithLabelValues("offline").Inc()
		return models.APIResult{Success: false, Message: "Pas de connexion Internet"}
	}

	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return s.syncFailure(err)
	}

	// Never push an empty stock list; an accidental wipe must not propagate
	// to the cloud copy.
	if len(articles) == 0 {
		s.setState(models.SyncOnline, "Stock vide - synchronisation annulée")
		metrics.SyncAttempts.WithLabelValues("failure").Inc()
		return models.APIResult{Success: false, Message: "Stock vide - synchronisation annulée pour sécurité"}
	}

	records, err := s.store.ListSales(ctx, nil, nil)
	if err != nil {
		return s.syncFailure(err)
	}

	if err := s.mirror.ReplaceSheet(ctx, stockSheet, stockRows(articles)); err != nil {
		return s.syncFailure(err)
	}
	if err := s.mirror.ReplaceSheet(ctx, historiqueSheet, saleRows(records)); err != nil {
		return s.syncFailure(err)
	}

	stamp := s.now().Format(timeLayout)
	s.mu.Lock()
	s.state = models.SyncOnline
	s.lastSync = stamp
	s.message = "Synchronisé à " + stamp
	s.mu.Unlock()

	metrics.SyncAttempts.WithLabelValues("success").Inc()
	s.logger.Info("cloud sync completed", zap.Int("articles", len(articles)), zap.Int("sales", len(records)))

	return models.APIResult{
		Success: true,
		Message: fmt.Sprintf("Synchronisation réussie! (%d articles, %d ventes)", len(articles), len(records)),
	}
}

// Restore replaces local data with the cloud copy.
func (s *Service) Restore(ctx context.Context) models.APIResult {
	if s.mirror == nil {
		return models.APIResult{Success: false, Message: "Synchronisation cloud non configurée"}
	}

	if !s.probe() {
		s.setState(models.SyncOffline, "Pas de connexion Internet")
		return models.APIResult{Success: false, Message: "Pas de connexion Internet pour restaurer"}
	}

	stockValues, err := s.mirror.ReadSheet(ctx, stockSheet)
	if err != nil {
		s.logger.Error("failed reading stock sheet", zap.Error(err))
		return models.APIResult{Success: false, Message: "Feuille \"stock\" introuvable dans le cloud"}
	}
	if len(stockValues) <= 1 {
		return models.APIResult{Success: false, Message: "Aucune donnée de stock dans le cloud"}
	}

	articles := parseArticleRows(stockValues[1:])
	if err := s.store.ReplaceArticles(ctx, articles); err != nil {
		return models.APIResult{Success: false, Message: fmt.Sprintf("Erreur lors de la restauration: %v", err)}
	}

	// A missing or empty history sheet restores to an empty history.
	var records []models.SaleRecord
	if histValues, err := s.mirror.ReadSheet(ctx, historiqueSheet); err == nil && len(histValues) > 1 {
		records = parseSaleRows(histValues[1:])
	}
	if err := s.store.ReplaceSales(ctx, records); err != nil {
		return models.APIResult{Success: false, Message: fmt.Sprintf("Erreur lors de la restauration: %v", err)}
	}

	stamp := s.now().Format(timeLayout)
	s.mu.Lock()
	s.state = models.SyncRestored
	s.lastSync = stamp
	s.message = "Restauré depuis le cloud"
	s.mu.Unlock()

	s.logger.Info("cloud restore completed", zap.Int("articles", len(articles)), zap.Int("sales", len(records)))
	return models.APIResult{Success: true, Message: "Données restaurées depuis le cloud avec succès!"}
}

func (s *Service) setState(state models.SyncState, message string) {
	s.mu.Lock()
	s.state = state
	s.message = message
	s.mu.Unlock()
}

func (s *Service) syncFailure(err error) models.APIResult {
	s.logger.Error("cloud sync failed", zap.Error(err))
	s.setState(models.SyncOnline, fmt.Sprintf("Erreur: %v", err))
	metrics.SyncAttempts.WithLabelValues("failure").Inc()
	return models.APIResult{Success: false, Message: fmt.Sprintf("Erreur lors de la synchronisation: %v", err)}
}

func stockRows(articles []models.Article) [][]interface{} {
	rows := make([][]interface{}, 0, len(articles)+1)
	rows = append(rows, []interface{}{"id", "nom_article", "stock", "prix", "min_stock"})
	for _, a := range articles {
		rows = append(rows, []interface{}{a.ID, a.Name, a.Stock, a.UnitPrice.String(), a.MinStock})
	}
	return rows
}

func saleRows(records []models.SaleRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, []interface{}{"date", "reference", "nom_article", "quantite", "prix_total"})
	for _, r := range records {
		rows = append(rows, []interface{}{r.Date.Format(timeLayout), r.Reference, r.ArticleName, r.Quantity, r.TotalPrice.String()})
	}
	return rows
}

func parseArticleRows(rows [][]interface{}) []models.Article {
	articles := make([]models.Article, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		articles = append(articles, models.Article{
			ID:        parseInt(row[0]),
			Name:      asString(row[1]),
			Stock:     parseInt(row[2]),
			UnitPrice: parseDecimal(row[3]),
			MinStock:  parseInt(row[4]),
		})
	}
	return articles
}

func parseSaleRows(rows [][]interface{}) []models.SaleRecord {
	records := make([]models.SaleRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		date, err := time.ParseInLocation(timeLayout, asString(row[0]), time.Local)
		if err != nil {
			continue
		}
		records = append(records, models.SaleRecord{
			Date:        date,
			Reference:   asString(row[1]),
			ArticleName: asString(row[2]),
			Quantity:    parseInt(row[3]),
			TotalPrice:  parseDecimal(row[4]),
		})
	}
	return records
}

func asString(v interface{}) string {
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func parseInt(v interface{}) int {
	n, err := strconv.Atoi(asString(v))
	if err != nil {
		return 0
	}
	return n
}

func parseDecimal(v interface{}) decimal.Decimal {
	d, err := decimal.NewFromString(asString(v))
	if err != nil {
		return decimal.Zero
	}
	return d
}
