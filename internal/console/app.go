// Package console implements the terminal front-end: a one-way pipeline from
// API fetches through pure view transforms to rendered text.
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"gestock/internal/config"
	"gestock/internal/domain/models"
	"gestock/internal/format"
	"gestock/internal/history"
	"gestock/pkg/clients/inventory"
)

// App owns the front-end state: the last fetched article list and the output
// sink. Fetched lists are replaced wholesale, never merged; overlapping
// refreshes resolve last-writer-wins.
type App struct {
	client    inventory.Client
	formatter format.Formatter
	cfg       config.ConsoleConfig
	logger    *zap.Logger

	articles []models.Article

	outMu sync.Mutex
	out   io.Writer

	alertBusy  atomic.Bool
	statusBusy atomic.Bool
}

// NewApp wires a console application instance.
func NewApp(client inventory.Client, f format.Formatter, out io.Writer, cfg config.ConsoleConfig, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		client:    client,
		formatter: f,
		cfg:       cfg,
		logger:    logger,
		out:       out,
	}
}

// ParseQuantity converts raw user input to a quantity. Anything unparsable
// maps to zero, which suppresses the preview downstream.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// RefreshStock reloads the article list from the API and renders the table.
func (a *App) RefreshStock(ctx context.Context) error {
	articles, err := a.client.FetchStock(ctx)
	if err != nil {
		a.logger.Warn("stock refresh failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors du chargement des données"))
		return err
	}

	a.articles = articles
	a.renderStockTable()
	return nil
}

// FindArticle returns the loaded article with the given id, or nil.
func (a *App) FindArticle(id int) *models.Article {
	for i := range a.articles {
		if a.articles[i].ID == id {
			return &a.articles[i]
		}
	}
	return nil
}

// ShowPreview renders the live sale preview for the selected article and raw
// quantity input. Invalid selections render nothing.
func (a *App) ShowPreview(articleID int, rawQuantity string) {
	lines := PreviewLines(a.FindArticle(articleID), ParseQuantity(rawQuantity), a.formatter)
	if len(lines) == 0 {
		return
	}
	a.outMu.Lock()
	defer a.outMu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
}

// Sell submits a sale and refreshes the stock view on success.
func (a *App) Sell(ctx context.Context, articleID int, rawQuantity string) {
	result, err := a.client.RecordSale(ctx, models.SaleRequest{
		ArticleID: articleID,
		Quantity:  ParseQuantity(rawQuantity),
	})
	if err != nil {
		a.logger.Warn("sale failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors de la vente"))
		return
	}
	if !result.Success {
		a.ShowToast(NewToast(ToastError, result.Message))
		return
	}

	a.ShowToast(NewToast(ToastSuccess, result.Message))
	_ = a.RefreshStock(ctx)
}

// SaveArticle creates or updates an article depending on whether an id is
// provided, then refreshes the stock view.
func (a *App) SaveArticle(ctx context.Context, editingID int, article models.Article) {
	var result models.APIResult
	var err error
	if editingID > 0 {
		result, err = a.client.UpdateArticle(ctx, editingID, article)
	} else {
		result, err = a.client.CreateArticle(ctx, article)
	}
	if err != nil {
		a.logger.Warn("save article failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors de l'enregistrement"))
		return
	}

	a.showResult(result)
	if result.Success {
		_ = a.RefreshStock(ctx)
	}
}

// DeleteArticle removes an article and refreshes the stock view.
func (a *App) DeleteArticle(ctx context.Context, id int) {
	result, err := a.client.DeleteArticle(ctx, id)
	if err != nil {
		a.logger.Warn("delete article failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors de la suppression"))
		return
	}

	a.showResult(result)
	if result.Success {
		_ = a.RefreshStock(ctx)
	}
}

// ShowHistory fetches the history for a preset range and renders it with the
// local text filter applied.
func (a *App) ShowHistory(ctx context.Context, preset history.Preset, textFilter string) {
	start, end := history.Range(preset, time.Now())
	page, err := a.client.FetchHistory(ctx, start, end)
	if err != nil {
		a.logger.Warn("history fetch failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors du chargement de l'historique"))
		return
	}

	view := BuildHistoryView(page.Sales, textFilter, a.formatter)

	a.outMu.Lock()
	defer a.outMu.Unlock()
	if view.Empty != "" {
		fmt.Fprintln(a.out, view.Empty)
	} else {
		for _, row := range view.Rows {
			fmt.Fprintf(a.out, "%-17s %-24s %8s %14s %14s\n",
				row.Date, row.Article, row.Quantity, row.UnitPrice, row.Total)
		}
	}
	fmt.Fprintln(a.out, view.Summary)
}

// SyncNow triggers a manual cloud sync and surfaces the outcome.
func (a *App) SyncNow(ctx context.Context) {
	a.renderBadge(BadgeFor(models.SyncStatus{State: models.SyncSyncing, Message: "Synchronisation en cours..."}))

	result, err := a.client.SyncNow(ctx)
	if err != nil {
		a.logger.Warn("sync trigger failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors de la synchronisation"))
		return
	}
	a.showResult(result)
}

// Restore pulls the cloud copy over local data and surfaces the outcome.
func (a *App) Restore(ctx context.Context) {
	result, err := a.client.RestoreFromCloud(ctx)
	if err != nil {
		a.logger.Warn("restore failed", zap.Error(err))
		a.ShowToast(NewToast(ToastError, "Erreur lors de la restauration"))
		return
	}
	a.showResult(result)
}

// RunPollers starts the two periodic triggers: low-stock alerts and sync
// status. They run until the context is cancelled. A tick is skipped when the
// previous fetch for the same poller is still in flight.
func (a *App) RunPollers(ctx context.Context) {
	go a.poll(ctx, a.cfg.AlertPollInterval, &a.alertBusy, a.pollAlerts)

	// Status is rendered immediately, then on its interval.
	a.pollStatus(ctx)
	go a.poll(ctx, a.cfg.StatusPollInterval, &a.statusBusy, a.pollStatus)
}

func (a *App) poll(ctx context.Context, interval time.Duration, busy *atomic.Bool, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !busy.CompareAndSwap(false, true) {
				continue
			}
			fn(ctx)
			busy.Store(false)
		}
	}
}

func (a *App) pollAlerts(ctx context.Context) {
	alerts, err := a.client.FetchAlerts(ctx)
	if err != nil {
		a.logger.Debug("alert poll failed", zap.Error(err))
		return
	}
	for _, toast := range AlertToasts(alerts) {
		a.ShowToast(toast)
	}
}

func (a *App) pollStatus(ctx context.Context) {
	status, err := a.client.SyncStatus(ctx)
	if err != nil {
		a.logger.Debug("status poll failed", zap.Error(err))
		status = models.SyncStatus{State: models.SyncOffline, Message: "Hors ligne"}
	}
	a.renderBadge(BadgeFor(status))
}

// ShowToast renders a transient alert line.
func (a *App) ShowToast(t Toast) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, "[%s] %s\n", t.Title, t.Message)
}

func (a *App) showResult(result models.APIResult) {
	if result.Success {
		a.ShowToast(NewToast(ToastSuccess, result.Message))
	} else {
		a.ShowToast(NewToast(ToastError, result.Message))
	}
}

func (a *App) renderStockTable() {
	rows := StockTable(a.articles, a.formatter)

	a.outMu.Lock()
	defer a.outMu.Unlock()
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "Aucun article en stock")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(a.out, "%4d  %-24s %10s %14s %6s\n",
			row.ID, row.Name, row.Stock, row.Price, row.MinStock)
	}
}

func (a *App) renderBadge(b Badge) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, "%s %s (%s)\n", b.Icon, b.Label, b.Title)
}
