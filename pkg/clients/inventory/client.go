// Package inventory provides the HTTP client used by the console front-end to
// talk to the inventory API.
package inventory

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"gestock/internal/domain/models"
)

// Client exposes the inventory API operations used by the front-end.
type Client interface {
	FetchStock(ctx context.Context) ([]models.Article, error)
	CreateArticle(ctx context.Context, article models.Article) (models.APIResult, error)
	UpdateArticle(ctx context.Context, id int, article models.Article) (models.APIResult, error)
	DeleteArticle(ctx context.Context, id int) (models.APIResult, error)
	RecordSale(ctx context.Context, req models.SaleRequest) (models.SaleResult, error)
	FetchAlerts(ctx context.Context) ([]models.Article, error)
	FetchHistory(ctx context.Context, startDate, endDate string) (models.HistoryPage, error)
	SyncStatus(ctx context.Context) (models.SyncStatus, error)
	SyncNow(ctx context.Context) (models.APIResult, error)
	RestoreFromCloud(ctx context.Context) (models.APIResult, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an inventory API client for the given base URL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// FetchStock loads the full article list.
func (c *APIClient) FetchStock(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&articles).
		Get("/api/stock")
	if err != nil {
		return nil, fmt.Errorf("fetch stock: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch stock: unexpected status %d", resp.StatusCode())
	}
	return articles, nil
}

// CreateArticle submits a new article. A success=false result carries the
// API's own message and is not an error.
func (c *APIClient) CreateArticle(ctx context.Context, article models.Article) (models.APIResult, error) {
	return c.mutate(ctx, http.MethodPost, "/api/stock", article)
}

// UpdateArticle replaces the fields of an existing article.
func (c *APIClient) UpdateArticle(ctx context.Context, id int, article models.Article) (models.APIResult, error) {
	return c.mutate(ctx, http.MethodPut, "/api/stock/"+strconv.Itoa(id), article)
}

// DeleteArticle removes an article.
func (c *APIClient) DeleteArticle(ctx context.Context, id int) (models.APIResult, error) {
	return c.mutate(ctx, http.MethodDelete, "/api/stock/"+strconv.Itoa(id), nil)
}

// RecordSale submits a sale transaction.
func (c *APIClient) RecordSale(ctx context.Context, req models.SaleRequest) (models.SaleResult, error) {
	result := new(models.SaleResult)
	fail := new(models.SaleResult)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(fail).
		Post("/api/vente")
	if err != nil {
		return models.SaleResult{}, fmt.Errorf("record sale: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		if fail.Message == "" {
			return models.SaleResult{}, fmt.Errorf("record sale: unexpected status %d", resp.StatusCode())
		}
		return *fail, nil
	}
	return *result, nil
}

// FetchAlerts loads the articles currently at or below threshold.
func (c *APIClient) FetchAlerts(ctx context.Context) ([]models.Article, error) {
	var alerts []models.Article
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&alerts).
		Get("/api/alerts")
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch alerts: unexpected status %d", resp.StatusCode())
	}
	return alerts, nil
}

// FetchHistory loads the sales history page, optionally date-restricted.
// Empty bounds are omitted from the query.
func (c *APIClient) FetchHistory(ctx context.Context, startDate, endDate string) (models.HistoryPage, error) {
	req := c.httpClient.R().SetContext(ctx)
	if startDate != "" {
		req.SetQueryParam("start_date", startDate)
	}
	if endDate != "" {
		req.SetQueryParam("end_date", endDate)
	}

	page := new(models.HistoryPage)
	resp, err := req.SetResult(page).Get("/api/historique")
	if err != nil {
		return models.HistoryPage{}, fmt.Errorf("fetch history: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.HistoryPage{}, fmt.Errorf("fetch history: unexpected status %d", resp.StatusCode())
	}
	return *page, nil
}

// SyncStatus loads the current cloud sync badge state.
func (c *APIClient) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	status := new(models.SyncStatus)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(status).
		Get("/api/sync/status")
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("fetch sync status: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.SyncStatus{}, fmt.Errorf("fetch sync status: unexpected status %d", resp.StatusCode())
	}
	return *status, nil
}

// SyncNow triggers an immediate cloud sync.
func (c *APIClient) SyncNow(ctx context.Context) (models.APIResult, error) {
	return c.mutate(ctx, http.MethodPost, "/api/sync/now", nil)
}

// RestoreFromCloud pulls the cloud copy over the local data.
func (c *APIClient) RestoreFromCloud(ctx context.Context) (models.APIResult, error) {
	return c.mutate(ctx, http.MethodPost, "/api/sync/restore", nil)
}

func (c *APIClient) mutate(ctx context.Context, method, path string, body interface{}) (models.APIResult, error) {
	result := new(models.APIResult)
	fail := new(models.APIResult)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(fail)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return models.APIResult{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	// Business failures come back as success=false envelopes with 4xx/5xx
	// statuses; surface them as results, not transport errors.
	if resp.StatusCode() >= http.StatusBadRequest {
		if fail.Message == "" {
			return models.APIResult{}, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode())
		}
		return *fail, nil
	}
	return *result, nil
}
