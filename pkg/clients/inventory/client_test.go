package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"gestock/internal/domain/models"
)

func TestFetchStock(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stock" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Article{
			{ID: 1, Name: "Laptop Dell", Stock: 15, UnitPrice: decimal.NewFromInt(45000), MinStock: 5},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	articles, err := client.FetchStock(context.Background())
	if err != nil {
		t.Fatalf("FetchStock: %v", err)
	}
	if len(articles) != 1 || articles[0].Name != "Laptop Dell" {
		t.Fatalf("articles = %+v", articles)
	}
}

func TestFetchStockServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchStock(context.Background()); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestRecordSaleBusinessFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.APIResult{
			Success: false,
			Message: "Stock insuffisant! Disponible: 3, Demandé: 5",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.RecordSale(context.Background(), models.SaleRequest{ArticleID: 2, Quantity: 5})
	if err != nil {
		t.Fatalf("business failures must not surface as transport errors: %v", err)
	}
	if result.Success {
		t.Fatal("result should carry success=false")
	}
	if result.Message == "" {
		t.Fatal("result should carry the API message verbatim")
	}
}

func TestRecordSaleSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ArticleID != 1 || req.Quantity != 2 {
			t.Fatalf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SaleResult{
			APIResult:  models.APIResult{Success: true, Message: "Vente effectuée avec succès! Total: 90000.00 DA"},
			TotalPrice: decimal.NewFromInt(90000),
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.RecordSale(context.Background(), models.SaleRequest{ArticleID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	if want := decimal.NewFromInt(90000); !result.TotalPrice.Equal(want) {
		t.Fatalf("prix_total = %s, want %s", result.TotalPrice, want)
	}
}

func TestFetchHistoryQueryParams(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2026-03-07" || q.Get("end_date") != "2026-03-14" {
			t.Fatalf("query = %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.HistoryPage{Sales: []models.SaleRecord{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchHistory(context.Background(), "2026-03-07", "2026-03-14"); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
}

func TestFetchHistoryOmitsEmptyBounds(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Fatalf("query should be empty, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.HistoryPage{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchHistory(context.Background(), "", ""); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
}

func TestSyncStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SyncStatus{
			State:    models.SyncOnline,
			Message:  "Connecté",
			LastSync: "2026-03-14 12:00:00",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	status, err := client.SyncStatus(context.Background())
	if err != nil {
		t.Fatalf("SyncStatus: %v", err)
	}
	if status.State != models.SyncOnline || status.LastSync == "" {
		t.Fatalf("status = %+v", status)
	}
}

func TestDeleteArticleNotFoundEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(models.APIResult{Success: false, Message: "Article non trouvé"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.DeleteArticle(context.Background(), 99)
	if err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
	if result.Success || result.Message != "Article non trouvé" {
		t.Fatalf("result = %+v", result)
	}
}
