package syncsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gestock/internal/config"
	"gestock/internal/domain/models"
)

type fakeStore struct {
	articles []models.Article
	sales    []models.SaleRecord
}

func (f *fakeStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	return f.articles, nil
}
func (f *fakeStore) InsertArticle(ctx context.Context, a models.Article) error { return nil }
func (f *fakeStore) UpdateArticle(ctx context.Context, a models.Article) (bool, error) {
	return false, nil
}
func (f *fakeStore) DeleteArticle(ctx context.Context, id int) (bool, error) { return false, nil }
func (f *fakeStore) AppendSale(ctx context.Context, r models.SaleRecord) error {
	return nil
}
func (f *fakeStore) ListSales(ctx context.Context, start, end *time.Time) ([]models.SaleRecord, error) {
	return f.sales, nil
}
func (f *fakeStore) ReplaceArticles(ctx context.Context, articles []models.Article) error {
	f.articles = articles
	return nil
}
func (f *fakeStore) ReplaceSales(ctx context.Context, records []models.SaleRecord) error {
	f.sales = records
	return nil
}

type fakeMirror struct {
	sheets     map[string][][]interface{}
	replaceErr error
	readErr    error
}

func (m *fakeMirror) ReplaceSheet(ctx context.Context, name string, rows [][]interface{}) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if m.sheets == nil {
		m.sheets = make(map[string][][]interface{})
	}
	m.sheets[name] = rows
	return nil
}

func (m *fakeMirror) ReadSheet(ctx context.Context, name string) ([][]interface{}, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.sheets[name], nil
}

func newTestService(store *fakeStore, mirror *fakeMirror, online bool) *Service {
	svc := NewService(store, mirror, config.SyncConfig{ProbeAddr: "127.0.0.1:1", ProbeTimeout: time.Millisecond}, nil)
	svc.probe = func() bool { return online }
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local) }
	return svc
}

func seededStore() *fakeStore {
	return &fakeStore{
		articles: []models.Article{
			{ID: 1, Name: "Laptop Dell", Stock: 15, UnitPrice: decimal.NewFromInt(45000), MinStock: 5},
		},
		sales: []models.SaleRecord{
			{Date: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local), Reference: "ref-1", ArticleName: "Laptop Dell", Quantity: 2, TotalPrice: decimal.NewFromInt(90000)},
		},
	}
}

func TestSyncNowWritesBothSheets(t *testing.T) {
	mirror := &fakeMirror{}
	svc := newTestService(seededStore(), mirror, true)

	result := svc.SyncNow(context.Background())
	if !result.Success {
		t.Fatalf("sync failed: %s", result.Message)
	}

	stock := mirror.sheets["stock"]
	if len(stock) != 2 {
		t.Fatalf("stock sheet has %d rows, want header + 1", len(stock))
	}
	if stock[0][1] != "nom_article" {
		t.Fatalf("unexpected stock header: %+v", stock[0])
	}

	hist := mirror.sheets["historique"]
	if len(hist) != 2 {
		t.Fatalf("historique sheet has %d rows, want header + 1", len(hist))
	}

	status := svc.Status()
	if status.State != models.SyncOnline {
		t.Fatalf("state after sync = %s, want online", status.State)
	}
	if status.LastSync != "2026-03-14 12:00:00" {
		t.Fatalf("lastSync = %q", status.LastSync)
	}
}

func TestSyncNowOffline(t *testing.T) {
	svc := newTestService(seededStore(), &fakeMirror{}, false)

	result := svc.SyncNow(context.Background())
	if result.Success {
		t.Fatal("sync should fail offline")
	}
	if result.Message != "Pas de connexion Internet" {
		t.Fatalf("message = %q", result.Message)
	}
	if status := svc.Status(); status.State != models.SyncOffline {
		t.Fatalf("state = %s, want offline", status.State)
	}
}

func TestSyncNowRefusesEmptyStock(t *testing.T) {
	store := &fakeStore{}
	mirror := &fakeMirror{}
	svc := newTestService(store, mirror, true)

	result := svc.SyncNow(context.Background())
	if result.Success {
		t.Fatal("empty stock must not sync")
	}
	if len(mirror.sheets) != 0 {
		t.Fatal("no sheet should be written for an empty stock")
	}
}

func TestSyncNowMirrorFailure(t *testing.T) {
	mirror := &fakeMirror{replaceErr: errors.New("quota exceeded")}
	svc := newTestService(seededStore(), mirror, true)

	result := svc.SyncNow(context.Background())
	if result.Success {
		t.Fatal("sync should surface mirror failure")
	}
	// The machine is still reachable, only the sync failed.
	if status := svc.Status(); status.State != models.SyncOnline {
		t.Fatalf("state = %s, want online after failed sync", status.State)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	mirror := &fakeMirror{sheets: map[string][][]interface{}{
		"stock": {
			{"id", "nom_article", "stock", "prix", "min_stock"},
			{"1", "Laptop Dell", "15", "45000", "5"},
			{"2", "Souris Logitech", "3", "1500.50", "10"},
		},
		"historique": {
			{"date", "reference", "nom_article", "quantite", "prix_total"},
			{"2026-03-10 09:30:00", "ref-1", "Laptop Dell", "2", "90000"},
			{"not a date", "ref-2", "broken", "1", "1"},
		},
	}}
	store := &fakeStore{}
	svc := newTestService(store, mirror, true)

	result := svc.Restore(context.Background())
	if !result.Success {
		t.Fatalf("restore failed: %s", result.Message)
	}

	if len(store.articles) != 2 {
		t.Fatalf("restored %d articles, want 2", len(store.articles))
	}
	if want := decimal.RequireFromString("1500.50"); !store.articles[1].UnitPrice.Equal(want) {
		t.Fatalf("restored price = %s, want %s", store.articles[1].UnitPrice, want)
	}

	// Rows with unparsable dates are skipped.
	if len(store.sales) != 1 || store.sales[0].Reference != "ref-1" {
		t.Fatalf("restored sales = %+v", store.sales)
	}

	if status := svc.Status(); status.State != models.SyncRestored {
		t.Fatalf("state = %s, want restored", status.State)
	}

	svc.AcknowledgeRestore()
	if status := svc.Status(); status.State != models.SyncOnline {
		t.Fatalf("state after acknowledge = %s, want online", status.State)
	}
}

func TestRestoreEmptyCloud(t *testing.T) {
	mirror := &fakeMirror{sheets: map[string][][]interface{}{
		"stock": {{"id", "nom_article", "stock", "prix", "min_stock"}},
	}}
	svc := newTestService(&fakeStore{}, mirror, true)

	result := svc.Restore(context.Background())
	if result.Success {
		t.Fatal("restore should fail when the cloud stock sheet is empty")
	}
}

func TestStatusProbeTransitions(t *testing.T) {
	svc := newTestService(seededStore(), &fakeMirror{}, false)

	if status := svc.Status(); status.State != models.SyncOffline || status.Message != "Hors ligne" {
		t.Fatalf("status = %+v, want offline", status)
	}

	svc.probe = func() bool { return true }
	if status := svc.Status(); status.State != models.SyncOnline || status.Message != "Connecté" {
		t.Fatalf("status = %+v, want online", status)
	}
}

func TestSyncNowWithoutMirror(t *testing.T) {
	svc := NewService(seededStore(), nil, config.SyncConfig{ProbeAddr: "127.0.0.1:1", ProbeTimeout: time.Millisecond}, nil)

	if result := svc.SyncNow(context.Background()); result.Success {
		t.Fatal("sync must fail when cloud sync is not configured")
	}
}
