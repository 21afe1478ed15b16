package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ridgelinemoto/dealerops-backend/internal/hdimport"
	"github.com/ridgelinemoto/dealerops-backend/internal/reconcile"
	"github.com/ridgelinemoto/dealerops-backend/internal/transition"
	"github.com/ridgelinemoto/dealerops-backend/pkg/config"
	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
)

type stubReconcile struct{}

func (stubReconcile) Board(ctx context.Context) (*reconcile.Board, error) {
	return &reconcile.Board{}, nil
}

func (stubReconcile) Picklist(ctx context.Context) ([]reconcile.OrderGroup, error) {
	return nil, nil
}

type stubTransition struct{}

func (stubTransition) ApplyTransition(ctx context.Context, input transition.ApplyInput) (*transition.ApplyResult, error) {
	return &transition.ApplyResult{RecordsWritten: 1}, nil
}

type stubHD struct{}

func (stubHD) ImportUpload(ctx context.Context, orderNumber string, r io.Reader) (*hdimport.OrderResult, error) {
	return &hdimport.OrderResult{OrderNumber: orderNumber}, nil
}

func (stubHD) ImportBatch(ctx context.Context, batch []hdimport.OrderLines) (*hdimport.BatchResult, error) {
	return &hdimport.BatchResult{}, nil
}

func (stubHD) ListExclusions(ctx context.Context, orderNumber string) ([]models.ExclusionRecord, error) {
	return nil, nil
}

func (stubHD) AddExclusion(ctx context.Context, input hdimport.ExclusionInput) (*models.ExclusionRecord, error) {
	return &models.ExclusionRecord{}, nil
}

func (stubHD) RemoveExclusion(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubStockRepo struct{}

func (stubStockRepo) GetStock(ctx context.Context, partNumbers []string) ([]models.StockRecord, error) {
	return nil, nil
}

func (stubStockRepo) FindByPartNumber(ctx context.Context, partNumber string) (*models.StockRecord, error) {
	return &models.StockRecord{PartNumber: partNumber}, nil
}

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(cfg, logg, nil, nil, prometheus.NewRegistry(),
		stubReconcile{}, stubTransition{}, stubHD{}, stubStockRepo{})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/board", http.StatusOK},
		{http.MethodGet, "/api/v1/picklist", http.StatusOK},
		{http.MethodGet, "/api/v1/stock/HD-1001", http.StatusOK},
		{http.MethodGet, "/api/v1/hd/exclusions/", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, rec.Code)
		}
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id header should always be set")
	}
}
