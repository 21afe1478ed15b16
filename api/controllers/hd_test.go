package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/internal/hdimport"
	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/types"
)

type stubHDService struct {
	gotBatch     []hdimport.OrderLines
	gotExclusion hdimport.ExclusionInput
	batchResult  *hdimport.BatchResult
	err          error
}

func (s *stubHDService) ImportUpload(ctx context.Context, orderNumber string, r io.Reader) (*hdimport.OrderResult, error) {
	return nil, s.err
}

func (s *stubHDService) ImportBatch(ctx context.Context, batch []hdimport.OrderLines) (*hdimport.BatchResult, error) {
	s.gotBatch = batch
	if s.err != nil {
		return nil, s.err
	}
	return s.batchResult, nil
}

func (s *stubHDService) ListExclusions(ctx context.Context, orderNumber string) ([]models.ExclusionRecord, error) {
	return nil, s.err
}

func (s *stubHDService) AddExclusion(ctx context.Context, input hdimport.ExclusionInput) (*models.ExclusionRecord, error) {
	s.gotExclusion = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.ExclusionRecord{
		ID:          uuid.New(),
		OrderNumber: input.OrderNumber,
		LineNumber:  input.LineNumber,
		PartNumber:  input.PartNumber,
		Reason:      input.Reason,
	}, nil
}

func (s *stubHDService) RemoveExclusion(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func TestHDBatchForwardsOrders(t *testing.T) {
	svc := &stubHDService{batchResult: &hdimport.BatchResult{Processed: 1, Replaced: 1}}
	handler := HDBatch(svc, testLogger())

	body := `{"orders":[{"order_number":"HDO-1","lines":[{"part_number":"HD-1","quantity":2}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hd/uploads", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.gotBatch) != 1 || svc.gotBatch[0].OrderNumber != "HDO-1" {
		t.Fatalf("batch not forwarded: %+v", svc.gotBatch)
	}
}

func TestHDBatchRejectsEmptyBody(t *testing.T) {
	handler := HDBatch(&stubHDService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hd/uploads", strings.NewReader(`{"orders":[]}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExclusionCreateParsesReason(t *testing.T) {
	svc := &stubHDService{}
	handler := ExclusionCreate(svc, testLogger())

	body := `{"order_number":"HDO-1","line_number":7,"reason":"Check In"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hd/exclusions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotExclusion.Reason != enums.ExclusionReasonCheckIn {
		t.Fatalf("reason not parsed: %+v", svc.gotExclusion)
	}
}

func TestExclusionCreateRejectsUnknownReason(t *testing.T) {
	handler := ExclusionCreate(&stubHDService{}, testLogger())

	body := `{"order_number":"HDO-1","line_number":7,"reason":"Lost"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hd/exclusions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("wrong code: %s", envelope.Error.Code)
	}
}

func TestExclusionDeleteValidatesUUID(t *testing.T) {
	handler := ExclusionDelete(&stubHDService{}, testLogger())

	r := chi.NewRouter()
	r.Delete("/api/v1/hd/exclusions/{exclusionId}", handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/hd/exclusions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
