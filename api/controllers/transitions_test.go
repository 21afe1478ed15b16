package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ridgelinemoto/dealerops-backend/internal/transition"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
	"github.com/ridgelinemoto/dealerops-backend/pkg/types"
)

type stubTransitionService struct {
	gotInput transition.ApplyInput
	result   *transition.ApplyResult
	err      error
}

func (s *stubTransitionService) ApplyTransition(ctx context.Context, input transition.ApplyInput) (*transition.ApplyResult, error) {
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestApplyTransitionDecodesAndForwards(t *testing.T) {
	svc := &stubTransitionService{result: &transition.ApplyResult{
		Status:         enums.ProgressStatusPicked,
		RecordsWritten: 1,
	}}
	handler := ApplyTransition(svc, testLogger())

	body := `{
		"order_external_id": "1001",
		"sku": "A1",
		"line_quantity": 3,
		"current_status": "to pick",
		"target_status": "picked",
		"confirm_short_stock": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotInput.Target != enums.ProgressStatusPicked {
		t.Fatalf("lowercase target should parse to canonical: %+v", svc.gotInput)
	}
	if svc.gotInput.CurrentStatus != enums.ProgressStatusToPick {
		t.Fatalf("current status should parse: %+v", svc.gotInput)
	}
	if !svc.gotInput.ConfirmShortStock {
		t.Fatalf("confirmation flag dropped: %+v", svc.gotInput)
	}
}

func TestApplyTransitionRejectsUnknownTarget(t *testing.T) {
	svc := &stubTransitionService{}
	handler := ApplyTransition(svc, testLogger())

	body := `{"order_external_id":"1001","sku":"A1","target_status":"Shipped"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotInput.OrderExternalID != "" {
		t.Fatal("service must not be called for unknown target")
	}
}

func TestApplyTransitionRequiresBodyFields(t *testing.T) {
	handler := ApplyTransition(&stubTransitionService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(`{"sku":"A1"}`))
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
		t.Fatalf("expected validation error, got %s", envelope.Error.Code)
	}
}

func TestApplyTransitionMapsConfirmationErrors(t *testing.T) {
	svc := &stubTransitionService{err: pkgerrors.New(pkgerrors.CodeConfirmationRequired, "stock below requested quantity").
		WithDetails(map[string]any{"on_hand": 1, "requested": 3})}
	handler := ApplyTransition(svc, testLogger())

	body := `{"order_external_id":"1001","sku":"A1","line_quantity":3,"target_status":"Picked"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/transition", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConfirmationRequired) {
		t.Fatalf("wrong code: %s", envelope.Error.Code)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["on_hand"] != float64(1) {
		t.Fatalf("details should survive to the response: %+v", envelope.Error)
	}
}
