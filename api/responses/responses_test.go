package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/types"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["hello"] != "world" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	cases := []struct {
		code   pkgerrors.Code
		status int
	}{
		{pkgerrors.CodeValidation, 400},
		{pkgerrors.CodeNotFound, 404},
		{pkgerrors.CodeConfirmationRequired, 409},
		{pkgerrors.CodeStateConflict, 422},
		{pkgerrors.CodeDependency, 503},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, pkgerrors.New(tc.code, "boom"))
		if rec.Code != tc.status {
			t.Fatalf("code %s: expected %d, got %d", tc.code, tc.status, rec.Code)
		}
	}
}

func TestWriteErrorCarriesDetailsWhenAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeConfirmationRequired, "stock below requested quantity").
		WithDetails(map[string]any{"on_hand": 1})
	WriteError(context.Background(), nil, rec, err)

	var envelope types.ErrorEnvelope
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &envelope); decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConfirmationRequired) {
		t.Fatalf("wrong code: %s", envelope.Error.Code)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["on_hand"] != float64(1) {
		t.Fatalf("details missing: %+v", envelope.Error)
	}
}

func TestWriteErrorWrapsUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)
	if rec.Code != 500 {
		t.Fatalf("untyped errors should map to 500, got %d", rec.Code)
	}
}
