package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeConfirmationRequired, http.StatusConflict},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("MetadataFor(%s).HTTPStatus = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOT_A_CODE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("disk on fire")
	err := Wrap(CodeDependency, cause, "ledger write")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Error() != "DEPENDENCY_ERROR: ledger write" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeValidation, "dealer PO required")
	outer := Wrap(CodeDependency, inner, "apply transition")

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeDependency {
		t.Fatalf("outermost code should win, got %s", typed.Code())
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain error should not convert")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeConfirmationRequired, "stock below requested quantity").
		WithDetails(map[string]any{"on_hand": 2, "requested": 5})
	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatal("expected map details")
	}
	if details["on_hand"] != 2 {
		t.Fatalf("unexpected details %v", details)
	}
}
