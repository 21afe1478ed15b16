package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInfoCarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithOrderExternalID(ctx, "5551234")
	logg.Info(ctx, "reconcile.start")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("missing request_id: %v", entry)
	}
	if entry["order_external_id"] != "5551234" {
		t.Fatalf("missing order_external_id: %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("missing service field: %v", entry)
	}
}

func TestErrorIncludesStackAndCause(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "ledger.write_failed", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "boom") {
		t.Fatalf("error cause missing: %s", out)
	}
	if !strings.Contains(out, "stack") {
		t.Fatalf("stack missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != zerolog.DebugLevel {
		t.Fatal("DEBUG should parse case-insensitively")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("empty level defaults to info")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("unknown level defaults to info")
	}
}
