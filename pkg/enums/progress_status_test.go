package enums

import "testing"

func TestParseProgressStatusNormalizesCase(t *testing.T) {
	tests := []struct {
		raw  string
		want ProgressStatus
	}{
		{"To Pick", ProgressStatusToPick},
		{"to pick", ProgressStatusToPick},
		{"TO PICK", ProgressStatusToPick},
		{" to dispatch ", ProgressStatusToDispatch},
		{"ordered", ProgressStatusOrdered},
		{"Picking", ProgressStatusPicking},
		{"fulfilled", ProgressStatusFulfilled},
	}
	for _, tc := range tests {
		got, err := ParseProgressStatus(tc.raw)
		if err != nil {
			t.Fatalf("ParseProgressStatus(%q) error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseProgressStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseProgressStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "dispatched", "picked up"} {
		if _, err := ParseProgressStatus(raw); err == nil {
			t.Fatalf("ParseProgressStatus(%q) should fail", raw)
		}
	}
}

func TestProgressStatusEquals(t *testing.T) {
	if !ProgressStatusToOrder.Equals("to order") {
		t.Fatal("Equals should ignore case")
	}
	if ProgressStatusToOrder.Equals(ProgressStatusOrdered) {
		t.Fatal("distinct statuses must not compare equal")
	}
}

func TestProgressStatusIsValid(t *testing.T) {
	if !ProgressStatusPicked.IsValid() {
		t.Fatal("canonical value should be valid")
	}
	if ProgressStatus("picked").IsValid() {
		t.Fatal("IsValid is strict about canonical casing")
	}
}
