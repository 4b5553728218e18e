package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseFlexDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{in: "2026-02-19", want: time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)},
		{in: "2026-02-19T14:30:00Z", want: time.Date(2026, 2, 19, 14, 30, 0, 0, time.UTC)},
		{in: "2026-02-19T14:30:00", want: time.Date(2026, 2, 19, 14, 30, 0, 0, time.UTC)},
		{in: "", wantNil: true},
		{in: "   ", wantNil: true},
		{in: "19/02/2026", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseFlexDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFlexDate(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFlexDate(%q): %v", tc.in, err)
			continue
		}
		if tc.wantNil {
			if got != nil {
				t.Errorf("ParseFlexDate(%q) = %v, want nil", tc.in, got)
			}
			continue
		}
		if got == nil || !got.Equal(tc.want) {
			t.Errorf("ParseFlexDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFlexDateUnmarshalJSON(t *testing.T) {
	var req CreateTaskRequest
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":"2026-02-19"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := req.DueDate.Ptr(); got == nil || !got.Equal(time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due date = %v", got)
	}

	var none CreateTaskRequest
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":null}`), &none); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if none.DueDate.Ptr() != nil {
		t.Error("null due date should parse as nil")
	}

	var bad CreateTaskRequest
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":"bogus"}`), &bad); err == nil {
		t.Error("expected error for unparseable date")
	}
}
