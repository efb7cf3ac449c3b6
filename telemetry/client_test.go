package telemetry

import (
	"encoding/json"
	"testing"
)

func TestSessionJSON(t *testing.T) {
	rawJSON := "{\"id\":\"d4kdisifn76c73dkrju0\",\"Session\":{\"Name\":\"Club Night\",\"Date\":\"2026-03-14T19:02:11.504207-07:00\",\"StartTime\":\"0001-01-01T00:00:00Z\",\"Probes\":[{\"Name\":\"Trigger\",\"Position\":1},{\"Name\":\"Duty\",\"Position\":2}],\"Stages\":null,\"Events\":null,\"Data\":null},\"UploadedAt\":\"2026-03-15T02:02:11.60698014Z\"}"
	var s session
	err := json.Unmarshal([]byte(rawJSON), &s)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if s.Session.Name != "Club Night" {
		t.Errorf("expected=%q, got=%q", "Club Night", s.Session.Name)
	}
}

func TestParseProbes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{"default", DefaultProbes, 2, false},
		{"single", "1=Trigger", 1, false},
		{"spaces", " 1 = Trigger , 2 = Duty ", 2, false},
		{"missing name", "1", 0, true},
		{"bad position", "x=Trigger", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probes, err := ParseProbes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(probes) != tt.wantLen {
				t.Errorf("probes: expected=%d, got=%d", tt.wantLen, len(probes))
			}
		})
	}
}
