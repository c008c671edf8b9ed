package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)
	logger.hostname = "qs-01"
	logger.pid = 42
	logger.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	logger.Log(ParameterEvent{
		Operation:   "update",
		ClientIP:    "192.168.1.1",
		EquipmentID: 1,
		MotorNumber: 3,
		PLC:         5,
		Success:     true,
	})

	want := `<133>1 2024-03-01T09:00:00.000Z qs-01 query-server 42 parameter ` +
		`[action@32473 operation="update" result="success"]` +
		`[client@32473 ip="192.168.1.1"]` +
		`[plc@32473 model="5"]` +
		`[subject@32473 equipment="1" motor="3"] ` +
		"192.168.1.1 updated parameters of motor 1/3 under plc model 5\n"
	if got := buf.String(); got != want {
		t.Errorf("Log() =\n%q\nwant\n%q", got, want)
	}
}

func TestLoggerEmptyHostname(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)
	logger.hostname = ""

	logger.Log(PLCLogEvent{ClientIP: "10.0.0.1", Success: true})

	if !strings.Contains(buf.String(), " - query-server ") {
		t.Errorf("expected nil hostname marker, got %q", buf.String())
	}
}

func TestParameterEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   ParameterEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful create",
			event: ParameterEvent{
				Operation:   "create",
				ClientIP:    "10.0.0.1",
				EquipmentID: 2,
				MotorNumber: 1,
				PLC:         7,
				Success:     true,
			},
			wantMsg: "10.0.0.1 created parameters of motor 2/1 under plc model 7",
			wantSev: SeverityNotice,
		},
		{
			name: "delete by model",
			event: ParameterEvent{
				Operation: "delete",
				ClientIP:  "10.0.0.1",
				PLC:       7,
				Success:   true,
			},
			wantMsg: "10.0.0.1 deleted parameters of plc model 7",
			wantSev: SeverityNotice,
		},
		{
			name: "rejected create",
			event: ParameterEvent{
				Operation:    "create",
				ClientIP:     "10.0.0.1",
				EquipmentID:  2,
				MotorNumber:  1,
				PLC:          7,
				ErrorMessage: "plc model already exists",
			},
			wantMsg: "10.0.0.1 tried to create parameters of motor 2/1 under plc model 7: plc model already exists",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != FacilityLocal0 {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), FacilityLocal0)
			}
			if tt.event.MessageID() != "parameter" {
				t.Errorf("MessageID() = %v, want parameter", tt.event.MessageID())
			}
		})
	}
}

func TestFDCConfigEvent(t *testing.T) {
	event := FDCConfigEvent{ClientIP: "10.0.0.1", Host: "broker", Topic: "fdc", Success: true}

	if !strings.Contains(event.Message(), "host broker, topic fdc") {
		t.Errorf("Message() = %q", event.Message())
	}
	sd := event.StructuredData()
	if sd[SDIDSubject]["host"] != "broker" {
		t.Errorf("StructuredData subject.host = %v, want broker", sd[SDIDSubject]["host"])
	}

	event.Success = false
	event.ErrorMessage = "invalid url"
	if !strings.HasSuffix(event.Message(), "tried to update the fdc configuration: invalid url") {
		t.Errorf("Message() = %q", event.Message())
	}
	if event.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", event.Severity(), SeverityWarning)
	}
}

func TestPLCLogEvent(t *testing.T) {
	event := PLCLogEvent{
		ClientIP:  "10.0.0.1",
		Timestamp: "2024-01-01T00:00:00",
		Inserted:  4,
		Skipped:   1,
		Success:   true,
	}

	if event.Message() != "10.0.0.1 logged 4 plc values at 2024-01-01T00:00:00 (1 skipped)" {
		t.Errorf("Message() = %q", event.Message())
	}
	if event.Facility() != FacilityUser {
		t.Errorf("Facility() = %v, want %v", event.Facility(), FacilityUser)
	}
	if event.StructuredData()[SDIDPLC]["inserted"] != "4" {
		t.Errorf("StructuredData plc.inserted = %v, want 4", event.StructuredData()[SDIDPLC]["inserted"])
	}
}

func TestStructuredData(t *testing.T) {
	event := ParameterEvent{Operation: "delete", ClientIP: "10.0.0.1", PLC: 9, Success: true}

	sd := event.StructuredData()

	if _, ok := sd[SDIDSubject]; ok {
		t.Error("delete by model should not carry a subject element")
	}
	if sd[SDIDPLC]["model"] != "9" {
		t.Errorf("StructuredData plc.model = %v, want 9", sd[SDIDPLC]["model"])
	}
	if sd[SDIDClient]["ip"] != "10.0.0.1" {
		t.Errorf("StructuredData client.ip = %v, want '10.0.0.1'", sd[SDIDClient]["ip"])
	}
	if sd[SDIDAction]["result"] != "success" {
		t.Errorf("StructuredData action.result = %v, want 'success'", sd[SDIDAction]["result"])
	}
}

func TestFormatStructuredDataOrder(t *testing.T) {
	sd := map[string]map[string]string{
		"b@1": {"z": "1", "a": "2"},
		"a@1": {"k": "v"},
	}
	want := `[a@1 k="v"][b@1 a="2" z="1"]`
	for i := 0; i < 10; i++ {
		if got := formatStructuredData(sd); got != want {
			t.Fatalf("formatStructuredData() = %q, want %q", got, want)
		}
	}
	if formatStructuredData(nil) != "" {
		t.Error("expected empty string for no structured data")
	}
}

func TestAuditToggle(t *testing.T) {
	// Save original state
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
		{`all"special\chars]`, `"all\"special\\chars\]"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
