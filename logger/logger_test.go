package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	cfg := &Config{Level: level, Format: "json"}
	return NewWithWriter(cfg, "test", buf)
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "info")

	log.Info("listener bound", map[string]interface{}{
		FieldAddr: "0.0.0.0:8080",
		FieldPort: 8080,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["message"] != "listener bound" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[FieldAddr] != "0.0.0.0:8080" {
		t.Errorf("addr = %v", entry[FieldAddr])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "warn")

	log.Debug("hidden")
	log.Info("also hidden")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing:\n%s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "info").WithComponent("server")

	log.Info("started")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry[FieldComponent] != "server" {
		t.Errorf("component = %v", entry[FieldComponent])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, "info").WithFields(map[string]interface{}{"request_id": "abc"})

	log.Error("request failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry[FieldRequestID] != "abc" {
		t.Errorf("request_id = %v", entry[FieldRequestID])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "console", NoColor: true}
	log := NewWithWriter(cfg, "launchpad", &buf)

	log.Info("ready")

	out := buf.String()
	if !strings.Contains(out, "[LAU][INF]") {
		t.Errorf("console prefix missing:\n%s", out)
	}
	if !strings.Contains(out, "ready") {
		t.Errorf("message missing:\n%s", out)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Level: "info", Format: "console"}, false},
		{"json format", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFieldsHelper(t *testing.T) {
	f := Fields("addr", ":8080", "port", 8080)
	if f["addr"] != ":8080" || f["port"] != 8080 {
		t.Errorf("Fields() = %v", f)
	}
	if got := Fields("dangling"); len(got) != 0 {
		t.Errorf("odd arguments should be dropped, got %v", got)
	}
}
