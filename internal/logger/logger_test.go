package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf).Component("render")
	log.Warn().Int("w", 3).Msg("frame rejected")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("%v: %s", err, buf.String())
	}
	if line["c"] != "render" || line["message"] != "frame rejected" || line["level"] != "warn" {
		t.Errorf("line = %v", line)
	}
	if line["w"] != float64(3) {
		t.Errorf("w = %v", line["w"])
	}
}

func TestExtend(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)
	child := log.Extend(log.With().Str("source", "raw"))
	child.Info().Msg("x")
	if !bytes.Contains(buf.Bytes(), []byte(`"source":"raw"`)) {
		t.Errorf("log = %s", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Component("x").Error().Msg("dropped")
}
