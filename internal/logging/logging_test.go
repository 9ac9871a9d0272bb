package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWritesJSONToPlainWriters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("hidden")
	log.Info().Int("shots", 3).Msg("done")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("output is not one JSON line: %q", buf.String())
	}
	if rec["message"] != "done" || rec["shots"] != float64(3) {
		t.Fatalf("record = %v", rec)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatalf("unknown level accepted")
	}
}
