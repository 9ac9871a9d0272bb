package codec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Format selects a file encoding.
type Format int

const (
	JSON Format = iota
	CBOR
)

// FormatFor picks CBOR for ".cbor" paths and JSON otherwise.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return CBOR
	}
	return JSON
}

func Marshal(f Format, v any) ([]byte, error) {
	if f == CBOR {
		return cbor.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func Unmarshal(f Format, data []byte, v any) error {
	if f == CBOR {
		return cbor.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

func Save(path string, v any) error {
	data, err := Marshal(FormatFor(path), v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Unmarshal(FormatFor(path), data, v)
}
