package boardio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seabattle/internal/game"
)

const validBoard = `SSSS~SSS~~
~~~~~~~~~~
SSS~SS~SS~
~~~~~~~~~~
SS~S~S~S~S
~~~~~~~~~~
~~~~~~~~~~
~~~~~~~~~~
~~~~~~~~~~
~~~~~~~~~~
`

func TestDecodeValid(t *testing.T) {
	b, err := Decode(strings.NewReader(validBoard))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := game.ValidateFleet(b); err != nil {
		t.Fatalf("ValidateFleet: %v", err)
	}
	if got := b.Get(0, 3); got != game.Occupied {
		t.Fatalf("cell (0,3) = %v", got)
	}
}

func TestDecodeToleratesCRLF(t *testing.T) {
	src := strings.ReplaceAll(validBoard, "\n", "\r\n")
	if _, err := Decode(strings.NewReader(src)); err != nil {
		t.Fatalf("Decode CRLF: %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(validBoard, "\n"), "\n")
	tests := []struct {
		name string
		src  string
	}{
		{"nine lines", strings.Join(lines[:9], "\n") + "\n"},
		{"eleven lines", validBoard + "~~~~~~~~~~\n"},
		{"short line", strings.Replace(validBoard, "~~~~~~~~~~\n", "~~~~~~~~~\n", 1)},
		{"long line", strings.Replace(validBoard, "~~~~~~~~~~\n", "~~~~~~~~~~~\n", 1)},
		{"hit glyph", strings.Replace(validBoard, "SSSS", "XSSS", 1)},
		{"unknown glyph", strings.Replace(validBoard, "SSSS", "#SSS", 1)},
		{"empty", ""},
		{"huge line", strings.Repeat("~", 70000) + "\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Decode(strings.NewReader(tc.src))
			if !errors.Is(err, ErrMalformedBoard) {
				t.Fatalf("err = %v, want ErrMalformedBoard", err)
			}
			if b != nil {
				t.Fatalf("malformed source produced a board")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b, err := Decode(strings.NewReader(validBoard))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "fleet.txt")
	if err := Save(path, b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *b {
		t.Fatalf("round trip changed the board")
	}
}

func TestSaveWritesPlayState(t *testing.T) {
	b := game.NewBoard()
	b.Set(0, 0, game.Hit)
	b.Set(0, 1, game.Miss)
	b.Set(0, 2, game.Occupied)
	path := filepath.Join(t.TempDir(), "state.txt")
	if err := Save(path, b); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "XOS~~~~~~~\n") {
		t.Fatalf("saved first row = %q", strings.SplitN(string(data), "\n", 2)[0])
	}
	// a play-state file is not a valid setup source
	if _, err := Load(path); !errors.Is(err, ErrMalformedBoard) {
		t.Fatalf("Load of play state: err = %v, want ErrMalformedBoard", err)
	}
	parsed, err := ParseLines(Lines(b))
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if *parsed != *b {
		t.Fatalf("ParseLines(Lines(b)) differs")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}
}
