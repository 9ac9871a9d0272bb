// Package boardio reads and writes boards in the ten-line text format:
// one line per row, one glyph per cell.
package boardio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"seabattle/internal/game"
)

var ErrMalformedBoard = errors.New("malformed board source")

// setupGlyphs may appear in a board being loaded for a new game.
func setupGlyphs(g byte) bool { return g == '~' || g == 'S' }

// stateGlyphs may appear in a saved board of any state.
func stateGlyphs(g byte) bool {
	_, ok := game.CellFromGlyph(g)
	return ok
}

// Decode reads a setup board: exactly ten lines of ten '~' or 'S'.
// Surrounding whitespace on each line is ignored.
func Decode(r io.Reader) (*game.Board, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	// a valid line is ten glyphs plus padding; anything far longer is malformed
	sc.Buffer(make([]byte, 0, 256), 4096)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if len(lines) > game.Size {
			return nil, fmt.Errorf("%w: more than %d lines", ErrMalformedBoard, game.Size)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBoard, err)
		}
		return nil, err
	}
	return parse(lines, setupGlyphs)
}

// ParseLines decodes rows produced by Lines. Every glyph is accepted.
func ParseLines(lines []string) (*game.Board, error) { return parse(lines, stateGlyphs) }

func parse(lines []string, allowed func(byte) bool) (*game.Board, error) {
	if len(lines) != game.Size {
		return nil, fmt.Errorf("%w: %d lines, want %d", ErrMalformedBoard, len(lines), game.Size)
	}
	b := game.NewBoard()
	for r, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != game.Size {
			return nil, fmt.Errorf("%w: line %d has %d characters, want %d",
				ErrMalformedBoard, r+1, len(line), game.Size)
		}
		for c := 0; c < game.Size; c++ {
			g := line[c]
			if !allowed(g) {
				return nil, fmt.Errorf("%w: line %d column %d: unexpected %q",
					ErrMalformedBoard, r+1, c+1, g)
			}
			v, _ := game.CellFromGlyph(g)
			b.Set(r, c, v)
		}
	}
	return b, nil
}

// Lines renders b as ten glyph rows.
func Lines(b *game.Board) []string {
	out := make([]string, game.Size)
	row := make([]byte, game.Size)
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			row[c] = b.Get(r, c).Glyph()
		}
		out[r] = string(row)
	}
	return out
}

// Encode writes b with the full glyph set, one row per line.
func Encode(w io.Writer, b *game.Board) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(b) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func Load(path string) (*game.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

func Save(path string, b *game.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, b); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}
