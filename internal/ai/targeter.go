package ai

import (
	"errors"
	"fmt"
	"math/rand"

	"seabattle/internal/game"
)

// ErrNoTarget means every cell has already been targeted. A running game
// ends before that happens.
var ErrNoTarget = errors.New("no untargeted cell left")

type Direction uint8

const (
	NoDirection Direction = iota
	North
	South
	East
	West
)

var offsets = map[Direction]game.Coord{
	North: {Row: -1}, South: {Row: 1}, East: {Col: 1}, West: {Col: -1},
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return NoDirection
}

func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "none"
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// HuntState is the directed-search memory kept after a hit.
type HuntState struct {
	Hunting    bool
	Anchor     game.Coord
	Candidates []Direction
	Active     Direction
}

// Revealer exposes only what an opponent may know about a board.
type Revealer interface {
	Revealed(p game.Coord) bool
}

// Targeter picks shots against a single opponent board. It alternates
// between a random search and a hunt around the latest hit.
type Targeter struct {
	rng     *rand.Rand
	pattern *SearchPattern
	hunt    HuntState
	hits    *game.ShotLog
}

type Option func(*Targeter)

// WithSearchPattern makes the search phase prefer cells matching p.
func WithSearchPattern(p *SearchPattern) Option {
	return func(t *Targeter) { t.pattern = p }
}

func New(rng *rand.Rand, opts ...Option) *Targeter {
	t := &Targeter{rng: rng, hits: game.NewShotLog()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// State returns a copy of the hunt memory.
func (t *Targeter) State() HuntState {
	s := t.hunt
	s.Candidates = append([]Direction(nil), t.hunt.Candidates...)
	return s
}

// Next returns the coordinate to fire at. shots is the targeter's own shot
// log; seen, when non nil, lets it skip cells already revealed. The result
// is never a coordinate present in shots.
func (t *Targeter) Next(shots *game.ShotLog, seen Revealer) (game.Coord, error) {
	if t.hunt.Hunting {
		if p, ok := t.huntTarget(shots, seen); ok {
			return p, nil
		}
		// every direction is spent for this anchor
		t.reset()
	}
	return t.searchTarget(shots, seen)
}

// Observe feeds back the outcome of firing at p.
func (t *Targeter) Observe(p game.Coord, o game.Outcome) {
	switch o {
	case game.ShotSunk:
		t.hits.Add(p)
		t.reset()
	case game.ShotHit:
		t.hits.Add(p)
		if !t.hunt.Hunting {
			t.hunt = HuntState{Hunting: true, Anchor: p, Candidates: t.shuffled()}
			return
		}
		t.hunt.Anchor = p
		if d := t.hunt.Active; d != NoDirection {
			t.hunt.Candidates = []Direction{d, d.Opposite()}
		}
		t.hunt.Active = NoDirection
	case game.ShotMiss:
		if t.hunt.Hunting && t.hunt.Active != NoDirection {
			t.hunt.Candidates = without(t.hunt.Candidates, t.hunt.Active)
			t.hunt.Active = NoDirection
		}
	}
}

func (t *Targeter) reset() { t.hunt = HuntState{} }

func (t *Targeter) shuffled() []Direction {
	dirs := []Direction{North, South, East, West}
	t.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	return dirs
}

// huntTarget steps from the anchor along each candidate direction, passing
// over cells already known to be hits, and takes the first untargeted cell.
func (t *Targeter) huntTarget(shots *game.ShotLog, seen Revealer) (game.Coord, bool) {
	for _, d := range t.hunt.Candidates {
		off := offsets[d]
		p := game.Coord{Row: t.hunt.Anchor.Row + off.Row, Col: t.hunt.Anchor.Col + off.Col}
		for game.InBounds(p.Row, p.Col) && t.hits.Has(p) {
			p = game.Coord{Row: p.Row + off.Row, Col: p.Col + off.Col}
		}
		if !game.InBounds(p.Row, p.Col) || shots.Has(p) || (seen != nil && seen.Revealed(p)) {
			continue
		}
		t.hunt.Active = d
		return p, true
	}
	return game.Coord{}, false
}

func (t *Targeter) searchTarget(shots *game.ShotLog, seen Revealer) (game.Coord, error) {
	var preferred, open, untargeted []game.Coord
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			p := game.Coord{Row: r, Col: c}
			if shots.Has(p) {
				continue
			}
			untargeted = append(untargeted, p)
			if seen != nil && seen.Revealed(p) {
				continue
			}
			open = append(open, p)
			if t.pattern != nil && t.pattern.Match(PatternEnv{Row: r, Col: c, Shots: shots.Len()}) {
				preferred = append(preferred, p)
			}
		}
	}
	for _, pool := range [][]game.Coord{preferred, open, untargeted} {
		if len(pool) > 0 {
			return pool[t.rng.Intn(len(pool))], nil
		}
	}
	return game.Coord{}, ErrNoTarget
}

func without(dirs []Direction, d Direction) []Direction {
	out := make([]Direction, 0, len(dirs))
	for _, x := range dirs {
		if x != d {
			out = append(out, x)
		}
	}
	return out
}
