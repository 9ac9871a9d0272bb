package session

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"seabattle/internal/ai"
	"seabattle/internal/boardio"
	"seabattle/internal/game"
	"seabattle/internal/view"
)

const fleetText = `SSSS~SSS~~
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

func fleet(t *testing.T) *game.Board {
	t.Helper()
	b, err := boardio.Decode(strings.NewReader(fleetText))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := New(fleet(t), Options{Rand: rand.New(rand.NewSource(seed)), Computer: fleet(t)})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewRejectsBadPlayerBoard(t *testing.T) {
	b := game.NewBoard()
	game.PlaceShip(b, 0, 0, 4, true)
	_, err := New(b, Options{Rand: rand.New(rand.NewSource(1))})
	if !errors.Is(err, game.ErrInvalidFleet) {
		t.Fatalf("err = %v, want ErrInvalidFleet", err)
	}
}

func TestNewAutoPlacesComputerDeterministically(t *testing.T) {
	mk := func() *game.Board {
		s, err := New(fleet(t), Options{Rand: rand.New(rand.NewSource(5))})
		if err != nil {
			t.Fatal(err)
		}
		return s.Snapshot(Computer)
	}
	a, b := mk(), mk()
	if *a != *b {
		t.Fatalf("same seed gave different computer boards")
	}
	if err := game.ValidateFleet(a); err != nil {
		t.Fatal(err)
	}
}

func TestTurnRules(t *testing.T) {
	s := newSession(t, 1)
	if s.Turn() != Player {
		t.Fatalf("first turn = %v", s.Turn())
	}

	// hits keep the turn
	for _, p := range []game.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
		o, err := s.PlayerShot(p)
		if err != nil || o != game.ShotHit {
			t.Fatalf("PlayerShot%v = %v, %v", p, o, err)
		}
		if s.Turn() != Player {
			t.Fatalf("turn passed after a hit")
		}
	}
	// repeats and bad input keep the turn
	if o, _ := s.PlayerShot(game.Coord{Row: 0, Col: 0}); o != game.ShotRejected {
		t.Fatalf("repeat = %v", o)
	}
	if _, err := s.PlayerShot(game.Coord{Row: 11, Col: 0}); !errors.Is(err, game.ErrInvalidCoordinate) {
		t.Fatalf("bad coordinate err = %v", err)
	}
	if s.Turn() != Player {
		t.Fatalf("turn passed after a rejected shot")
	}
	// a miss passes it
	if o, _ := s.PlayerShot(game.Coord{Row: 9, Col: 9}); o != game.ShotMiss {
		t.Fatalf("miss = %v", o)
	}
	if s.Turn() != Computer {
		t.Fatalf("turn did not pass after a miss")
	}
	if _, err := s.PlayerShot(game.Coord{Row: 8, Col: 8}); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("out of turn err = %v", err)
	}

	shots, err := s.ComputerTurn()
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) == 0 {
		t.Fatalf("computer took no shots")
	}
	last := shots[len(shots)-1]
	if !s.Over() && last.Outcome != game.ShotMiss {
		t.Fatalf("computer turn ended on %v", last.Outcome)
	}
	for _, sh := range shots[:len(shots)-1] {
		if !sh.Outcome.Struck() {
			t.Fatalf("computer kept shooting after %v", sh.Outcome)
		}
	}
	if !s.Over() && s.Turn() != Player {
		t.Fatalf("turn not back to player")
	}
}

func TestFullGameAgainstTargeter(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		s, err := New(fleet(t), Options{Rand: rng, Logger: &logger})
		if err != nil {
			t.Fatal(err)
		}
		player := ai.New(rng)
		for turns := 0; !s.Over(); turns++ {
			if turns > 400 {
				t.Fatalf("seed %d: game did not end", seed)
			}
			if s.Turn() == Player {
				if _, err := s.AutoShot(Player, player); err != nil {
					t.Fatalf("seed %d: player: %v", seed, err)
				}
				continue
			}
			if _, err := s.ComputerTurn(); err != nil {
				t.Fatalf("seed %d: computer: %v", seed, err)
			}
		}
		winner, ok := s.Winner()
		if !ok {
			t.Fatalf("seed %d: over without a winner", seed)
		}
		if s.LiveShips(winner.Opponent()) != 0 || s.LiveShips(winner) == 0 {
			t.Fatalf("seed %d: winner %v but live ships %d/%d", seed, winner,
				s.LiveShips(Player), s.LiveShips(Computer))
		}
		if s.Shots(Player) > game.Size*game.Size || s.Shots(Computer) > game.Size*game.Size {
			t.Fatalf("seed %d: more shots than cells", seed)
		}
		if _, err := s.PlayerShot(game.Coord{}); !errors.Is(err, ErrGameOver) {
			t.Fatalf("seed %d: shot after game over: %v", seed, err)
		}
		if !strings.Contains(buf.String(), `"message":"game over"`) {
			t.Fatalf("seed %d: no game over log line", seed)
		}
	}
}

func TestViewsHideComputerFleet(t *testing.T) {
	s := newSession(t, 2)
	if _, err := s.PlayerShot(game.Coord{Row: 0, Col: 0}); err != nil {
		t.Fatal(err)
	}
	own, opp := s.Views(Player)
	if own[0][0] != view.Ship {
		t.Fatalf("own view (0,0) = %v", own[0][0])
	}
	if opp[0][0] != view.Struck || opp[0][1] != view.Unknown {
		t.Fatalf("opponent view leaks: %v %v", opp[0][0], opp[0][1])
	}
}
