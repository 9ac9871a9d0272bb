// Package session runs one game between a player and the computer: two
// boards, two shot logs, the turn order and the computer's targeter.
package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"seabattle/internal/ai"
	"seabattle/internal/game"
	"seabattle/internal/view"
)

var (
	ErrOutOfTurn = errors.New("not this side's turn")
	ErrGameOver  = errors.New("game is over")
)

type Side uint8

const (
	Player Side = iota
	Computer
)

func (s Side) Opponent() Side { return 1 - s }

func (s Side) String() string {
	if s == Computer {
		return "computer"
	}
	return "player"
}

type Options struct {
	Rand              *rand.Rand
	PlacementAttempts int
	PlacementRuns     int
	SearchPattern     *ai.SearchPattern
	Logger            *zerolog.Logger
	// Computer, when set, is used instead of an auto-placed board.
	Computer *game.Board
	First    Side
}

// Shot is one resolved shot.
type Shot struct {
	Coord   game.Coord
	Outcome game.Outcome
}

type Session struct {
	boards [2]*game.Board   // by owner
	shots  [2]*game.ShotLog // by shooter
	ai     *ai.Targeter
	turn   Side
	log    zerolog.Logger
}

// New starts a game over the player's board. The board must hold the
// canonical fleet; the session takes ownership of it.
func New(player *game.Board, opts Options) (*Session, error) {
	if err := game.ValidateFleet(player); err != nil {
		return nil, fmt.Errorf("player board: %w", err)
	}
	if opts.Rand == nil {
		return nil, errors.New("session needs a random source")
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	computer := opts.Computer
	if computer != nil {
		if err := game.ValidateFleet(computer); err != nil {
			return nil, fmt.Errorf("computer board: %w", err)
		}
	} else {
		var err error
		if computer, err = game.PlaceFleet(opts.Rand, game.Fleet, opts.PlacementAttempts, opts.PlacementRuns); err != nil {
			return nil, err
		}
	}

	var aiOpts []ai.Option
	if opts.SearchPattern != nil {
		aiOpts = append(aiOpts, ai.WithSearchPattern(opts.SearchPattern))
	}
	s := &Session{
		boards: [2]*game.Board{player, computer},
		shots:  [2]*game.ShotLog{game.NewShotLog(), game.NewShotLog()},
		ai:     ai.New(opts.Rand, aiOpts...),
		turn:   opts.First,
		log:    log,
	}
	s.log.Debug().Stringer("first", s.turn).Msg("session started")
	return s, nil
}

func (s *Session) Turn() Side { return s.turn }

// Over reports whether either fleet is gone.
func (s *Session) Over() bool {
	return s.boards[Player].CountLiveShips() == 0 || s.boards[Computer].CountLiveShips() == 0
}

// Winner returns the side whose opponent has no ships left.
func (s *Session) Winner() (Side, bool) {
	switch {
	case s.boards[Computer].CountLiveShips() == 0:
		return Player, true
	case s.boards[Player].CountLiveShips() == 0:
		return Computer, true
	}
	return 0, false
}

// LiveShips counts the ships still afloat on owner's board.
func (s *Session) LiveShips(owner Side) int { return s.boards[owner].CountLiveShips() }

// Shots returns how many explicit targets shooter has fired at.
func (s *Session) Shots(shooter Side) int { return s.shots[shooter].Len() }

// Snapshot returns a copy of owner's board.
func (s *Session) Snapshot(owner Side) *game.Board { return s.boards[owner].Clone() }

// Views returns viewer's own board in full and the opponent board under fog of war.
func (s *Session) Views(viewer Side) (own, opp view.Grid) {
	return view.Own(s.boards[viewer]), view.Opponent(s.boards[viewer.Opponent()])
}

// PlayerShot fires the player's shot at p on the computer's board.
func (s *Session) PlayerShot(p game.Coord) (game.Outcome, error) {
	return s.fire(Player, p)
}

// ComputerShot lets the computer's targeter take one shot.
func (s *Session) ComputerShot() (Shot, error) {
	return s.AutoShot(Computer, s.ai)
}

// ComputerTurn keeps firing computer shots until the turn passes or the
// game ends.
func (s *Session) ComputerTurn() ([]Shot, error) {
	var shots []Shot
	for s.turn == Computer && !s.Over() {
		if len(shots) >= game.Size*game.Size {
			return shots, ai.ErrNoTarget
		}
		shot, err := s.ComputerShot()
		if err != nil {
			return shots, err
		}
		shots = append(shots, shot)
	}
	return shots, nil
}

// AutoShot fires one shot for shooter chosen by t. The targeter only sees
// the shooter's own log and the revealed cells of the target board.
func (s *Session) AutoShot(shooter Side, t *ai.Targeter) (Shot, error) {
	if err := s.ready(shooter); err != nil {
		return Shot{}, err
	}
	p, err := t.Next(s.shots[shooter], s.boards[shooter.Opponent()])
	if err != nil {
		return Shot{}, err
	}
	o, err := s.fire(shooter, p)
	if err != nil {
		return Shot{}, err
	}
	t.Observe(p, o)
	return Shot{Coord: p, Outcome: o}, nil
}

func (s *Session) ready(shooter Side) error {
	if s.Over() {
		return ErrGameOver
	}
	if s.turn != shooter {
		return fmt.Errorf("%w: %s", ErrOutOfTurn, shooter)
	}
	return nil
}

func (s *Session) fire(shooter Side, p game.Coord) (game.Outcome, error) {
	if err := s.ready(shooter); err != nil {
		return game.ShotRejected, err
	}
	target := shooter.Opponent()
	o, err := game.Shoot(s.boards[target], s.shots[shooter], p.Row, p.Col)
	if err != nil {
		return o, err
	}
	s.log.Debug().
		Stringer("shooter", shooter).
		Str("at", view.CoordLabel(p)).
		Stringer("outcome", o).
		Msg("shot resolved")

	switch o {
	case game.ShotMiss:
		s.turn = target
		s.log.Debug().Stringer("turn", s.turn).Msg("turn passed")
	case game.ShotSunk:
		left := s.boards[target].CountLiveShips()
		s.log.Debug().Stringer("owner", target).Int("left", left).Msg("ship sunk")
		if left == 0 {
			s.log.Info().
				Stringer("winner", shooter).
				Int("player_shots", s.shots[Player].Len()).
				Int("computer_shots", s.shots[Computer].Len()).
				Msg("game over")
		}
	}
	return o, nil
}
