package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"seabattle/internal/ai"
	"seabattle/internal/attest"
	"seabattle/internal/boardio"
	"seabattle/internal/codec"
	"seabattle/internal/config"
	"seabattle/internal/game"
	"seabattle/internal/logging"
	"seabattle/internal/session"
	"seabattle/internal/view"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "init":
		cmdInit()
	case "check":
		cmdCheck()
	case "place":
		cmdPlace()
	case "simulate":
		cmdSimulate()
	case "commit":
		cmdCommit()
	case "prove":
		cmdProve()
	case "verify":
		cmdVerify()
	default:
		usage()
	}
}

func usage() {
	fmt.Print(`seabattle

Commands:
  init     --out board.txt [--seed N]
  check    --board board.txt
  place    --out board.txt --ship А1h --ship В1h ...   (largest ship first)
  simulate [--board board.txt] [--seed N] [--pattern EXPR] [--show]
  commit   --board board.txt --secret secret.json --keys ./keys
  prove    --secret secret.json --keys ./keys --row R --col C --out proof.json|proof.cbor
  verify   --keys ./keys --root ROOT_HEX --proof proof.json --row R --col C
`)
}

// parse applies the env file, binds the shared flags, parses the subcommand
// args and swaps in the configured logger.
func parse(fs *flag.FlagSet) config.Config {
	cfg := config.Default()
	if err := cfg.LoadEnv(config.DefaultEnvFile()); err != nil {
		log.Fatal().Err(err).Msg("env file")
	}
	cfg.RegisterFlags(fs)
	_ = fs.Parse(os.Args[2:])
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	l, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("logger")
	}
	log = l
	return cfg
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	out := fs.String("out", "board.txt", "output board file")
	cfg := parse(fs)

	b, err := game.PlaceFleet(cfg.Rand(), game.Fleet, cfg.PlacementAttempts, cfg.PlacementRuns)
	if err != nil {
		log.Fatal().Err(err).Msg("auto placement")
	}
	if err := boardio.Save(*out, b); err != nil {
		log.Fatal().Err(err).Msg("save board")
	}
	fmt.Println("✓ wrote", *out)
}

func cmdCheck() {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("board", "board.txt", "board file")
	parse(fs)

	b := loadFleet(*path)
	own := view.Own(b)
	for r := 0; r < game.Size; r++ {
		fmt.Println(own.Row(r))
	}
	fmt.Println("✓ valid fleet in", *path)
}

type shipFlags []string

func (s *shipFlags) String() string     { return strings.Join(*s, ",") }
func (s *shipFlags) Set(v string) error { *s = append(*s, v); return nil }

func cmdPlace() {
	fs := flag.NewFlagSet("place", flag.ExitOnError)
	out := fs.String("out", "board.txt", "output board file")
	var ships shipFlags
	fs.Var(&ships, "ship", "ship anchor and orientation, e.g. А1h or Б3v (repeat per ship)")
	parse(fs)

	setup := game.NewSetup(nil)
	for _, s := range ships {
		size, _ := setup.Next()
		p, horizontal, err := parseShip(s)
		if err == nil {
			err = setup.Place(p.Row, p.Col, horizontal)
		}
		if err != nil {
			log.Fatal().Err(err).Str("ship", s).Int("size", size).Msg("placement rejected")
		}
		log.Debug().Str("ship", s).Int("size", size).Msg("placed")
	}
	b, err := setup.Board()
	if err != nil {
		log.Fatal().Err(err).Ints("remaining", setup.Remaining()).Msg("incomplete fleet")
	}
	if err := boardio.Save(*out, b); err != nil {
		log.Fatal().Err(err).Msg("save board")
	}
	fmt.Println("✓ wrote", *out)
}

// parseShip reads "<row letter><column><h|v>", e.g. "Д10v".
func parseShip(s string) (game.Coord, bool, error) {
	rs := []rune(strings.TrimSpace(s))
	if len(rs) < 3 {
		return game.Coord{}, false, fmt.Errorf("%w: %q", game.ErrPlacementRejected, s)
	}
	var horizontal bool
	switch rs[len(rs)-1] {
	case 'h', 'H':
		horizontal = true
	case 'v', 'V':
	default:
		return game.Coord{}, false, fmt.Errorf("%w: orientation in %q", game.ErrPlacementRejected, s)
	}
	col, err := strconv.Atoi(string(rs[1 : len(rs)-1]))
	if err != nil {
		return game.Coord{}, false, fmt.Errorf("%w: column in %q", game.ErrInvalidCoordinate, s)
	}
	p, err := view.ParseCoord(string(rs[0]), col)
	return p, horizontal, err
}

func cmdSimulate() {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	path := fs.String("board", "", "player board file (auto placed when empty)")
	show := fs.Bool("show", false, "print both boards at the end")
	cfg := parse(fs)

	rng := cfg.Rand()
	pattern, err := cfg.Pattern()
	if err != nil {
		log.Fatal().Err(err).Msg("search pattern")
	}
	var player *game.Board
	if *path != "" {
		player = loadFleet(*path)
	} else if player, err = game.PlaceFleet(rng, game.Fleet, cfg.PlacementAttempts, cfg.PlacementRuns); err != nil {
		log.Fatal().Err(err).Msg("auto placement")
	}

	s, err := session.New(player, session.Options{
		Rand:              rng,
		PlacementAttempts: cfg.PlacementAttempts,
		PlacementRuns:     cfg.PlacementRuns,
		SearchPattern:     pattern,
		Logger:            &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("new session")
	}

	var opts []ai.Option
	if pattern != nil {
		opts = append(opts, ai.WithSearchPattern(pattern))
	}
	stand := ai.New(rng, opts...)
	for !s.Over() {
		if s.Turn() == session.Player {
			if _, err := s.AutoShot(session.Player, stand); err != nil {
				log.Fatal().Err(err).Msg("player shot")
			}
			continue
		}
		if _, err := s.ComputerTurn(); err != nil {
			log.Fatal().Err(err).Msg("computer turn")
		}
	}

	winner, _ := s.Winner()
	if *show {
		own, opp := s.Views(session.Player)
		_ = view.Format(os.Stdout, own, opp, s.LiveShips(session.Player), s.LiveShips(session.Computer))
	}
	fmt.Printf("%s wins (player %d shots, computer %d shots)\n",
		winner, s.Shots(session.Player), s.Shots(session.Computer))
}

func cmdCommit() {
	fs := flag.NewFlagSet("commit", flag.ExitOnError)
	path := fs.String("board", "board.txt", "board file")
	secretPath := fs.String("secret", "secret.json", "defender secret state (.json or .cbor)")
	cfg := parse(fs)

	b := loadFleet(*path)
	c, err := attest.Commit(b, cfg.KeysDir, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("commit")
	}
	if err := codec.Save(*secretPath, &c.Secret); err != nil {
		log.Fatal().Err(err).Msg("save secret")
	}
	fmt.Println("ROOT:", c.RootHex)
	fmt.Println("✓ wrote", *secretPath)
}

func cmdProve() {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	secretPath := fs.String("secret", "secret.json", "defender secret state")
	row := fs.Int("row", 0, "row [0..9]")
	col := fs.Int("col", 0, "col [0..9]")
	out := fs.String("out", "proof.json", "proof output (.json or .cbor)")
	cfg := parse(fs)

	var sec codec.Secret
	if err := codec.Load(*secretPath, &sec); err != nil {
		log.Fatal().Err(err).Msg("load secret")
	}
	payload, err := attest.Prove(sec, cfg.KeysDir, game.Coord{Row: *row, Col: *col})
	if err != nil {
		log.Fatal().Err(err).Msg("prove")
	}
	if err := codec.Save(*out, payload); err != nil {
		log.Fatal().Err(err).Msg("save proof")
	}
	fmt.Printf("✓ wrote %s (result: %s)\n", *out, hitLabel(payload.Public.Hit == 1))
}

func cmdVerify() {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	rootHex := fs.String("root", "", "root hex prefixed 0x")
	proofPath := fs.String("proof", "proof.json", "proof payload (.json or .cbor)")
	row := fs.Int("row", -1, "row [0..9]")
	col := fs.Int("col", -1, "col [0..9]")
	cfg := parse(fs)

	if *rootHex == "" {
		log.Fatal().Msg("--root required")
	}
	root, err := attest.ParseHex(*rootHex)
	if err != nil {
		log.Fatal().Err(err).Msg("root")
	}
	p := game.Coord{Row: *row, Col: *col}
	if !game.InBounds(p.Row, p.Col) {
		log.Fatal().Int("row", *row).Int("col", *col).Msg("row/col out of range")
	}
	var payload codec.ShotProofPayload
	if err := codec.Load(*proofPath, &payload); err != nil {
		log.Fatal().Err(err).Msg("load proof")
	}
	hit, err := attest.Verify(cfg.KeysDir, root, p, payload)
	if err != nil {
		log.Fatal().Err(err).Msg("verify")
	}
	fmt.Println(hitLabel(hit))
}

// loadFleet loads a setup board and insists on the canonical fleet.
func loadFleet(path string) *game.Board {
	b, err := boardio.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("load board")
	}
	if err := game.ValidateFleet(b); err != nil {
		log.Fatal().Err(err).Str("board", path).Msg("invalid fleet")
	}
	return b
}

func hitLabel(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
