// Package attest commits a board under a salted Merkle root and proves or
// verifies single shot results against that commitment.
package attest

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"strings"

	"seabattle/internal/boardio"
	"seabattle/internal/codec"
	"seabattle/internal/game"
	"seabattle/internal/merkle"
	"seabattle/internal/zk"
)

type Commitment struct {
	RootHex string
	Secret  codec.Secret
}

// Commit validates b, commits to its occupancy and makes sure proving keys
// exist in keysDir. entropy feeds the salt; nil means crypto/rand.
func Commit(b *game.Board, keysDir string, entropy io.Reader) (*Commitment, error) {
	if err := game.ValidateFleet(b); err != nil {
		return nil, err
	}
	t, err := merkle.New(b.Occupancy())
	if err != nil {
		return nil, err
	}
	salt, err := merkle.RandomSalt(entropy)
	if err != nil {
		return nil, err
	}
	if err := zk.EnsureShotKeys(keysDir); err != nil {
		return nil, err
	}
	sec := codec.Secret{
		Board:   boardio.Lines(b),
		Tree:    t,
		SaltHex: FormatHex(salt),
	}
	return &Commitment{RootHex: FormatHex(merkle.SaltedRoot(salt, t.Root())), Secret: sec}, nil
}

// Root recomputes the salted root held by sec.
func Root(sec codec.Secret) (*big.Int, error) {
	if sec.Tree == nil {
		return nil, errors.New("secret has no tree")
	}
	salt, err := ParseHex(sec.SaltHex)
	if err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	return merkle.SaltedRoot(salt, sec.Tree.Root()), nil
}

// Prove opens cell p of the committed board.
func Prove(sec codec.Secret, keysDir string, p game.Coord) (*codec.ShotProofPayload, error) {
	if !game.InBounds(p.Row, p.Col) {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidCoordinate, p)
	}
	b, err := boardio.ParseLines(sec.Board)
	if err != nil {
		return nil, err
	}
	salt, err := ParseHex(sec.SaltHex)
	if err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	root, err := Root(sec)
	if err != nil {
		return nil, err
	}
	idx := p.Row*game.Size + p.Col
	sib, dir, err := sec.Tree.Path(idx)
	if err != nil {
		return nil, err
	}
	w := zk.ShotWitness{
		Bit:      b.Occupancy()[idx],
		Siblings: sib,
		Dir:      dir,
		Salt:     salt,
		Root:     root,
		Row:      p.Row,
		Col:      p.Col,
	}
	proof, pub, err := zk.ProveShot(keysDir, w)
	if err != nil {
		return nil, err
	}
	return &codec.ShotProofPayload{Proof: proof, Public: pub}, nil
}

// Verify checks payload against the trusted root and the cell the attacker
// actually fired at, returning whether it was a hit.
func Verify(keysDir string, root *big.Int, p game.Coord, payload codec.ShotProofPayload) (bool, error) {
	if int(payload.Public.Row) != p.Row || int(payload.Public.Col) != p.Col {
		return false, fmt.Errorf("proof is for (%d,%d), expected %v",
			payload.Public.Row, payload.Public.Col, p)
	}
	if err := zk.VerifyShot(filepath.Join(keysDir, zk.VKFile), payload.Proof, payload.Public, root); err != nil {
		return false, fmt.Errorf("invalid proof: %w", err)
	}
	return payload.Public.Hit == 1, nil
}

func FormatHex(x *big.Int) string { return fmt.Sprintf("0x%x", x) }

// ParseHex reads a 0x-prefixed hex integer.
func ParseHex(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || !strings.EqualFold(s[:2], "0x") {
		return nil, fmt.Errorf("%q is not 0x-prefixed hex", s)
	}
	n, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q", s)
	}
	return n, nil
}
