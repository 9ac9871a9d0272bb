package merkle

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Depth of the occupancy tree: 128 leaves, enough for a 10x10 board.
const Depth = 7

const Leaves = 1 << Depth

// BN254 field elements are written as 32-byte big-endian blocks.
func block(x *big.Int) []byte {
	out := make([]byte, 32)
	x.FillBytes(out)
	return out
}

// HashLeaf is MiMC(bit), matching the in-circuit leaf hash.
func HashLeaf(bit uint8) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(block(new(big.Int).SetUint64(uint64(bit))))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashNode is MiMC(left, right).
func HashNode(left, right *big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(block(left))
	h.Write(block(right))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// SaltedRoot hides the tree root so equal boards commit differently.
func SaltedRoot(salt, root *big.Int) *big.Int { return HashNode(salt, root) }

// RandomSalt draws a uniform BN254 scalar from entropy.
func RandomSalt(entropy io.Reader) (*big.Int, error) {
	if entropy == nil {
		entropy = rand.Reader
	}
	return rand.Int(entropy, ecc.BN254.ScalarField())
}

// Tree is a fixed-depth binary Merkle tree over occupancy bits.
// Levels[0] holds the leaf hashes, Levels[Depth] the root.
type Tree struct {
	Levels [][]*big.Int `json:"levels"`
}

// New builds the tree over bits (0 or 1 each), padding with zero leaves.
func New(bits []uint8) (*Tree, error) {
	if len(bits) > Leaves {
		return nil, errors.New("too many leaves")
	}
	pad := HashLeaf(0)
	level := make([]*big.Int, Leaves)
	for i := range level {
		if i >= len(bits) {
			level[i] = new(big.Int).Set(pad)
			continue
		}
		if bits[i] > 1 {
			return nil, errors.New("leaf is not a bit")
		}
		level[i] = HashLeaf(bits[i])
	}
	t := &Tree{Levels: [][]*big.Int{level}}
	for len(level) > 1 {
		up := make([]*big.Int, len(level)/2)
		for i := range up {
			up[i] = HashNode(level[2*i], level[2*i+1])
		}
		t.Levels = append(t.Levels, up)
		level = up
	}
	return t, nil
}

func (t *Tree) Root() *big.Int { return new(big.Int).Set(t.Levels[Depth][0]) }

// Path returns the sibling hashes from leaf idx up to the root, and the
// direction bits: dir[i] is 1 when the running node is a right child.
// The direction bits are idx in little-endian binary.
func (t *Tree) Path(idx int) (siblings []*big.Int, dir []uint8, err error) {
	if len(t.Levels) != Depth+1 {
		return nil, nil, errors.New("tree has wrong depth")
	}
	if idx < 0 || idx >= Leaves {
		return nil, nil, errors.New("leaf index out of range")
	}
	siblings = make([]*big.Int, Depth)
	dir = make([]uint8, Depth)
	for level := 0; level < Depth; level++ {
		bit := idx & 1
		siblings[level] = new(big.Int).Set(t.Levels[level][idx^1])
		dir[level] = uint8(bit)
		idx >>= 1
	}
	return siblings, dir, nil
}

// Verify recomputes the root from a leaf hash and its path.
func Verify(leaf *big.Int, siblings []*big.Int, dir []uint8, root *big.Int) bool {
	if len(siblings) != Depth || len(dir) != Depth {
		return false
	}
	cur := leaf
	for i := 0; i < Depth; i++ {
		if dir[i] == 1 {
			cur = HashNode(siblings[i], cur)
		} else {
			cur = HashNode(cur, siblings[i])
		}
	}
	return cur.Cmp(root) == 0
}
