package merkle

import (
	"bytes"
	"math/big"
	"testing"
)

func bits(n int, set ...int) []uint8 {
	out := make([]uint8, n)
	for _, i := range set {
		out[i] = 1
	}
	return out
}

func TestPathVerifiesEveryLeaf(t *testing.T) {
	b := bits(100, 0, 1, 2, 3, 45, 99)
	tree, err := New(b)
	if err != nil {
		t.Fatal(err)
	}
	root := tree.Root()
	for i := 0; i < len(b); i++ {
		sib, dir, err := tree.Path(i)
		if err != nil {
			t.Fatalf("Path(%d): %v", i, err)
		}
		if !Verify(HashLeaf(b[i]), sib, dir, root) {
			t.Fatalf("leaf %d does not verify", i)
		}
		if Verify(HashLeaf(1-b[i]), sib, dir, root) {
			t.Fatalf("flipped leaf %d verifies", i)
		}
	}
}

func TestPathDirectionBitsEncodeIndex(t *testing.T) {
	tree, err := New(bits(100))
	if err != nil {
		t.Fatal(err)
	}
	_, dir, err := tree.Path(0b1011001)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{1, 0, 0, 1, 1, 0, 1}
	if !bytes.Equal(dir, want) {
		t.Fatalf("dir = %v, want %v", dir, want)
	}
}

func TestRootDependsOnBoard(t *testing.T) {
	a, _ := New(bits(100, 5))
	b, _ := New(bits(100, 6))
	if a.Root().Cmp(b.Root()) == 0 {
		t.Fatalf("different boards share a root")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(make([]uint8, Leaves+1)); err == nil {
		t.Fatalf("oversized input accepted")
	}
	if _, err := New([]uint8{0, 2}); err == nil {
		t.Fatalf("non-bit leaf accepted")
	}
}

func TestSaltedRootDiffers(t *testing.T) {
	tree, _ := New(bits(100, 1))
	s1, err := RandomSalt(nil)
	if err != nil {
		t.Fatal(err)
	}
	s2 := new(big.Int).Add(s1, big.NewInt(1))
	if SaltedRoot(s1, tree.Root()).Cmp(SaltedRoot(s2, tree.Root())) == 0 {
		t.Fatalf("salt has no effect on root")
	}
}
