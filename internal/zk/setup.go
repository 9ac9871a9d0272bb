package zk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"seabattle/internal/merkle"
)

const (
	VKFile = "shot.vk"
	PKFile = "shot.pk"
)

var ErrRootMismatch = errors.New("proof root does not match the committed root")

// ShotPublic is the statement a shot proof attests to.
type ShotPublic struct {
	Root *big.Int `json:"root"`
	Row  uint8    `json:"row"`
	Col  uint8    `json:"col"`
	Hit  uint8    `json:"hit"`
}

// ShotWitness is the defender's private opening of one cell.
type ShotWitness struct {
	Bit      uint8
	Siblings []*big.Int
	Dir      []uint8
	Salt     *big.Int
	Root     *big.Int // salted
	Row, Col int
}

// Assignment fills a full circuit assignment from w.
func (w ShotWitness) Assignment() (*ShotCircuit, error) {
	if len(w.Siblings) != merkle.Depth || len(w.Dir) != merkle.Depth {
		return nil, errors.New("bad path length")
	}
	a := &ShotCircuit{Bit: w.Bit, Salt: w.Salt, Root: w.Root, Row: w.Row, Col: w.Col, Hit: w.Bit}
	for i := 0; i < merkle.Depth; i++ {
		a.Path[i] = w.Siblings[i]
		a.Dir[i] = w.Dir[i]
	}
	return a, nil
}

var compiled = sync.OnceValues(func() (constraint.ConstraintSystem, error) {
	var circuit ShotCircuit
	return frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
})

// EnsureShotKeys makes sure dir holds a parseable proving/verifying key
// pair, running the Groth16 setup when it does not.
func EnsureShotKeys(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	vkPath, pkPath := filepath.Join(dir, VKFile), filepath.Join(dir, PKFile)
	if _, err := readVK(vkPath); err == nil {
		if _, err := readPK(pkPath); err == nil {
			return nil
		}
	}
	cs, err := compiled()
	if err != nil {
		return fmt.Errorf("compile shot circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("groth16 setup: %w", err)
	}
	if err := writeKey(vkPath, vk); err != nil {
		return err
	}
	return writeKey(pkPath, pk)
}

// ProveShot proves w with the proving key in keysDir and returns the
// serialized proof with its public statement.
func ProveShot(keysDir string, w ShotWitness) ([]byte, ShotPublic, error) {
	assign, err := w.Assignment()
	if err != nil {
		return nil, ShotPublic{}, err
	}
	cs, err := compiled()
	if err != nil {
		return nil, ShotPublic{}, err
	}
	pk, err := readPK(filepath.Join(keysDir, PKFile))
	if err != nil {
		return nil, ShotPublic{}, err
	}
	full, err := frontend.NewWitness(assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, ShotPublic{}, err
	}
	proof, err := groth16.Prove(cs, pk, full)
	if err != nil {
		return nil, ShotPublic{}, fmt.Errorf("prove shot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, ShotPublic{}, err
	}
	pub := ShotPublic{
		Root: new(big.Int).Set(w.Root),
		Row:  uint8(w.Row),
		Col:  uint8(w.Col),
		Hit:  w.Bit,
	}
	return buf.Bytes(), pub, nil
}

// VerifyShot checks proof against pub and the root the verifier trusts.
func VerifyShot(vkPath string, proof []byte, pub ShotPublic, root *big.Int) error {
	if pub.Root == nil {
		return errors.New("proof payload missing public root")
	}
	if pub.Root.Cmp(root) != 0 {
		return ErrRootMismatch
	}
	if pub.Hit > 1 {
		return errors.New("hit output is not a bit")
	}
	public := &ShotCircuit{Root: root, Row: pub.Row, Col: pub.Col, Hit: pub.Hit}
	pubWit, err := frontend.NewWitness(public, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	vk, err := readVK(vkPath)
	if err != nil {
		return err
	}
	pr := groth16.NewProof(ecc.BN254)
	if _, err := pr.ReadFrom(bytes.NewReader(proof)); err != nil {
		return fmt.Errorf("decode proof: %w", err)
	}
	return groth16.Verify(pr, vk, pubWit)
}

type keyWriter interface {
	WriteTo(w io.Writer) (int64, error)
}

func writeKey(path string, k keyWriter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := k.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readVK(path string) (groth16.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vk := groth16.NewVerifyingKey(ecc.BN254)
	_, err = vk.ReadFrom(f)
	return vk, err
}

func readPK(path string) (groth16.ProvingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pk := groth16.NewProvingKey(ecc.BN254)
	_, err = pk.ReadFrom(f)
	return pk, err
}
