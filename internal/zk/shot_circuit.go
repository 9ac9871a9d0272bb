package zk

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"seabattle/internal/game"
	"seabattle/internal/merkle"
)

// ShotCircuit proves that the hit bit revealed for the public (Row, Col)
// is the occupancy committed under the salted root.
type ShotCircuit struct {
	Bit  frontend.Variable               `gnark:",secret"`
	Path [merkle.Depth]frontend.Variable `gnark:",secret"`
	Dir  [merkle.Depth]frontend.Variable `gnark:",secret"`
	Salt frontend.Variable               `gnark:",secret"`

	Root frontend.Variable `gnark:",public"`
	Row  frontend.Variable `gnark:",public"`
	Col  frontend.Variable `gnark:",public"`
	Hit  frontend.Variable `gnark:",public"`
}

func (c *ShotCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.Bit)
	api.AssertIsEqual(c.Hit, c.Bit)

	// the path must open the leaf of the public cell
	api.AssertIsLessOrEqual(c.Row, game.Size-1)
	api.AssertIsLessOrEqual(c.Col, game.Size-1)
	idx := api.FromBinary(c.Dir[:]...)
	api.AssertIsEqual(idx, api.Add(api.Mul(c.Row, game.Size), c.Col))

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Bit)
	curr := h.Sum()

	for i := 0; i < merkle.Depth; i++ {
		h.Reset()
		left := api.Select(c.Dir[i], c.Path[i], curr)
		right := api.Select(c.Dir[i], curr, c.Path[i])
		h.Write(left, right)
		curr = h.Sum()
	}

	h.Reset()
	h.Write(c.Salt, curr)
	api.AssertIsEqual(h.Sum(), c.Root)
	return nil
}
