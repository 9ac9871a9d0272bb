package game

import "github.com/bits-and-blooms/bitset"

// ShotLog is the set of coordinates a shooter has explicitly targeted.
// It only grows.
type ShotLog struct {
	bits *bitset.BitSet
}

func NewShotLog() *ShotLog {
	return &ShotLog{bits: bitset.New(Size * Size)}
}

func (l *ShotLog) Add(p Coord) { l.bits.Set(p.index()) }

func (l *ShotLog) Has(p Coord) bool { return l.bits.Test(p.index()) }

func (l *ShotLog) Len() int { return int(l.bits.Count()) }

// Full reports whether every cell of the grid has been targeted.
func (l *ShotLog) Full() bool { return l.Len() == Size*Size }

// Coords returns the logged coordinates in row-major order.
func (l *ShotLog) Coords() []Coord {
	out := make([]Coord, 0, l.Len())
	for i, ok := l.bits.NextSet(0); ok; i, ok = l.bits.NextSet(i + 1) {
		out = append(out, coordAt(i))
	}
	return out
}
