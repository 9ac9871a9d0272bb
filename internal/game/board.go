package game

import "fmt"

// Size is the grid side length.
const Size = 10

// Fleet is the canonical ship lengths, largest first. Total 20 cells.
var Fleet = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

// FleetCells is the number of ship cells on a complete board.
const FleetCells = 20

// Coord is a zero-based (row, col) position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

func (c Coord) index() uint { return uint(c.Row*Size + c.Col) }

func coordAt(i uint) Coord { return Coord{Row: int(i) / Size, Col: int(i) % Size} }

// InBounds reports whether (r, c) lies on the grid.
func InBounds(r, c int) bool { return r >= 0 && r < Size && c >= 0 && c < Size }

// Board is a 10x10 grid of cells. The zero value is an empty board.
type Board struct {
	cells [Size][Size]Cell
}

func NewBoard() *Board { return &Board{} }

// InBounds reports whether (r, c) lies on the grid.
func (b *Board) InBounds(r, c int) bool { return InBounds(r, c) }

// Get returns the cell at (r, c). Out of range coordinates panic.
func (b *Board) Get(r, c int) Cell { return b.cells[r][c] }

// Set writes the cell at (r, c). Out of range coordinates panic.
func (b *Board) Set(r, c int, v Cell) { b.cells[r][c] = v }

func (b *Board) at(p Coord) Cell { return b.cells[p.Row][p.Col] }

// Revealed reports whether the cell at p is visible to the opponent,
// i.e. it reads Hit or Miss.
func (b *Board) Revealed(p Coord) bool {
	v := b.at(p)
	return v == Hit || v == Miss
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Cells calls fn for every cell in row-major order.
func (b *Board) Cells(fn func(p Coord, v Cell)) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			fn(Coord{r, c}, b.cells[r][c])
		}
	}
}

// Occupancy flattens the board to 100 bits in row-major order,
// 1 for any ship cell (Occupied or Hit) and 0 otherwise.
func (b *Board) Occupancy() []uint8 {
	out := make([]uint8, 0, Size*Size)
	b.Cells(func(_ Coord, v Cell) {
		if v.IsShip() {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	})
	return out
}

// CountLiveShips returns the number of ships with at least one cell not yet hit.
func (b *Board) CountLiveShips() int {
	n := 0
	for _, ship := range Ships(b) {
		for _, p := range ship {
			if b.at(p) == Occupied {
				n++
				break
			}
		}
	}
	return n
}

// UnhitCells returns the number of ship cells not yet struck.
func (b *Board) UnhitCells() int {
	n := 0
	b.Cells(func(_ Coord, v Cell) {
		if v == Occupied {
			n++
		}
	})
	return n
}
