package game

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

var orthogonal = [4]Coord{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// LocateShip flood fills over orthogonal neighbours from (r, c) and returns
// every reachable Occupied or Hit cell. The set is empty when (r, c) is not
// a ship cell.
func LocateShip(b *Board, r, c int) mapset.Set[Coord] {
	cells := mapset.New[Coord]()
	if !InBounds(r, c) || !b.Get(r, c).IsShip() {
		return cells
	}
	stack := []Coord{{r, c}}
	cells.Put(Coord{r, c})
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range orthogonal {
			n := Coord{cur.Row + d.Row, cur.Col + d.Col}
			if !InBounds(n.Row, n.Col) || cells.Has(n) || !b.at(n).IsShip() {
				continue
			}
			cells.Put(n)
			stack = append(stack, n)
		}
	}
	return cells
}

// Sunk reports whether every cell of ship is Hit.
func Sunk(b *Board, ship mapset.Set[Coord]) bool {
	if ship.Size() == 0 {
		return false
	}
	sunk := true
	ship.Each(func(p Coord) {
		if b.at(p) != Hit {
			sunk = false
		}
	})
	return sunk
}

// MarkSunkPerimeter turns every Empty cell touching ship, diagonals
// included, into Miss. Ship cells are never touched.
func MarkSunkPerimeter(b *Board, ship mapset.Set[Coord]) {
	ship.Each(func(p Coord) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := p.Row+dr, p.Col+dc
				if InBounds(r, c) && b.cells[r][c] == Empty {
					b.cells[r][c] = Miss
				}
			}
		}
	})
}

// Sorted returns the members of a located ship in row-major order.
func Sorted(ship mapset.Set[Coord]) []Coord {
	out := make([]Coord, 0, ship.Size())
	ship.Each(func(p Coord) { out = append(out, p) })
	sort.Slice(out, func(i, j int) bool { return out[i].index() < out[j].index() })
	return out
}

// Ships partitions all ship cells into connected components, ordered by
// their first cell in row-major order.
func Ships(b *Board) [][]Coord {
	seen := mapset.New[Coord]()
	var ships [][]Coord
	b.Cells(func(p Coord, v Cell) {
		if !v.IsShip() || seen.Has(p) {
			return
		}
		ship := LocateShip(b, p.Row, p.Col)
		ship.Each(func(q Coord) { seen.Put(q) })
		ships = append(ships, Sorted(ship))
	})
	return ships
}
