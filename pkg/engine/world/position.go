package world

import "fmt"

// Position is a grid coordinate. It is a value type: positions are compared
// and used as map keys by coordinate, never by identity.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for constructing a Position
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns the string representation of a position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Translate returns the position one step away in the given direction
func (p Position) Translate(d Direction) Position {
	rowDelta, colDelta := d.Delta()
	return Position{Row: p.Row + rowDelta, Col: p.Col + colDelta}
}

// Adjacent returns the four neighboring positions in AllDirections order.
// Neighbors outside any particular grid are still returned; bounds are the
// grid's concern.
func (p Position) Adjacent() []Position {
	neighbors := make([]Position, 0, 4)
	for _, dir := range AllDirections() {
		neighbors = append(neighbors, p.Translate(dir))
	}
	return neighbors
}

// Manhattan returns the Manhattan distance between two positions
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
