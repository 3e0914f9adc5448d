// Package hex provides the cube-coordinate model for the hexagonal board.
// A Position carries all three cube coordinates; they always sum to zero.
package hex

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position is a point on the hex grid in cube coordinates.
type Position struct {
	X int
	Y int
	Z int
}

// Origin is the board origin, the first placement target on an empty board.
var Origin = Position{X: 0, Y: 0, Z: 0}

// Valid reports whether the cube coordinates sum to zero.
func (p Position) Valid() bool {
	return p.X+p.Y+p.Z == 0
}

// Less defines the total order used for deterministic iteration: by X,
// then Y, then Z.
func (p Position) Less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.Z < o.Z
}

// Direction identifies one of the six neighbors of a cell, or the top of
// the stack at the same cell.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
	OnTop
)

// Directions lists the six planar directions in the order used for
// deterministic neighbor scans. OnTop is excluded.
var Directions = [6]Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest}

var directionOffsets = [6]Position{
	North:     {X: 0, Y: 1, Z: -1},
	NorthEast: {X: 1, Y: 0, Z: -1},
	SouthEast: {X: 1, Y: -1, Z: 0},
	South:     {X: 0, Y: -1, Z: 1},
	SouthWest: {X: -1, Y: 0, Z: 1},
	NorthWest: {X: -1, Y: 1, Z: 0},
}

var directionNames = map[Direction]string{
	North:     "north",
	NorthEast: "northeast",
	SouthEast: "southeast",
	South:     "south",
	SouthWest: "southwest",
	NorthWest: "northwest",
	OnTop:     "on top",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "unknown"
}

// Opposite returns the direction pointing the other way. OnTop is its own
// opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case NorthEast:
		return SouthWest
	case SouthEast:
		return NorthWest
	case South:
		return North
	case SouthWest:
		return NorthEast
	case NorthWest:
		return SouthEast
	default:
		return OnTop
	}
}

// MarshalText encodes the direction as its lowercase name.
func (d Direction) MarshalText() ([]byte, error) {
	if _, ok := directionNames[d]; !ok {
		return nil, fmt.Errorf("hex: unknown direction %d", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction from its lowercase name.
func (d *Direction) UnmarshalText(text []byte) error {
	for dir, name := range directionNames {
		if name == string(text) {
			*d = dir
			return nil
		}
	}
	return fmt.Errorf("hex: unknown direction %q", text)
}

// Offset returns the position one step in the given direction. OnTop
// returns the position unchanged.
func (p Position) Offset(d Direction) Position {
	if d == OnTop {
		return p
	}
	o := directionOffsets[d]
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Adjacent returns the six neighboring positions in direction order.
func (p Position) Adjacent() [6]Position {
	var out [6]Position
	for i, d := range Directions {
		out[i] = p.Offset(d)
	}
	return out
}

// Distance is the hex (cube) distance: the largest absolute coordinate
// difference.
func (p Position) Distance(o Position) int {
	dx := abs(p.X - o.X)
	dy := abs(p.Y - o.Y)
	dz := abs(p.Z - o.Z)
	max := dx
	if dy > max {
		max = dy
	}
	if dz > max {
		max = dz
	}
	return max
}

// EuclideanDistance treats the cube coordinates as a point in space. Used
// to pick the default placement closest to the legal-target cluster.
func (p Position) EuclideanDistance(o Position) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	dz := float64(p.Z - o.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// MarshalText encodes the position as "x,y,z" so it can serve as a JSON
// map key for occupancy stacks.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)), nil
}

// UnmarshalText decodes a position from its "x,y,z" form.
func (p *Position) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ",")
	if len(parts) != 3 {
		return fmt.Errorf("hex: malformed position %q", text)
	}
	coords := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("hex: malformed position %q: %w", text, err)
		}
		coords[i] = n
	}
	p.X, p.Y, p.Z = coords[0], coords[1], coords[2]
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
