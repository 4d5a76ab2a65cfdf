// Package core provides fundamental types and utilities for the snake arena.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"fmt"
	"strings"
)

// Point represents a cell on the grid. (0, 0) is the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point translated by the given delta.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Move returns the neighbouring point in direction d.
func (p Point) Move(d Direction) Point {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Neighbors returns the four orthogonal neighbours in Up, Down, Left, Right order.
func (p Point) Neighbors() [4]Point {
	return [4]Point{p.Move(Up), p.Move(Down), p.Move(Left), p.Move(Right)}
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction represents a snake's heading.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all headings in canonical order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// IsOpposite checks if two directions are opposite.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && other.Valid() && d.Opposite() == other
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Delta returns the grid step for the direction. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection accepts UP/DOWN/LEFT/RIGHT in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	}
	return 0, fmt.Errorf("core: unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler so directions serialise by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("core: invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Rect represents an axis-aligned area. The board is a Rect at the origin.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point is inside this rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the number of cells.
func (r Rect) Area() int {
	return r.W * r.H
}

// Distance returns the Manhattan distance between two points.
func Distance(a, b Point) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
