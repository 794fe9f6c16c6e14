package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned for direction values outside Up/Down/Left/Right.
var ErrInvalidDirection = errors.New("engine: invalid direction")

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Vector is a unit step on the grid.
type Vector struct {
	Row int
	Col int
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// Vector returns the unit step for d.
func (d Direction) Vector() (Vector, error) {
	switch d {
	case DirUp:
		return Vector{Row: -1}, nil
	case DirDown:
		return Vector{Row: 1}, nil
	case DirLeft:
		return Vector{Col: -1}, nil
	case DirRight:
		return Vector{Col: 1}, nil
	default:
		return Vector{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts full names and their first letters, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
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
