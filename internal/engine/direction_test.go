package engine

import (
	"errors"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"up", DirUp},
		{"UP", DirUp},
		{" down ", DirDown},
		{"l", DirLeft},
		{"Right", DirRight},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"", "north", "w", "upp"} {
		if _, err := ParseDirection(bad); !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("ParseDirection(%q) err = %v, want ErrInvalidDirection", bad, err)
		}
	}
}

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vector
	}{
		{DirUp, Vector{Row: -1}},
		{DirDown, Vector{Row: 1}},
		{DirLeft, Vector{Col: -1}},
		{DirRight, Vector{Col: 1}},
	}

	for _, tt := range tests {
		got, err := tt.dir.Vector()
		if err != nil {
			t.Fatalf("%v.Vector() error: %v", tt.dir, err)
		}
		if got != tt.want {
			t.Errorf("%v.Vector() = %+v, want %+v", tt.dir, got, tt.want)
		}
	}

	if _, err := Direction(7).Vector(); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("invalid direction err = %v", err)
	}
}

func TestDirectionText(t *testing.T) {
	for _, dir := range Directions {
		text, err := dir.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", dir, err)
		}
		var back Direction
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if back != dir {
			t.Errorf("text round trip %v -> %v", dir, back)
		}
	}

	if _, err := Direction(-1).MarshalText(); err == nil {
		t.Error("MarshalText should reject invalid directions")
	}
}
