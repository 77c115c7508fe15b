package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidSettings is returned when a run's settings cannot describe any shelf layout.
var ErrInvalidSettings = errors.New("invalid sort settings")

// Placement is the axis games are packed along.
type Placement int

const (
	PlacementVertical   Placement = iota // Games stand up, depth runs along the shelf width
	PlacementHorizontal                  // Games lie flat, depth runs up the shelf height
	PlacementFree                        // Each game takes whichever orientation fits
)

func (p Placement) String() string {
	switch p {
	case PlacementHorizontal:
		return "HORIZONTAL"
	case PlacementFree:
		return "FREE"
	default:
		return "VERTICAL"
	}
}

// Valid reports whether p is one of the defined placements.
func (p Placement) Valid() bool {
	return p >= PlacementVertical && p <= PlacementFree
}

// ParsePlacement accepts the String form in any case.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VERTICAL", "V":
		return PlacementVertical, nil
	case "HORIZONTAL", "H":
		return PlacementHorizontal, nil
	case "FREE", "F":
		return PlacementFree, nil
	default:
		return PlacementVertical, fmt.Errorf("unknown placement %q", s)
	}
}

func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Rotation controls whether a game's front face may be turned before fit checks.
type Rotation int

const (
	RotationNone    Rotation = iota // Height stays vertical
	RotationRotated                 // Width and height swap
	RotationFree                    // Either orientation is acceptable
)

func (r Rotation) String() string {
	switch r {
	case RotationRotated:
		return "ROTATED"
	case RotationFree:
		return "FREE_ROTATION"
	default:
		return "NOT_ROTATED"
	}
}

// Valid reports whether r is one of the defined rotation policies.
func (r Rotation) Valid() bool {
	return r >= RotationNone && r <= RotationFree
}

// ParseRotation accepts the String form in any case; an empty string is RotationNone.
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NOT_ROTATED", "NONE":
		return RotationNone, nil
	case "ROTATED":
		return RotationRotated, nil
	case "FREE_ROTATION", "FREE":
		return RotationFree, nil
	default:
		return RotationNone, fmt.Errorf("unknown rotation %q", s)
	}
}

func (r Rotation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rotation) UnmarshalText(text []byte) error {
	parsed, err := ParseRotation(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SortSettings holds the parameters of one sorting run.
type SortSettings struct {
	Placement   Placement `json:"placement"`
	Rotation    Rotation  `json:"rotation"`
	ShelfCount  int       `json:"shelf_count"`
	ShelfWidth  float64   `json:"shelf_width"`  // mm
	ShelfHeight float64   `json:"shelf_height"` // mm
}

func DefaultSettings() SortSettings {
	return SortSettings{
		Placement:   PlacementVertical,
		Rotation:    RotationNone,
		ShelfCount:  2,
		ShelfWidth:  380,
		ShelfHeight: 380,
	}
}

// Validate reports settings that cannot describe a shelf layout.
// Zero shelves is allowed: every game then fails for lack of space.
func (s SortSettings) Validate() error {
	if !s.Placement.Valid() {
		return fmt.Errorf("%w: unknown placement %d", ErrInvalidSettings, int(s.Placement))
	}
	if !s.Rotation.Valid() {
		return fmt.Errorf("%w: unknown rotation %d", ErrInvalidSettings, int(s.Rotation))
	}
	if s.ShelfCount < 0 {
		return fmt.Errorf("%w: shelf count %d is negative", ErrInvalidSettings, s.ShelfCount)
	}
	if s.ShelfWidth <= 0 || s.ShelfHeight <= 0 {
		return fmt.Errorf("%w: shelf must be positive, got %.0f x %.0f", ErrInvalidSettings, s.ShelfWidth, s.ShelfHeight)
	}
	return nil
}

// Template returns the empty shelf every run's shelves are cloned from.
func (s SortSettings) Template() Shelf {
	return EmptyShelf(s.ShelfWidth, s.ShelfHeight)
}

// capacityOf is the depth a shelf can hold along the packing axis.
// Free placement can use whichever axis is longer.
func (s SortSettings) capacityOf(sh Shelf) float64 {
	switch s.Placement {
	case PlacementHorizontal:
		return sh.Height
	case PlacementFree:
		return math.Max(sh.Width, sh.Height)
	default:
		return sh.Width
	}
}
