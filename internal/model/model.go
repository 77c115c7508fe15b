package model

import (
	"strings"

	"github.com/google/uuid"
)

// Genre is an inert classification carried through from the collection data.
type Genre string

const (
	GenreStrategy    Genre = "Strategy"
	GenreFamily      Genre = "Family"
	GenreParty       Genre = "Party"
	GenreCooperative Genre = "Cooperative"
	GenreAbstract    Genre = "Abstract"
	GenreWargame     Genre = "Wargame"
	GenreOther       Genre = "Other"
)

// Genres lists every known genre in display order.
var Genres = []Genre{
	GenreStrategy, GenreFamily, GenreParty, GenreCooperative, GenreAbstract, GenreWargame, GenreOther,
}

// ParseGenre matches a genre name case-insensitively.
func ParseGenre(s string) (Genre, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Genres {
		if strings.EqualFold(s, string(g)) {
			return g, true
		}
	}
	return GenreOther, false
}

// Game is a boxed board game to be shelved.
type Game struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Genre     Genre   `json:"genre"`
	Width     float64 `json:"width"`  // mm, front face
	Height    float64 `json:"height"` // mm, front face
	Depth     float64 `json:"depth"`  // mm, consumed along the shelf run
	Publisher string  `json:"publisher"`
}

func NewGame(name string, genre Genre, w, h, d float64, publisher string) Game {
	return Game{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Genre:     genre,
		Width:     w,
		Height:    h,
		Depth:     d,
		Publisher: publisher,
	}
}

// Face returns the front face dimensions after applying the rotation policy.
func (g Game) Face(r Rotation) (w, h float64) {
	if r == RotationRotated {
		return g.Height, g.Width
	}
	return g.Width, g.Height
}

// Shelf is a fixed-size compartment that games are packed into depth-first.
type Shelf struct {
	Width           float64 `json:"width"`  // mm
	Height          float64 `json:"height"` // mm
	Games           []Game  `json:"games"`
	VerticalGames   []Game  `json:"games_vertical,omitempty"`   // free placement only
	HorizontalGames []Game  `json:"games_horizontal,omitempty"` // free placement only

	// Orientations runs parallel to Games under free placement
	Orientations []Placement `json:"orientations,omitempty"`
}

// EmptyShelf returns a shelf with the given bounds and no games.
func EmptyShelf(width, height float64) Shelf {
	return Shelf{
		Width:  width,
		Height: height,
		Games:  []Game{},
	}
}

// UsedDepth is the sum of the depth of every game on the shelf.
func (s Shelf) UsedDepth() float64 {
	var total float64
	for _, g := range s.Games {
		total += g.Depth
	}
	return total
}

// AvailableWidth returns the width left once placed games are subtracted.
// The result can be negative.
func (s Shelf) AvailableWidth() float64 {
	return s.Width - s.UsedDepth()
}

// AvailableHeight returns the height left once placed games are subtracted.
// Both axes are consumed by depth, tallied independently.
func (s Shelf) AvailableHeight() float64 {
	return s.Height - s.UsedDepth()
}

// IsEmpty reports whether no game has been placed.
func (s Shelf) IsEmpty() bool {
	return len(s.Games) == 0
}

// Accept appends a game without any validation.
func (s *Shelf) Accept(g Game) {
	s.Games = append(s.Games, g)
}

// AcceptOriented appends a game and records the orientation it received.
func (s *Shelf) AcceptOriented(g Game, p Placement) {
	s.Accept(g)
	s.Orientations = append(s.Orientations, p)
	switch p {
	case PlacementVertical:
		s.VerticalGames = append(s.VerticalGames, g)
	case PlacementHorizontal:
		s.HorizontalGames = append(s.HorizontalGames, g)
	}
}

// Orientation resolves how the i-th placed game sits on the shelf. Outside
// free placement every game shares the run's placement. A shelf without
// recorded orientations reports VERTICAL, the free placement tie-break.
func (s Shelf) Orientation(i int, run Placement) Placement {
	if run != PlacementFree {
		return run
	}
	if i >= 0 && i < len(s.Orientations) {
		return s.Orientations[i]
	}
	return PlacementVertical
}

// SortResult holds the shelves produced by one run and the settings used.
type SortResult struct {
	Settings SortSettings `json:"settings"`
	Shelves  []Shelf      `json:"shelves"`
}

// GameCount returns the number of games placed across all shelves.
func (r SortResult) GameCount() int {
	n := 0
	for _, s := range r.Shelves {
		n += len(s.Games)
	}
	return n
}

// ShelvesUsed returns how many shelves hold at least one game.
func (r SortResult) ShelvesUsed() int {
	n := 0
	for _, s := range r.Shelves {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

// FillPercent returns used depth over packing-axis capacity for all shelves.
func (r SortResult) FillPercent() float64 {
	var used, capacity float64
	for _, s := range r.Shelves {
		used += s.UsedDepth()
		capacity += r.Settings.capacityOf(s)
	}
	if capacity == 0 {
		return 0
	}
	return (used / capacity) * 100.0
}

// Collection ties a game list, its settings and the last result together
// for save/load.
type Collection struct {
	Name     string       `json:"name"`
	Games    []Game       `json:"games"`
	Settings SortSettings `json:"settings"`
	Result   *SortResult  `json:"result,omitempty"`
}

func NewCollection() Collection {
	return Collection{
		Name:     "Untitled",
		Games:    []Game{},
		Settings: DefaultSettings(),
	}
}
