package model

import "github.com/google/uuid"

// ShelfPreset is a reusable shelf compartment definition.
type ShelfPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`  // mm, interior
	Height float64 `json:"height"` // mm, interior
}

// NewShelfPreset creates a new ShelfPreset with a generated ID.
func NewShelfPreset(name string, width, height float64) ShelfPreset {
	return ShelfPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// ApplyTo copies the preset's bounds into the given settings.
func (sp ShelfPreset) ApplyTo(s *SortSettings) {
	s.ShelfWidth = sp.Width
	s.ShelfHeight = sp.Height
}

// Inventory holds the user's saved shelf presets.
type Inventory struct {
	Shelves []ShelfPreset `json:"shelves"`
}

// DefaultInventory returns an inventory populated with common furniture.
func DefaultInventory() Inventory {
	return Inventory{
		Shelves: []ShelfPreset{
			NewShelfPreset("Kallax cube", 330, 330),
			NewShelfPreset("Billy shelf", 760, 280),
			NewShelfPreset("Reference cube", 380, 380),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *ShelfPreset {
	for i := range inv.Shelves {
		if inv.Shelves[i].ID == id {
			return &inv.Shelves[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindByName(name string) *ShelfPreset {
	for i := range inv.Shelves {
		if inv.Shelves[i].Name == name {
			return &inv.Shelves[i]
		}
	}
	return nil
}

// Names returns the preset names in inventory order.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Shelves))
	for i, s := range inv.Shelves {
		names[i] = s.Name
	}
	return names
}
