package model

import (
	"errors"
	"testing"
)

func TestParsePlacement(t *testing.T) {
	cases := map[string]Placement{
		"VERTICAL":   PlacementVertical,
		"horizontal": PlacementHorizontal,
		" Free ":     PlacementFree,
		"v":          PlacementVertical,
	}
	for in, want := range cases {
		got, err := ParsePlacement(in)
		if err != nil {
			t.Errorf("ParsePlacement(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePlacement(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParsePlacement("diagonal"); err == nil {
		t.Error("expected error for unknown placement")
	}
}

func TestParseRotation(t *testing.T) {
	cases := map[string]Rotation{
		"":              RotationNone,
		"not_rotated":   RotationNone,
		"ROTATED":       RotationRotated,
		"Free_Rotation": RotationFree,
	}
	for in, want := range cases {
		got, err := ParseRotation(in)
		if err != nil {
			t.Errorf("ParseRotation(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseRotation(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseRotation("upside down"); err == nil {
		t.Error("expected error for unknown rotation")
	}
}

func TestZeroValuesAreDefaults(t *testing.T) {
	var p Placement
	var r Rotation
	if p != PlacementVertical {
		t.Errorf("expected zero placement to be VERTICAL, got %s", p)
	}
	if r != RotationNone {
		t.Errorf("expected zero rotation to be NOT_ROTATED, got %s", r)
	}
}

func TestUnmarshalTextRejectsUnknown(t *testing.T) {
	var p Placement
	if err := p.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error")
	}
	var r Rotation
	if err := r.UnmarshalText([]byte("ROTATED")); err != nil || r != RotationRotated {
		t.Errorf("expected ROTATED, got %s (%v)", r, err)
	}
}

func TestValidateSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	s.ShelfCount = 0
	if err := s.Validate(); err != nil {
		t.Errorf("zero shelves should be valid: %v", err)
	}

	s.ShelfCount = -1
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}

	s = DefaultSettings()
	s.ShelfHeight = 0
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}

	s = DefaultSettings()
	s.Placement = Placement(7)
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings for placement 7, got %v", err)
	}

	s = DefaultSettings()
	s.Rotation = Rotation(7)
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings for rotation 7, got %v", err)
	}

	s = DefaultSettings()
	s.Rotation = Rotation(-1)
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings for rotation -1, got %v", err)
	}
}

func TestTemplateIsEmptyShelf(t *testing.T) {
	s := DefaultSettings()
	tpl := s.Template()
	if tpl.Width != 380 || tpl.Height != 380 || !tpl.IsEmpty() {
		t.Errorf("unexpected template: %+v", tpl)
	}
}

func TestInventoryLookup(t *testing.T) {
	inv := DefaultInventory()
	p := inv.FindByName("Kallax cube")
	if p == nil {
		t.Fatal("expected Kallax cube preset")
	}
	if inv.FindByID(p.ID) != p {
		t.Error("expected FindByID to return the same preset")
	}
	if inv.FindByName("Nope") != nil {
		t.Error("expected nil for unknown preset")
	}

	s := DefaultSettings()
	p.ApplyTo(&s)
	if s.ShelfWidth != 330 || s.ShelfHeight != 330 {
		t.Errorf("expected 330x330, got %.0fx%.0f", s.ShelfWidth, s.ShelfHeight)
	}
	if len(inv.Names()) != len(inv.Shelves) {
		t.Error("expected one name per preset")
	}
}
