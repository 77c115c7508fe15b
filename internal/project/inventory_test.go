package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShelfSort/internal/model"
)

func TestInventoryPath(t *testing.T) {
	path := InventoryPath("")
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".shelfsort" {
		t.Errorf("expected parent dir .shelfsort, got %s", dir)
	}

	custom := InventoryPath("/tmp/shelves")
	if custom != filepath.Join("/tmp/shelves", "inventory.json") {
		t.Errorf("unexpected custom path %s", custom)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_inventory.json")

	inv := model.Inventory{
		Shelves: []model.ShelfPreset{
			model.NewShelfPreset("Wall shelf", 900, 250),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Shelves) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded.Shelves))
	}
	if loaded.Shelves[0].Name != "Wall shelf" {
		t.Errorf("expected preset 'Wall shelf', got %q", loaded.Shelves[0].Name)
	}
	if loaded.Shelves[0].Width != 900 {
		t.Errorf("expected width 900, got %f", loaded.Shelves[0].Width)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Shelves) == 0 {
		t.Error("expected default presets, got none")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("[oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventory(t *testing.T) {
	existing := model.Inventory{
		Shelves: []model.ShelfPreset{
			{ID: "shelf-001", Name: "Existing cube", Width: 330, Height: 330},
		},
	}
	imported := model.Inventory{
		Shelves: []model.ShelfPreset{
			{ID: "shelf-001", Name: "Duplicate cube", Width: 330, Height: 330}, // same ID, should be skipped
			{ID: "shelf-002", Name: "New shelf", Width: 760, Height: 280},      // new, should be added
		},
	}

	importPath := filepath.Join(t.TempDir(), "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Shelves) != 2 {
		t.Fatalf("expected 2 presets after merge, got %d", len(merged.Shelves))
	}
	if merged.Shelves[0].Name != "Existing cube" {
		t.Errorf("expected first preset to be 'Existing cube', got %q", merged.Shelves[0].Name)
	}
	if merged.Shelves[1].Name != "New shelf" {
		t.Errorf("expected second preset to be 'New shelf', got %q", merged.Shelves[1].Name)
	}
}

func TestImportInventoryMissingFileKeepsExisting(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Shelves) != len(existing.Shelves) {
		t.Errorf("expected existing inventory back, got %d presets", len(got.Shelves))
	}
}
