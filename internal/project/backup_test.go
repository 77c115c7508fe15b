package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShelfSort/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	inv := model.DefaultInventory()
	c := model.NewCollection()
	c.Name = "Living room"
	c.Games = append(c.Games, model.NewGame("Azul", model.GenreAbstract, 265, 265, 75, "Plan B"))

	if err := ExportAllData(path, inv, []model.Collection{c}); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(backup.Inventory.Shelves) != len(inv.Shelves) {
		t.Errorf("expected %d presets, got %d", len(inv.Shelves), len(backup.Inventory.Shelves))
	}
	if len(backup.Collections) != 1 || backup.Collections[0].Name != "Living room" {
		t.Fatalf("unexpected collections: %+v", backup.Collections)
	}
	if backup.Collections[0].Games[0].Name != "Azul" {
		t.Errorf("expected Azul, got %q", backup.Collections[0].Games[0].Name)
	}
}

func TestExportAllDataNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "backup.json")
	if err := ExportAllData(path, model.Inventory{}, nil); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Collections == nil || backup.Inventory.Shelves == nil {
		t.Error("expected empty, non-nil slices")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"collections": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestRestoreInventorySkipsDuplicates(t *testing.T) {
	existing := model.DefaultInventory()
	backup := BackupData{
		Version: BackupVersion,
		Inventory: model.Inventory{Shelves: []model.ShelfPreset{
			existing.Shelves[0],
			{ID: "extra", Name: "Extra", Width: 500, Height: 300},
		}},
	}

	merged := RestoreInventory(backup, existing)
	if len(merged.Shelves) != len(existing.Shelves)+1 {
		t.Errorf("expected %d presets, got %d", len(existing.Shelves)+1, len(merged.Shelves))
	}
}
