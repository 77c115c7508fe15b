package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version     string             `json:"version"`
	CreatedAt   string             `json:"created_at"`
	Inventory   model.Inventory    `json:"inventory"`
	Collections []model.Collection `json:"collections"`
}

// ExportAllData writes the inventory and collections to a single JSON file.
func ExportAllData(exportPath string, inv model.Inventory, collections []model.Collection) error {
	if collections == nil {
		collections = []model.Collection{}
	}
	backup := BackupData{
		Version:     BackupVersion,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Inventory:   inv,
		Collections: collections,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Collections == nil {
		backup.Collections = []model.Collection{}
	}
	if backup.Inventory.Shelves == nil {
		backup.Inventory.Shelves = []model.ShelfPreset{}
	}
	return backup, nil
}

// RestoreInventory merges a backup's presets into the existing inventory.
func RestoreInventory(backup BackupData, existing model.Inventory) model.Inventory {
	return mergeInventory(existing, backup.Inventory)
}
