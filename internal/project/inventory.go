package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// InventoryPath returns the inventory file inside the data directory.
func InventoryPath(dataDir string) string {
	return filepath.Join(DataDir(dataDir), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Shelves == nil {
		inv.Shelves = []model.ShelfPreset{}
	}
	return inv, nil
}

// ImportInventory imports shelf presets from a user-specified JSON file,
// merging them into the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return mergeInventory(existing, imported), nil
}

func mergeInventory(existing, imported model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Shelves))
	for _, s := range existing.Shelves {
		ids[s.ID] = true
	}
	for _, s := range imported.Shelves {
		if !ids[s.ID] {
			existing.Shelves = append(existing.Shelves, s)
			ids[s.ID] = true
		}
	}
	return existing
}
