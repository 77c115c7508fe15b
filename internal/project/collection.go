package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// SaveCollection writes a collection, including its last result, to path.
func SaveCollection(path string, c model.Collection) error {
	if err := writeJSON(path, c); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// LoadCollection reads a collection from path. A collection saved without
// settings gets the defaults so it can be sorted straight away.
func LoadCollection(path string) (model.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Collection{}, fmt.Errorf("failed to read collection: %w", err)
	}
	var c model.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return model.Collection{}, fmt.Errorf("failed to parse collection: %w", err)
	}
	if c.Settings == (model.SortSettings{}) {
		c.Settings = model.DefaultSettings()
	}
	if c.Games == nil {
		c.Games = []model.Game{}
	}
	return c, nil
}
