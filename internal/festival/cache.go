package festival

import (
	"encoding/json"
	"os"
)

// Snapshot is one cached event record, in the order it was computed.
type Snapshot struct {
	Start       string `json:"start"` // YYYYMMDD
	End         string `json:"end"`   // YYYYMMDD, exclusive
	Summary     string `json:"summary"`
	Description string `json:"description"`
	AllDay      bool   `json:"is_allday"`
}

// Cache persists one full derivation run. It is trusted only when its
// year range matches the configured range exactly; anything else forces a
// recompute and overwrite.
type Cache struct {
	StartYear int        `json:"start_year"`
	EndYear   int        `json:"end_year"`
	Events    []Snapshot `json:"events"`
}

func loadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func saveCache(path string, c *Cache) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
