// Package places serves the curated merchant-location dataset for the map
// view. The data ships embedded; there is no live geo lookup.
package places

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed places.json
var placesJSON []byte

type Place struct {
	Commerce  string  `json:"commerce"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CategoryPlaces struct {
	Category string  `json:"category"`
	Results  []Place `json:"results"`
}

// TopPlaces groups visited commerces by category within one state.
type TopPlaces struct {
	State      string           `json:"estado"`
	Categories []CategoryPlaces `json:"categorias"`
}

// Load parses the embedded dataset. Category order follows the file.
func Load() (*TopPlaces, error) {
	var tp TopPlaces
	if err := json.Unmarshal(placesJSON, &tp); err != nil {
		return nil, fmt.Errorf("parse embedded places data: %w", err)
	}
	return &tp, nil
}
