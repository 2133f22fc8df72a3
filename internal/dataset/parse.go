// Package dataset fetches and decodes the chinese-days holiday/workday
// dataset.
package dataset

import (
	"encoding/json"
	"strings"
)

// Entry is one normalized dataset record. The wire value is either a
// comma-joined string whose second field is the display name, or an
// object with a "name" key; both decode into this one shape at the
// boundary. An Entry with an empty Name carries no usable information and
// is skipped downstream.
type Entry struct {
	Name string
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parts := strings.Split(s, ",")
		if len(parts) >= 2 {
			e.Name = parts[1]
		}
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Name = obj.Name
	return nil
}

// Document is the parsed dataset: date strings ("YYYY-MM-DD") mapped to
// holiday and compensatory-workday entries.
type Document struct {
	Holidays map[string]Entry `json:"holidays"`
	Workdays map[string]Entry `json:"workdays"`
}

// Parse decodes the dataset JSON. When the primary holidays/workdays
// schema yields nothing, it falls back to the legacy flat date→entry
// shape, treating every entry as a holiday.
func Parse(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	if len(doc.Holidays) == 0 && len(doc.Workdays) == 0 {
		var flat map[string]Entry
		if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
			doc.Holidays = flat
		}
	}

	return &doc, nil
}
