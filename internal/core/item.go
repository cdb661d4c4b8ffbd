package core

import (
	"encoding/json"
	"fmt"
)

// Item is the single persisted entity.
//
// On the wire an item is a positional JSON array [id, name], not an object.
// Existing consumers index into the array, so the order is fixed.
type Item struct {
	ID   int64
	Name string
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{i.ID, i.Name})
}

func (i *Item) UnmarshalJSON(b []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(b, &row); err != nil {
		return fmt.Errorf("decode item row: %w", err)
	}
	if len(row) != 2 {
		return fmt.Errorf("decode item row: want 2 columns, got %d", len(row))
	}
	if err := json.Unmarshal(row[0], &i.ID); err != nil {
		return fmt.Errorf("decode item id: %w", err)
	}
	if err := json.Unmarshal(row[1], &i.Name); err != nil {
		return fmt.Errorf("decode item name: %w", err)
	}
	return nil
}
