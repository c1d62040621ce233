package output

import (
	"encoding/json"
	"os"
)

// SaveJSON writes v as indented JSON to path. It accepts the record
// table, outcomes, or an item detail.
func SaveJSON(v any, path string) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
