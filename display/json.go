package display

import (
	"encoding/json"
	"os"
)

// MarshalJSON marshals JSON with pretty formatting, or compact formatting
// when STACKGRID_JSON_COMPACT=1 (for piping into other tools)
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv("STACKGRID_JSON_COMPACT") == "1" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
