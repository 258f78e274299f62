package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/activities/pkg/models"
)

// WriteJSON writes the activities as an indented JSON array
func WriteJSON(w io.Writer, activities []models.Activity) error {
	if activities == nil {
		activities = []models.Activity{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(activities)
}
