package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/law-makers/activities/pkg/models"
	"github.com/rs/zerolog/log"
)

// Save exports activities to path. The format follows the extension: .csv writes
// CSV, anything else JSON.
func Save(activities []models.Activity, path string) error {
	var write func(io.Writer, []models.Activity) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	default:
		write = WriteJSON
	}

	return writeFile(path, func(w io.Writer) error {
		return write(w, activities)
	})
}

func writeFile(path string, fn func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debug().Str("file", path).Msg("Output saved")
	return nil
}
