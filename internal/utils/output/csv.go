package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/law-makers/activities/pkg/models"
)

// CSVHeader is the first row written by WriteCSV
var CSVHeader = []string{"category", "class_name", "schedule", "cost", "enrollment_deadline"}

// WriteCSV writes the activities with a header row. Cost always has two decimals.
func WriteCSV(w io.Writer, activities []models.Activity) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, a := range activities {
		row := []string{
			a.Category,
			a.ClassName,
			a.Schedule,
			strconv.FormatFloat(a.Cost, 'f', 2, 64),
			a.EnrollmentDeadline,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
