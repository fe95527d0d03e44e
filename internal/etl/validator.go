package etl

import (
	"errors"
	"fmt"

	"github.com/BartekS5/sensor-etl/pkg/models"
)

// ErrRowWidth means a row does not have exactly one value per column.
var ErrRowWidth = errors.New("row width does not match sensor_data columns")

// checkRowWidth only checks shape; values are never inspected.
func checkRowWidth(idx int, row models.RawRow) error {
	if len(row) != len(models.Columns) {
		return fmt.Errorf("row %d: got %d fields, want %d: %w", idx, len(row), len(models.Columns), ErrRowWidth)
	}
	return nil
}
