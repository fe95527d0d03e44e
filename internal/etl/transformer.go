package etl

import (
	"github.com/BartekS5/sensor-etl/pkg/models"
)

// Transform maps each positional row onto a SensorRecord. The mapping is by
// index only: if the table's column order changes, the output is silently
// wrong. Output has the same length and order as the input.
func Transform(rows []models.RawRow) ([]models.SensorRecord, error) {
	out := make([]models.SensorRecord, 0, len(rows))
	for i, row := range rows {
		if err := checkRowWidth(i, row); err != nil {
			return nil, err
		}
		out = append(out, models.SensorRecord{
			ID:          row[0],
			SensorID:    row[1],
			Temperature: row[2],
			Humidity:    row[3],
			RecordedAt:  row[4],
		})
	}
	return out, nil
}
