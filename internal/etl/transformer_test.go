package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/sensor-etl/pkg/models"
)

func TestTransformSingleRow(t *testing.T) {
	rows := []models.RawRow{{1, 101, 22.5, 60.1, "2023-01-01 10:00:00"}}

	got, err := Transform(rows)
	require.NoError(t, err)

	want := []models.SensorRecord{
		{ID: 1, SensorID: 101, Temperature: 22.5, Humidity: 60.1, RecordedAt: "2023-01-01 10:00:00"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, map[string]interface{}{
		"id":          1,
		"sensor_id":   101,
		"temperature": 22.5,
		"humidity":    60.1,
		"recorded_at": "2023-01-01 10:00:00",
	}, got[0].ToMap())
}

func TestTransformPreservesOrder(t *testing.T) {
	rows := []models.RawRow{
		{1, 101, 22.5, 60.1, "2023-01-01 10:00:00"},
		{2, 102, 23.0, 61.2, "2023-01-01 11:00:00"},
	}

	got, err := Transform(rows)
	require.NoError(t, err)
	require.Len(t, got, len(rows))

	for i, rec := range got {
		assert.Equal(t, []interface{}(rows[i]), rec.Values())
	}
}

func TestTransformDoesNotValidateValues(t *testing.T) {
	rows := []models.RawRow{{"x", nil, "hot", -1000.0, 42}}

	got, err := Transform(rows)
	require.NoError(t, err)
	assert.Equal(t, "hot", got[0].Temperature)
	assert.Nil(t, got[0].SensorID)
}

func TestTransformEmpty(t *testing.T) {
	got, err := Transform(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTransformRejectsWrongWidth(t *testing.T) {
	tests := []struct {
		name string
		row  models.RawRow
	}{
		{"short", models.RawRow{1, 101, 22.5, 60.1}},
		{"long", models.RawRow{1, 101, 22.5, 60.1, "2023-01-01 10:00:00", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []models.RawRow{{1, 101, 22.5, 60.1, "ok"}, tt.row}
			_, err := Transform(rows)
			require.ErrorIs(t, err, ErrRowWidth)
			assert.Contains(t, err.Error(), "row 1")
		})
	}
}
