package utils

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numericLike struct{ s string }

func (n numericLike) Value() (driver.Value, error) { return n.s, nil }

type brokenValuer struct{}

func (brokenValuer) Value() (driver.Value, error) { return nil, errors.New("invalid") }

func TestFormatCell(t *testing.T) {
	ts := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "2023-01-01 10:00:00", "2023-01-01 10:00:00"},
		{"bytes", []byte("abc"), "abc"},
		{"int", 1, "1"},
		{"int32", int32(101), "101"},
		{"int64", int64(-7), "-7"},
		{"uint16", uint16(9), "9"},
		{"float64", 22.5, "22.5"},
		{"float64 fraction", 60.1, "60.1"},
		{"float64 whole", 23.0, "23"},
		{"float32", float32(61.2), "61.2"},
		{"bool", true, "true"},
		{"time", ts, "2023-01-01 10:00:00"},
		{"time fractional", ts.Add(250 * time.Millisecond), "2023-01-01 10:00:00.25"},
		{"valuer", numericLike{"22.50"}, "22.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatCell(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCellValuerError(t *testing.T) {
	_, err := FormatCell(brokenValuer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestFormatRow(t *testing.T) {
	got, err := FormatRow([]interface{}{1, 101, 22.5, 60.1, "2023-01-01 10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "101", "22.5", "60.1", "2023-01-01 10:00:00"}, got)

	_, err = FormatRow([]interface{}{1, brokenValuer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column 1")
}
