package utils

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is how time values are written into CSV cells.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatCell renders a scalar read from the database as CSV cell text.
// NULL becomes an empty cell.
func FormatCell(val interface{}) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return FormatTime(v), nil
	case driver.Valuer:
		// pgtype.Numeric and friends
		inner, err := v.Value()
		if err != nil {
			return "", fmt.Errorf("cannot format %T: %w", val, err)
		}
		if _, again := inner.(driver.Valuer); again {
			return fmt.Sprintf("%v", inner), nil
		}
		return FormatCell(inner)
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}

// FormatTime writes t with second precision, keeping fractional seconds
// only when they are present.
func FormatTime(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(TimestampLayout)
	}
	return t.Format(TimestampLayout + ".999999")
}

// FormatRow renders every cell of a row.
func FormatRow(vals []interface{}) ([]string, error) {
	out := make([]string, len(vals))
	for i, v := range vals {
		s, err := FormatCell(v)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}
