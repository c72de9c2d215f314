package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Flag is a boolean stored as INTEGER 0/1 and serialized as 0/1 in JSON.
type Flag bool

func (f Flag) Int() int {
	if f {
		return 1
	}
	return 0
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts true/false as well as numbers.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %s", data)
	}
	*f = n != 0
	return nil
}

func (f *Flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case int64:
		*f = v != 0
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan flag: %w", err)
		}
		*f = n != 0
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan flag: %w", err)
		}
		*f = n != 0
	default:
		return fmt.Errorf("scan flag: unsupported type %T", src)
	}
	return nil
}

func (f Flag) Value() (driver.Value, error) {
	return int64(f.Int()), nil
}
