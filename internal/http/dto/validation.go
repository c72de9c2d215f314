package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptionalInt decodes a JSON number, a numeric string, "" or null.
// Empty values leave it unset, so forms that send "" for a blank
// field store NULL.
type OptionalInt struct {
	Value *int64
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	raw, empty, err := rawScalar(data)
	if err != nil || empty {
		o.Value = nil
		return err
	}
	n, err := ParseInt(raw)
	if err != nil {
		return err
	}
	o.Value = n
	return nil
}

// OptionalFloat is the float counterpart of OptionalInt.
type OptionalFloat struct {
	Value *float64
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	raw, empty, err := rawScalar(data)
	if err != nil || empty {
		o.Value = nil
		return err
	}
	f, err := ParseFloat(raw)
	if err != nil {
		return err
	}
	o.Value = f
	return nil
}

func rawScalar(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return "", true, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		return s, s == "", nil
	}
	return string(data), false, nil
}

// ParseInt parses an optional integer from a form value.
func ParseInt(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		n = int64(f)
	}
	return &n, nil
}

// ParseFloat parses an optional decimal, accepting a comma as separator.
func ParseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &f, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
