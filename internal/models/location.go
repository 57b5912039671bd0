package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func (l Location) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan accepts a JSON object or a JSON string that itself encodes the object.
func (l *Location) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = Location{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("location: unsupported type %T", src)
	}

	loc, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

func ParseLocation(raw []byte) (Location, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Location{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return Location{}, fmt.Errorf("location: %w", err)
		}
		return ParseLocation([]byte(inner))
	}

	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return Location{}, fmt.Errorf("location: %w", err)
	}
	return loc, nil
}

// UnmarshalJSON tolerates the string-encoded form on input as well.
func (l *Location) UnmarshalJSON(data []byte) error {
	type plain Location
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		loc, err := ParseLocation(data)
		if err != nil {
			return err
		}
		*l = loc
		return nil
	}

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = Location(p)
	return nil
}
