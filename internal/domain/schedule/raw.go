package schedule

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Raw is working hours as they were stored: either a legacy "HH:MM-HH:MM"
// string or a per-day map. The zero value means "never configured".
type Raw struct {
	Legacy *string
	Weekly WeeklySchedule
}

// LegacyHours wraps a legacy hours string.
func LegacyHours(s string) *Raw {
	return &Raw{Legacy: &s}
}

// WeeklyHours wraps a per-day map.
func WeeklyHours(w WeeklySchedule) *Raw {
	return &Raw{Weekly: w}
}

func (r *Raw) IsEmpty() bool {
	return r == nil || (r.Legacy == nil && r.Weekly == nil)
}

func (r Raw) MarshalJSON() ([]byte, error) {
	switch {
	case r.Legacy != nil:
		return json.Marshal(*r.Legacy)
	case r.Weekly != nil:
		return json.Marshal(r.Weekly)
	default:
		return []byte("null"), nil
	}
}

func (r *Raw) UnmarshalJSON(data []byte) error {
	*r = Raw{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.Legacy = &s
		return nil
	case '{':
		var w WeeklySchedule
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		r.Weekly = w
		return nil
	default:
		return fmt.Errorf("%w: expected string or object", ErrMalformedHours)
	}
}

// Value stores the hours as JSON text.
func (r Raw) Value() (driver.Value, error) {
	if r.IsEmpty() {
		return nil, nil
	}
	b, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Raw) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = Raw{}
		return nil
	case []byte:
		return r.UnmarshalJSON(v)
	case string:
		return r.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("schedule: cannot scan %T into Raw", src)
	}
}

// RawFromValue converts a loosely typed document field (string, map or nil)
// into Raw.
func RawFromValue(v any) (*Raw, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var r Raw
	if err := r.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return &r, nil
}

// ToValue is the inverse of RawFromValue.
func (r *Raw) ToValue() any {
	if r.IsEmpty() {
		return nil
	}
	if r.Legacy != nil {
		return *r.Legacy
	}
	out := make(map[string]any, len(r.Weekly))
	for day, h := range r.Weekly {
		out[string(day)] = map[string]any{
			"start":    h.Start,
			"end":      h.End,
			"isClosed": h.IsClosed,
		}
	}
	return out
}
