package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NullFloat64 is a float64 that distinguishes a present value from a JSON
// null. Upstream series arrays mix numbers and nulls; downstream code must
// pattern-match on presence rather than on a zero sentinel.
type NullFloat64 struct {
	Value    float64
	HasValue bool
}

// Float returns a NullFloat64 holding v.
func Float(v float64) NullFloat64 {
	return NullFloat64{Value: v, HasValue: true}
}

func (f *NullFloat64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.Value, f.HasValue = 0, false
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		f.Value, f.HasValue = 0, false
		return fmt.Errorf("invalid numeric value %q: %w", data, err)
	}
	f.Value, f.HasValue = v, true
	return nil
}

func (f NullFloat64) MarshalJSON() ([]byte, error) {
	if !f.HasValue {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Or returns the value if present, otherwise def.
func (f NullFloat64) Or(def float64) float64 {
	if f.HasValue {
		return f.Value
	}
	return def
}

// at returns the i-th element of s, absent when out of range.
func at(s []NullFloat64, i int) NullFloat64 {
	if i < 0 || i >= len(s) {
		return NullFloat64{}
	}
	return s[i]
}
