package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumericString accepts a JSON number or string and keeps its text form so
// validation can report exactly what was sent.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("expected number or string, got %s", data)
		}
		*n = NumericString(num.String())
	}
	return nil
}
