// Package timestamp decodes the datetime strings the marketplace API emits.
// The backend serializes naive ISO timestamps without a zone suffix, which
// the standard time.Time unmarshal rejects.
package timestamp

import (
	"encoding/json"
	"fmt"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Time accepts both zoned and naive ISO datetimes. Naive values are read
// as UTC.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range layouts {
		parsed, err := time.ParseInLocation(layout, *raw, time.UTC)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported datetime %q", *raw)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// IsSet reports whether the value carries an actual timestamp.
func (t Time) IsSet() bool { return !t.IsZero() }
