package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Ref is a populated relation collapsed to its identity and display name.
// It decodes from a bare id (number or string) or from a related record.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts 12, "12" or an object such as {"id":12,"companyName":"Acme"}
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj map[string]any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return err
		}
		r.ID = scalarString(obj["id"])
		r.Name = refName(obj)
		r.Email, _ = obj["email"].(string)
		return nil
	case '"':
		return json.Unmarshal(data, &r.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("ref: %w", err)
		}
		r.ID = n.String()
		return nil
	}
}

func refName(obj map[string]any) string {
	for _, key := range []string{"companyName", "name", "title", "username"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	first, _ := obj["firstName"].(string)
	last, _ := obj["lastName"].(string)
	return strings.TrimSpace(first + " " + last)
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// RefID returns the id of r or an empty string for a nil ref
func RefID(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}

// Date is a business date. It decodes both "2006-01-02" and RFC 3339 values;
// empty strings and null decode to the zero value, which encodes as null.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate wraps t
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate parses a date-only or RFC 3339 string
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{Time: t}, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// DateString formats d as YYYY-MM-DD, the format date fields are written in
func (d Date) DateString() string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(dateLayout)
}
