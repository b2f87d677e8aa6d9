package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Record is a single backend record in canonical (flat) form. Relation
// wrappers are collapsed and every "id" is a string.
type Record map[string]any

// ID returns the record identifier
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Pagination mirrors meta.pagination of a list response
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// ListEnvelope is the canonical result of a list call
type ListEnvelope struct {
	Records    []Record
	Pagination Pagination
}

type wireEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination *Pagination `json:"pagination"`
	} `json:"meta"`
}

// Normalize converts every accepted list body into ListEnvelope:
//   - a bare JSON array of records
//   - {"data": [...], "meta": {"pagination": {...}}}
//
// Records may be flat or {"id", "attributes": {...}}. When the body carries no
// pagination it is synthesized as a single page holding every record.
func Normalize(body []byte) (*ListEnvelope, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("backend: empty response body")
	}

	var items []any
	var pagination *Pagination

	switch body[0] {
	case '[':
		if err := decodeJSON(body, &items); err != nil {
			return nil, fmt.Errorf("backend: decode list: %w", err)
		}
	case '{':
		var env wireEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("backend: decode envelope: %w", err)
		}
		data := bytes.TrimSpace(env.Data)
		if len(data) == 0 || data[0] != '[' {
			return nil, fmt.Errorf("backend: list envelope has no data array")
		}
		if err := decodeJSON(data, &items); err != nil {
			return nil, fmt.Errorf("backend: decode list data: %w", err)
		}
		pagination = env.Meta.Pagination
	default:
		return nil, fmt.Errorf("backend: unexpected list body")
	}

	out := &ListEnvelope{Records: make([]Record, 0, len(items))}
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("backend: list item %d is not an object", i)
		}
		out.Records = append(out.Records, flattenRecord(m))
	}

	if pagination != nil {
		out.Pagination = *pagination
	} else {
		out.Pagination = singlePage(len(out.Records))
	}
	return out, nil
}

// NormalizeOne converts a single-record body ({"data": {...}} or a bare object)
// into a Record. A null data member yields (nil, nil).
func NormalizeOne(body []byte) (Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("backend: empty response body")
	}

	var raw map[string]any
	if err := decodeJSON(body, &raw); err != nil {
		return nil, fmt.Errorf("backend: decode record: %w", err)
	}

	if data, ok := raw["data"]; ok && isEnvelope(raw) {
		if data == nil {
			return nil, nil
		}
		m, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("backend: record data is not an object")
		}
		return flattenRecord(m), nil
	}
	return flattenRecord(raw), nil
}

// isEnvelope tells a {"data":..,"meta":..} wrapper apart from a flat record
// that happens to have a "data" attribute.
func isEnvelope(m map[string]any) bool {
	for k := range m {
		if k != "data" && k != "meta" {
			return false
		}
	}
	return true
}

func singlePage(n int) Pagination {
	if n == 0 {
		return Pagination{}
	}
	return Pagination{Page: 1, PageSize: n, PageCount: 1, Total: n}
}

// flattenRecord lifts "attributes" into the top level, canonicalizes the id and
// collapses nested relation wrappers.
func flattenRecord(m map[string]any) Record {
	out := make(Record, len(m))
	if attrs, ok := m["attributes"].(map[string]any); ok {
		for k, v := range attrs {
			out[k] = flattenValue(v)
		}
	}
	for k, v := range m {
		if k == "attributes" {
			continue
		}
		out[k] = flattenValue(v)
	}
	if id, ok := out["id"]; ok {
		out["id"] = idString(id)
	}
	return out
}

// flattenValue handles relation shapes: {"data": {...}}, {"data": [...]},
// {"data": null}, flat objects and arrays of objects. Scalars pass through.
func flattenValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if data, ok := val["data"]; ok && isEnvelope(val) {
			switch d := data.(type) {
			case nil:
				return nil
			case map[string]any:
				return flattenRecord(d)
			case []any:
				return flattenSlice(d)
			default:
				return d
			}
		}
		if _, hasID := val["id"]; hasID {
			return flattenRecord(val)
		}
		return val
	case []any:
		return flattenSlice(val)
	default:
		return v
	}
}

func flattenSlice(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = flattenValue(item)
	}
	return out
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return fmt.Sprintf("%.0f", id)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// maxCoercions bounds the field fixes Decode attempts on one record
const maxCoercions = 32

// Decode converts a canonical record into a typed value. Decimal columns often
// arrive as strings ("2500.00") and short codes as numbers, so a field whose
// JSON shape does not match its Go type is coerced and decoding is retried.
func Decode[T any](r Record) (T, error) {
	var out T
	raw, err := json.Marshal(r)
	if err != nil {
		return out, fmt.Errorf("backend: encode record: %w", err)
	}

	var doc map[string]any
	for i := 0; ; i++ {
		err = json.Unmarshal(raw, &out)
		var typeErr *json.UnmarshalTypeError
		if err == nil || i >= maxCoercions || !errors.As(err, &typeErr) {
			break
		}
		if doc == nil && decodeJSON(raw, &doc) != nil {
			break
		}
		if !coerceField(doc, typeErr) {
			break
		}
		if raw, err = json.Marshal(doc); err != nil {
			break
		}
		var zero T
		out = zero
	}
	if err != nil {
		return out, fmt.Errorf("backend: decode record %s: %w", r.ID(), err)
	}
	return out, nil
}

// coerceField rewrites the value at e.Field so it matches e.Type
func coerceField(doc map[string]any, e *json.UnmarshalTypeError) bool {
	if e.Type == nil || e.Field == "" {
		return false
	}
	path := strings.Split(e.Field, ".")
	parent := doc
	for _, key := range path[:len(path)-1] {
		next, ok := parent[key].(map[string]any)
		if !ok {
			return false
		}
		parent = next
	}
	key := path[len(path)-1]
	kind := e.Type.Kind()

	switch v := parent[key].(type) {
	case string:
		if !isNumberKind(kind) {
			return false
		}
		s := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
		if s == "" {
			parent[key] = nil
			return true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		parent[key] = numberFor(kind, f)
	case json.Number:
		switch {
		case kind == reflect.String:
			parent[key] = v.String()
		case isIntKind(kind):
			f, err := v.Float64()
			if err != nil {
				return false
			}
			parent[key] = numberFor(kind, f)
		default:
			return false
		}
	case bool:
		if kind != reflect.String {
			return false
		}
		parent[key] = strconv.FormatBool(v)
	default:
		return false
	}
	return true
}

func numberFor(kind reflect.Kind, f float64) json.Number {
	if isIntKind(kind) {
		f = math.Round(f)
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNumberKind(k reflect.Kind) bool {
	return isIntKind(k) || k == reflect.Float32 || k == reflect.Float64
}
