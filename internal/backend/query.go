package backend

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Filter operators understood by the backend
const (
	OpEq       = "$eq"
	OpEqi      = "$eqi"
	OpNe       = "$ne"
	OpIn       = "$in"
	OpGte      = "$gte"
	OpLte      = "$lte"
	OpLt       = "$lt"
	OpNull     = "$null"
	OpContains = "$containsi"
)

// Filter is one filters[a][b]...[$op]=value clause. Path walks relations, e.g. ["leadCompany","id"].
type Filter struct {
	Path   []string
	Op     string
	Values []string
}

// Query describes the list parameters of a collection request
type Query struct {
	Page     int
	PageSize int
	Sort     []string
	Populate []string
	Filters  []Filter
	// Or groups filters as filters[$or][i][...]; used by free-text search
	Or []Filter
}

// NewQuery starts a query with the given pagination
func NewQuery(page, pageSize int) *Query {
	return &Query{Page: page, PageSize: pageSize}
}

// Clone returns a deep copy so callers can extend a shared base query
func (q *Query) Clone() *Query {
	if q == nil {
		return &Query{}
	}
	c := *q
	c.Sort = append([]string(nil), q.Sort...)
	c.Populate = append([]string(nil), q.Populate...)
	c.Filters = append([]Filter(nil), q.Filters...)
	c.Or = append([]Filter(nil), q.Or...)
	return &c
}

// Where adds an equality filter
func (q *Query) Where(value string, path ...string) *Query {
	q.Filters = append(q.Filters, Filter{Path: path, Op: OpEq, Values: []string{value}})
	return q
}

// WhereOp adds a filter with an explicit operator
func (q *Query) WhereOp(op, value string, path ...string) *Query {
	q.Filters = append(q.Filters, Filter{Path: path, Op: op, Values: []string{value}})
	return q
}

// WhereIn adds a $in filter
func (q *Query) WhereIn(values []string, path ...string) *Query {
	q.Filters = append(q.Filters, Filter{Path: path, Op: OpIn, Values: values})
	return q
}

// Between adds an inclusive $gte/$lte range on a date or datetime field. Zero bounds are skipped.
func (q *Query) Between(field string, from, to time.Time) *Query {
	if !from.IsZero() {
		q.WhereOp(OpGte, from.UTC().Format(time.RFC3339), field)
	}
	if !to.IsZero() {
		q.WhereOp(OpLte, to.UTC().Format(time.RFC3339), field)
	}
	return q
}

// SortBy appends a sort clause, e.g. SortBy("createdAt", "desc")
func (q *Query) SortBy(field, dir string) *Query {
	if dir == "" {
		dir = "asc"
	}
	q.Sort = append(q.Sort, field+":"+strings.ToLower(dir))
	return q
}

// With populates relations
func (q *Query) With(relations ...string) *Query {
	q.Populate = append(q.Populate, relations...)
	return q
}

// Values encodes the query in the backend's bracket notation
func (q *Query) Values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}
	if q.Page > 0 {
		v.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}
	for i, s := range q.Sort {
		v.Set(fmt.Sprintf("sort[%d]", i), s)
	}
	for i, p := range q.Populate {
		v.Set(fmt.Sprintf("populate[%d]", i), p)
	}
	for _, f := range q.Filters {
		encodeFilter(v, "filters", f)
	}
	for i, f := range q.Or {
		encodeFilter(v, fmt.Sprintf("filters[$or][%d]", i), f)
	}
	return v
}

// Encode returns the URL-encoded query string
func (q *Query) Encode() string {
	return q.Values().Encode()
}

func encodeFilter(v url.Values, prefix string, f Filter) {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range f.Path {
		b.WriteString("[" + p + "]")
	}
	b.WriteString("[" + f.Op + "]")
	key := b.String()

	if f.Op == OpIn {
		for i, val := range f.Values {
			v.Add(fmt.Sprintf("%s[%d]", key, i), val)
		}
		return
	}
	for _, val := range f.Values {
		v.Add(key, val)
	}
}
