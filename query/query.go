// Package query holds the pagination, search and sort contract shared by
// every list operation in Syllabus.
//
// Callers pass Params; services normalize them into a Query, hand the Query
// to the store, and wrap the store's rows and count into a Page.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortOrder is the direction of a single-key sort.
type SortOrder string

// Sort directions.
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sortable field names, as accepted in Params.SortBy.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldName      = "name"
	FieldDuration  = "duration"
	FieldLevel     = "level"
)

// Defaults applied by Normalize.
const (
	DefaultSkip      = 0
	DefaultLimit     = 10
	DefaultSortBy    = FieldCreatedAt
	DefaultSortOrder = Desc
)

// columns maps sortable field names to storage column names.
var columns = map[string]string{
	FieldCreatedAt: "created_at",
	FieldUpdatedAt: "updated_at",
	FieldName:      "name",
	FieldDuration:  "duration",
	FieldLevel:     "level",
}

// Params is the caller-facing list input. Absent values take defaults.
type Params struct {
	Skip      *int      `json:"skip,omitempty"`
	Limit     *int      `json:"limit,omitempty"`
	Search    string    `json:"search,omitempty"`
	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
}

// WithDefaultLimit returns p with Limit set to n when the caller gave none.
// Non-positive n leaves p unchanged.
func (p Params) WithDefaultLimit(n int) Params {
	if p.Limit == nil && n > 0 {
		p.Limit = &n
	}
	return p
}

// Query is a normalized Params.
//
// Skip is carried as given: it is not validated and may be negative. Stores
// read the clamped value through Offset; Page echoes the raw value.
type Query struct {
	Skip      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder SortOrder
}

// Normalize applies defaults. SortBy values outside allowed fall back to
// DefaultSortBy; with no allowed list every known field is accepted.
func (p Params) Normalize(allowed ...string) Query {
	q := Query{
		Skip:      DefaultSkip,
		Limit:     DefaultLimit,
		Search:    p.Search,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}
	if p.Skip != nil {
		q.Skip = *p.Skip
	}
	if p.Limit != nil {
		q.Limit = *p.Limit
	}
	if p.SortOrder == Asc {
		q.SortOrder = Asc
	}
	if p.SortBy != "" && sortable(p.SortBy, allowed) {
		q.SortBy = p.SortBy
	}
	return q
}

func sortable(field string, allowed []string) bool {
	if _, ok := columns[field]; !ok {
		return false
	}
	return len(allowed) == 0 || slices.Contains(allowed, field)
}

// Offset returns Skip clamped to zero, the value stores pass to the backend.
func (q Query) Offset() int {
	return max(q.Skip, 0)
}

// Descending reports whether the sort direction is descending.
func (q Query) Descending() bool {
	return q.SortOrder != Asc
}

// SortColumn returns the storage column for SortBy.
func (q Query) SortColumn() string {
	if col, ok := columns[q.SortBy]; ok {
		return col
	}
	return columns[DefaultSortBy]
}

// HasSearch reports whether a search term is set.
func (q Query) HasSearch() bool {
	return q.Search != ""
}

// Matches reports whether name or description contains the search term,
// ignoring case. An empty term matches everything.
func (q Query) Matches(name, description string) bool {
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(name), term) ||
		strings.Contains(strings.ToLower(description), term)
}

// Page is the result of a list operation.
type Page[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Skip    int   `json:"skip"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// NewPage assembles a Page. HasMore compares the requested window end with
// total, not the number of rows returned.
func NewPage[T any](data []T, total int64, q Query) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:    data,
		Total:   total,
		Skip:    q.Skip,
		Limit:   q.Limit,
		HasMore: int64(q.Skip+q.Limit) < total,
	}
}

// Map converts the rows of a page, keeping its counters.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Data))
	for i, v := range p.Data {
		out[i] = fn(v)
	}
	return Page[U]{Data: out, Total: p.Total, Skip: p.Skip, Limit: p.Limit, HasMore: p.HasMore}
}

// Sort orders items in place by the value key returns for q.SortBy.
// Equal keys keep their input order.
func Sort[T any](items []T, q Query, key func(item T, field string) any) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := Compare(key(a, q.SortBy), key(b, q.SortBy))
		if q.Descending() {
			return -c
		}
		return c
	})
}

// Window applies offset and limit to an already filtered and sorted slice.
func Window[T any](items []T, q Query) []T {
	offset := q.Offset()
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if q.Limit > 0 && q.Limit < len(items) {
		items = items[:q.Limit]
	}
	return items
}

// Compare orders two sort keys of the same dynamic type. Values of unknown
// or mismatched types compare equal.
func Compare(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return 0
}
