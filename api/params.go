package api

import (
	"net/http"
	"strconv"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
)

// listParams reads skip, limit, search, sortBy and sortOrder from the query
// string.
func listParams(r *http.Request) (query.Params, map[string]string) {
	q := r.URL.Query()
	return pageParams(q.Get("skip"), q.Get("limit"), q.Get("search"), q.Get("sortBy"), q.Get("sortOrder"))
}

// pageParams builds query.Params from raw strings. Non-numeric skip or limit
// is reported per field.
func pageParams(skip, limit, search, sortBy, sortOrder string) (query.Params, map[string]string) {
	p := query.Params{
		Search:    search,
		SortBy:    sortBy,
		SortOrder: query.SortOrder(sortOrder),
	}

	bad := map[string]string{}
	if skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil {
			bad["skip"] = "must be an integer"
		} else {
			p.Skip = &n
		}
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			bad["limit"] = "must be an integer"
		} else {
			p.Limit = &n
		}
	}
	if len(bad) > 0 {
		return p, bad
	}
	return p, nil
}

// parseRefs parses a list of reference ids. A nil list stays nil so update
// requests can tell "unchanged" from "empty".
func parseRefs(values []string, prefix id.Prefix) ([]id.ID, error) {
	if values == nil {
		return nil, nil
	}
	return id.ParseMany(values, prefix)
}
