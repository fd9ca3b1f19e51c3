// handlers/query.go
package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

const maxListLimit = 1000

// parseListParams reads limit/skip from the query string. Limit defaults
// to 100 and is capped at 1000.
func parseListParams(r *http.Request) (limit int64, skip int64) {
	limit = 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			skip = n
		}
	}
	return limit, skip
}

// equalityFilter builds a bson filter from the given query parameters.
// Only exact matches are supported.
func equalityFilter(r *http.Request, fields ...string) bson.M {
	filter := bson.M{}
	for _, field := range fields {
		if v := r.URL.Query().Get(field); v != "" {
			filter[field] = v
		}
	}
	return filter
}
