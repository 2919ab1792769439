// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package series

import (
	"strconv"

	"github.com/serista/serista/pkg/query"
	"github.com/serista/serista/pkg/textnorm"
)

// Filter narrows a series list, either server-side (as query parameters) or
// locally against an already fetched copy.
type Filter struct {
	// Title matches case- and accent-insensitively as a substring.
	Title string
	// Status restricts to one watch state when non-empty.
	Status Status
	// MinRating and MaxRating bound the rating inclusively when set.
	MinRating *int
	MaxRating *int
}

// Query encodes the filter as a "?"-prefixed query string.
// Unset fields are omitted entirely; an empty filter yields "".
func (f Filter) Query() string {
	params := map[string]string{
		"title":  f.Title,
		"status": string(f.Status),
	}
	if f.MinRating != nil {
		params["minRating"] = strconv.Itoa(*f.MinRating)
	}
	if f.MaxRating != nil {
		params["maxRating"] = strconv.Itoa(*f.MaxRating)
	}
	return query.Build(params)
}

// Match reports whether s satisfies every set criterion.
func (f Filter) Match(s Series) bool {
	if !textnorm.Contains(s.Title, f.Title) {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.MinRating != nil && s.Rating < *f.MinRating {
		return false
	}
	if f.MaxRating != nil && s.Rating > *f.MaxRating {
		return false
	}
	return true
}

// Apply returns the members of list satisfying f, preserving order.
func Apply(list []Series, f Filter) []Series {
	filtered := make([]Series, 0, len(list))
	for _, s := range list {
		if f.Match(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
