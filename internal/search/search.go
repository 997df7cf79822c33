// Package search matches free-text queries against the indexed fields of
// spots and listings.
//
// Postgres builds a full-text predicate onto a bun query; Memory evaluates
// the same kind of match in process for the memory storage driver. Both
// treat blank input as "match everything".
package search

import "strings"

// Kind selects which indexed document a search runs against
type Kind string

const (
	KindSpot    Kind = "spot"
	KindListing Kind = "listing"
)

// documents are the tsvector expressions backing the GIN indexes in the
// initial migration; they must stay byte-identical for the planner to use
// the index.
var documents = map[Kind]string{
	KindSpot:    "title || ' ' || description",
	KindListing: "title || ' ' || description || ' ' || city",
}

// Terms splits text on whitespace and lower-cases each term
func Terms(text string) []string {
	fields := strings.Fields(text)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}
