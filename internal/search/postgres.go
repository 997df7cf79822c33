package search

import (
	"strings"

	"github.com/uptrace/bun"
)

const language = "english"

type Postgres struct{}

func NewPostgres() Postgres {
	return Postgres{}
}

// Filter appends a full-text predicate for text to q. The search text is
// always a bound parameter and goes through websearch_to_tsquery, which
// accepts arbitrary user input without syntax errors.
func (Postgres) Filter(q *bun.SelectQuery, kind Kind, text string) *bun.SelectQuery {
	text = strings.TrimSpace(text)
	doc, ok := documents[kind]
	if text == "" || !ok {
		return q
	}

	return q.Where(
		"to_tsvector(?, ?) @@ websearch_to_tsquery(?, ?)",
		language, bun.Safe(doc), language, text,
	)
}
