package search

import "strings"

type Memory struct{}

func NewMemory() Memory {
	return Memory{}
}

// Match reports whether every term of text is a case-insensitive substring
// of at least one of fields
func (Memory) Match(text string, fields ...string) bool {
	terms := Terms(text)
	if len(terms) == 0 {
		return true
	}

	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}

	for _, term := range terms {
		if !containsAny(lowered, term) {
			return false
		}
	}
	return true
}

func containsAny(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(f, term) {
			return true
		}
	}
	return false
}
