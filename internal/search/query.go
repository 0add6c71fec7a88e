// Package search implements the free-text query operators and the facet filter pipeline
// used by the documents listing and vault-wide search.
package search

import (
	"regexp"
	"slices"
	"strings"
)

// A term is an optional operator followed by a run of characters that are neither
// whitespace nor an operator, so "invoice+2024-draft" yields three terms.
var termPattern = regexp.MustCompile(`([+-]?)([^\s+-]+)`)

// Query is a parsed search string. All terms are lowercase and unique within their set.
type Query struct {
	// Required terms must all match.
	Required []string `json:"required"`
	// Optional terms are bare words; any one of them may match.
	Optional []string `json:"optional"`
	// Excluded terms must not match.
	Excluded []string `json:"excluded"`
}

// ParseQuery splits raw into required, optional and excluded terms. Every string is valid input.
func ParseQuery(raw string) Query {
	var q Query
	for _, m := range termPattern.FindAllStringSubmatch(strings.ToLower(raw), -1) {
		term := m[2]
		switch m[1] {
		case "+":
			q.Required = appendUnique(q.Required, term)
		case "-":
			q.Excluded = appendUnique(q.Excluded, term)
		default:
			q.Optional = appendUnique(q.Optional, term)
		}
	}
	return q
}

// Included returns required and optional terms together.
func (q Query) Included() []string {
	return append(slices.Clone(q.Required), q.Optional...)
}

// IsEmpty reports whether the query filters nothing.
func (q Query) IsEmpty() bool {
	return len(q.Required) == 0 && len(q.Optional) == 0 && len(q.Excluded) == 0
}

// Matches evaluates q against a display name and an optional label set.
//
// A candidate never matches when any excluded term hits. Otherwise, with only
// required terms all of them must hit; with only optional terms at least one
// must hit; with both kinds, satisfying either group is enough. A query with
// only excluded terms matches everything else.
func Matches(name string, labels []string, q Query) bool {
	name = strings.ToLower(name)
	hit := func(term string) bool {
		if strings.Contains(name, term) {
			return true
		}
		return slices.ContainsFunc(labels, func(l string) bool { return strings.EqualFold(l, term) })
	}

	if slices.ContainsFunc(q.Excluded, hit) {
		return false
	}
	hasRequired, hasOptional := len(q.Required) > 0, len(q.Optional) > 0
	allRequired := hasRequired && !slices.ContainsFunc(q.Required, func(t string) bool { return !hit(t) })
	anyOptional := hasOptional && slices.ContainsFunc(q.Optional, hit)

	switch {
	case hasRequired && hasOptional:
		return allRequired || anyOptional
	case hasRequired:
		return allRequired
	case hasOptional:
		return anyOptional
	default:
		return true
	}
}

func appendUnique(terms []string, term string) []string {
	if slices.Contains(terms, term) {
		return terms
	}
	return append(terms, term)
}
