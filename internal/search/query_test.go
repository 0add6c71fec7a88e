package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Query
	}{
		{name: "empty", raw: "", want: Query{}},
		{name: "whitespace only", raw: "  \t ", want: Query{}},
		{name: "bare words lowercased", raw: "Invoice  W2", want: Query{Optional: []string{"invoice", "w2"}}},
		{name: "operators", raw: "+tax -draft", want: Query{Required: []string{"tax"}, Excluded: []string{"draft"}}},
		{
			name: "operators inside a token",
			raw:  "invoice+2024-draft",
			want: Query{Required: []string{"2024"}, Optional: []string{"invoice"}, Excluded: []string{"draft"}},
		},
		{name: "dangling operators ignored", raw: "+ - tax", want: Query{Optional: []string{"tax"}}},
		{name: "duplicates collapsed", raw: "+tax +TAX", want: Query{Required: []string{"tax"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.raw))
		})
	}
}

func TestQuery_Included(t *testing.T) {
	q := ParseQuery("+a b -c")
	assert.Equal(t, []string{"a", "b"}, q.Included())
	assert.False(t, q.IsEmpty())
	assert.True(t, ParseQuery("").IsEmpty())
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		doc    string
		labels []string
		want   bool
	}{
		{name: "draft label excludes", query: "invoice+2024-draft", doc: "2024 Invoice Final", labels: []string{"draft"}, want: false},
		{name: "without excluded label", query: "invoice+2024-draft", doc: "2024 Invoice Final", want: true},
		{name: "excluded term in name", query: "-final", doc: "2024 Invoice Final", want: false},
		{name: "excluded only keeps others", query: "-draft", doc: "W2", want: true},
		{name: "required all", query: "+tax +2025", doc: "Tax 2025 return", want: true},
		{name: "required missing one", query: "+tax +2024", doc: "Tax 2025 return", want: false},
		{name: "required via label", query: "+tax", doc: "return.pdf", labels: []string{"Tax"}, want: true},
		{name: "label must be equal, not substring", query: "+tax", doc: "return.pdf", labels: []string{"taxes"}, want: false},
		{name: "any bare word", query: "lease invoice", doc: "Invoice March", want: true},
		{name: "no bare word", query: "lease deed", doc: "Invoice March", want: false},
		{name: "bare alternative to required", query: "+passport invoice", doc: "Invoice March", want: true},
		{name: "required alternative to bare", query: "+invoice passport", doc: "Invoice March", want: true},
		{name: "neither group", query: "+passport visa", doc: "Invoice March", want: false},
		{name: "empty query", query: "", doc: "anything", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.doc, tt.labels, ParseQuery(tt.query)))
		})
	}
}

func TestMatches_RequiredOnlyProperty(t *testing.T) {
	names := []string{"tax 2025 w2", "tax 2024", "2025 insurance", "Tax Receipt 2025", "misc"}
	q := ParseQuery("+tax +2025")
	for _, n := range names {
		lower := strings.ToLower(n)
		want := strings.Contains(lower, "tax") && strings.Contains(lower, "2025")
		assert.Equal(t, want, Matches(n, nil, q), n)
	}
}

func TestMatches_ExcludedProperty(t *testing.T) {
	docs := []struct {
		name   string
		labels []string
	}{
		{"invoice draft", nil},
		{"invoice", []string{"draft"}},
		{"invoice final", []string{"paid"}},
		{"contract", nil},
	}
	q := ParseQuery("invoice contract -draft -paid")
	for _, d := range docs {
		if !Matches(d.name, d.labels, q) {
			continue
		}
		for _, ex := range q.Excluded {
			assert.NotContains(t, d.name, ex)
			assert.NotContains(t, d.labels, ex)
		}
	}
}
