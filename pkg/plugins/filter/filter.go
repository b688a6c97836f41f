package filter

import (
	"sort"

	"github.com/byxorna/doclib/pkg/text"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/sahilm/fuzzy"
)

// documents adapts a slice of documents to fuzzy.Source over their
// normalized filter values
type documents []string

func (d documents) String(i int) string { return d[i] }
func (d documents) Len() int            { return len(d) }

// Apply narrows docs to the ones matching term. The relative order of docs is
// kept; fuzzy ranking only decides membership. An empty term returns docs.
func Apply(term string, docs []v1.Document) []v1.Document {
	needle, err := text.Normalize(term)
	if err != nil || needle == "" {
		return docs
	}

	hay := make(documents, len(docs))
	for i, d := range docs {
		normalized, err := text.Normalize(d.FilterValue())
		if err != nil {
			normalized = d.FilterValue()
		}
		hay[i] = normalized
	}

	matches := fuzzy.FindFrom(needle, hay)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })

	filtered := make([]v1.Document, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, docs[m.Index])
	}
	return filtered
}

// Matcher remembers the last term and result so re-rendering with an
// unchanged term and document set does not re-run the matcher.
type Matcher struct {
	term   string
	source []v1.Document
	result []v1.Document
}

func (m *Matcher) Apply(term string, docs []v1.Document) []v1.Document {
	if m.result != nil && term == m.term && sameDocuments(docs, m.source) {
		return m.result
	}
	m.term = term
	m.source = docs
	m.result = Apply(term, docs)
	return m.result
}

func sameDocuments(a, b []v1.Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].ModifiedAt != b[i].ModifiedAt || a[i].FilterValue() != b[i].FilterValue() {
			return false
		}
	}
	return true
}
