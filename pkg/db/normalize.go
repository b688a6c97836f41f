package db

import (
	"strings"
	"time"

	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

// DefaultDateLayout renders a calendar date the way en-US locales do.
const DefaultDateLayout = "1/2/2006"

// zonedLayouts carry their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// localLayouts have no offset and are read in the display location
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer maps raw records into documents. The zero value formats dates
// in the local time zone with DefaultDateLayout.
type Normalizer struct {
	Location   *time.Location
	DateLayout string
}

// Normalize maps one record with the zero Normalizer.
func Normalize(raw v1.RawRecord) v1.Document {
	return Normalizer{}.Normalize(raw)
}

// NormalizeAll maps records element-wise with the zero Normalizer.
func NormalizeAll(raws []v1.RawRecord) []v1.Document {
	return Normalizer{}.NormalizeAll(raws)
}

// Normalize never fails; missing fields get fallbacks.
func (n Normalizer) Normalize(raw v1.RawRecord) v1.Document {
	title := raw.Title
	if title == "" {
		title = v1.NoTitle
	}

	// a present editor relation is shown as is, even when its title is blank
	modifiedBy := v1.UnknownEditor
	if raw.Editor != nil {
		modifiedBy = raw.Editor.Title
	}

	modified, modifiedAt := n.formatDate(raw.Modified)

	return v1.Document{
		ID:         raw.ID,
		Title:      title,
		Name:       raw.FileLeafRef,
		ModifiedBy: modifiedBy,
		ModifiedAt: modifiedAt,
		Modified:   modified,
		Path:       raw.FileRef,
		Extension:  Extension(raw.FileLeafRef),
	}
}

// NormalizeAll preserves the order of raws.
func (n Normalizer) NormalizeAll(raws []v1.RawRecord) []v1.Document {
	docs := make([]v1.Document, len(raws))
	for i, raw := range raws {
		docs[i] = n.Normalize(raw)
	}
	return docs
}

// ParseTimestamp parses a Modified value. Timestamps without an offset are
// read in loc (time.Local when nil). ok is false when nothing matched.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, l := range zonedLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t, true
		}
	}
	for _, l := range localLayouts {
		if t, err := time.ParseInLocation(l, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate returns the parsed timestamp and its display form. Timestamps
// that do not parse are displayed verbatim with a zero time.
func (n Normalizer) formatDate(raw string) (time.Time, string) {
	loc := n.Location
	if loc == nil {
		loc = time.Local
	}
	layout := n.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, ok := ParseTimestamp(raw, loc)
	if !ok {
		return time.Time{}, strings.TrimSpace(raw)
	}
	t = t.In(loc)
	return t, t.Format(layout)
}

// Extension is the lower-cased suffix after the final dot of name, or the
// empty string when name has no dot.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
