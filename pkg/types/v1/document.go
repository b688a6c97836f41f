package v1

import "time"

const (
	// NoTitle is shown for records without a title
	NoTitle = "No Title"
	// UnknownEditor is shown for records without an editor relation
	UnknownEditor = "Unknown"
)

// Editor is the expanded last-editor relation of a record.
type Editor struct {
	Title string `json:"Title"`
}

// RawRecord is one list item as the backend returns it, before normalization.
// Any field may be missing from a structurally valid response.
type RawRecord struct {
	ID          ID      `json:"Id"`
	Title       string  `json:"Title"`
	FileLeafRef string  `json:"FileLeafRef"`
	Modified    string  `json:"Modified"`
	FileRef     string  `json:"FileRef"`
	Editor      *Editor `json:"Editor,omitempty"`
}

// Document is the normalized view model the presentation layer renders.
type Document struct {
	ID         ID        `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Name       string    `json:"name" yaml:"name"`
	ModifiedBy string    `json:"modifiedBy" yaml:"modifiedBy"`
	ModifiedAt string    `json:"modifiedAt" yaml:"modifiedAt"`
	Modified   time.Time `json:"-" yaml:"-"`
	Path       string    `json:"path" yaml:"path"`
	Extension  string    `json:"extension" yaml:"extension"`
}

// FilterValue is the text a filter is matched against.
func (d Document) FilterValue() string {
	return d.Name + " " + d.Title + " " + d.ModifiedBy
}
