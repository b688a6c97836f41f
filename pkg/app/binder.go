package app

import (
	"github.com/byxorna/doclib/pkg/db"
	"github.com/byxorna/doclib/pkg/plugins/filter"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

const (
	ColumnName       = "name"
	ColumnTitle      = "title"
	ColumnModified   = "modified"
	ColumnModifiedBy = "modifiedBy"
	ColumnActions    = "actions"

	FilterLabel  = "Filter"
	RefreshLabel = "Refresh"
	OpenLabel    = "Open"
)

// Column describes one table column. Width is a hint in terminal cells.
type Column struct {
	Key   string
	Title string
	Width int
}

// Columns is the fixed column layout of the document table.
var Columns = []Column{
	{Key: ColumnName, Title: "Name", Width: 32},
	{Key: ColumnTitle, Title: "Title", Width: 28},
	{Key: ColumnModified, Title: "Modified", Width: 12},
	{Key: ColumnModifiedBy, Title: "Modified By", Width: 20},
	{Key: ColumnActions, Title: "Actions", Width: 24},
}

// ToolbarItem is a collection level control. Command is nil for controls
// that only change the presentation, like the filter.
type ToolbarItem struct {
	Label   string
	Command *v1.Command
}

// Row is one document. Cells line up with Columns.
type Row struct {
	Document v1.Document
	Cells    []string
	Commands []v1.Command
}

// Presentation is everything the surface needs to draw one frame.
type Presentation struct {
	Title        string
	Description  string
	Collection   v1.CollectionTarget
	ToolbarItems []ToolbarItem
	Columns      []Column
	Rows         []Row
	IsLoading    bool
	ErrorMessage string
	// Total counts loaded documents before filtering
	Total int
}

type BindOptions struct {
	Title       string
	Description string
	ActionLabel string
	Filter      string

	// Matcher, when set, is reused across binds so an unchanged term and
	// document set skips the fuzzy match
	Matcher *filter.Matcher
}

// Bind projects retrieval state onto the presentation. It has no side
// effects and keeps row order.
func Bind(s db.State, o BindOptions) Presentation {
	refresh := v1.Refresh()
	action := v1.CustomAction(nil)
	p := Presentation{
		Title:       o.Title,
		Description: o.Description,
		Collection:  s.Target.OrDefault(),
		ToolbarItems: []ToolbarItem{
			{Label: RefreshLabel, Command: &refresh},
			{Label: o.ActionLabel, Command: &action},
			{Label: FilterLabel},
		},
		Columns: Columns,
		Rows:    []Row{},
	}

	switch s.Phase {
	case db.Loading:
		p.IsLoading = true
	case db.Failed:
		p.ErrorMessage = s.Message
	case db.Loaded:
		p.Total = len(s.Documents)
		docs := s.Documents
		if o.Matcher != nil {
			docs = o.Matcher.Apply(o.Filter, docs)
		} else {
			docs = filter.Apply(o.Filter, docs)
		}
		for _, d := range docs {
			p.Rows = append(p.Rows, Row{
				Document: d,
				Cells:    []string{d.Name, d.Title, d.ModifiedAt, d.ModifiedBy, actionsCell(o.ActionLabel)},
				Commands: v1.RowCommands(d),
			})
		}
	}
	return p
}

func actionsCell(label string) string {
	if label == "" {
		return OpenLabel
	}
	return OpenLabel + " | " + label
}
