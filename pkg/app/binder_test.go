package app

import (
	"errors"
	"testing"

	"github.com/byxorna/doclib/pkg/db"
	"github.com/byxorna/doclib/pkg/plugins/filter"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bindOpts = BindOptions{Title: "Team Docs", Description: "Shared files", ActionLabel: "Archive"}

func toolbarLabels(p Presentation) []string {
	out := []string{}
	for _, item := range p.ToolbarItems {
		out = append(out, item.Label)
	}
	return out
}

func TestBindLoading(t *testing.T) {
	r := db.NewRetrieval("Documents")
	r.Refresh()
	p := Bind(r.State(), bindOpts)
	assert.True(t, p.IsLoading)
	assert.Empty(t, p.Rows)
	assert.Empty(t, p.ErrorMessage)
	assert.Equal(t, []string{RefreshLabel, "Archive", FilterLabel}, toolbarLabels(p))
}

func TestBindIdle(t *testing.T) {
	p := Bind(db.NewRetrieval("").State(), bindOpts)
	assert.False(t, p.IsLoading)
	assert.Empty(t, p.Rows)
	assert.Empty(t, p.ErrorMessage)
	assert.Equal(t, v1.DefaultCollection, p.Collection)
}

func TestBindFailed(t *testing.T) {
	r := db.NewRetrieval("Documents")
	ticket := r.Refresh()
	r.Reject(ticket, errors.New("Error fetching documents: Forbidden"))

	p := Bind(r.State(), bindOpts)
	assert.False(t, p.IsLoading)
	assert.Empty(t, p.Rows)
	assert.Equal(t, "Error fetching documents: Forbidden", p.ErrorMessage)
	assert.Len(t, p.ToolbarItems, 3)
}

func loaded(t *testing.T, docs []v1.Document) db.State {
	t.Helper()
	r := db.NewRetrieval("Documents")
	require.True(t, r.Resolve(r.Refresh(), docs))
	return r.State()
}

func TestBindLoadedKeepsOrder(t *testing.T) {
	docs := []v1.Document{
		{ID: "3", Name: "c.docx", Title: "Report", ModifiedAt: "3/3/2024", ModifiedBy: "Ann", Path: "/c.docx"},
		{ID: "1", Name: "a.pdf", Title: "No Title", ModifiedAt: "3/1/2024", ModifiedBy: "Bob", Path: "/a.pdf"},
		{ID: "2", Name: "b.xlsx", Title: "Budget", ModifiedAt: "3/2/2024", ModifiedBy: "Ann", Path: "/b.xlsx"},
	}
	p := Bind(loaded(t, docs), bindOpts)

	assert.False(t, p.IsLoading)
	assert.Empty(t, p.ErrorMessage)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, 3, p.Total)
	for i, row := range p.Rows {
		assert.Equal(t, docs[i], row.Document)
		assert.Len(t, row.Cells, len(p.Columns))
		require.Len(t, row.Commands, 2)
		assert.Equal(t, v1.OpenCommand, row.Commands[0].Kind)
		assert.Equal(t, docs[i].Path, row.Commands[0].Path())
		assert.Equal(t, v1.CustomActionCommand, row.Commands[1].Kind)
	}
	assert.Equal(t, []string{"c.docx", "Report", "3/3/2024", "Ann", "Open | Archive"}, p.Rows[0].Cells)
}

func TestBindLoadedEmpty(t *testing.T) {
	p := Bind(loaded(t, nil), bindOpts)
	assert.False(t, p.IsLoading)
	assert.Empty(t, p.ErrorMessage)
	assert.NotNil(t, p.Rows)
	assert.Empty(t, p.Rows)
}

func TestBindFilter(t *testing.T) {
	docs := []v1.Document{
		{ID: "3", Name: "Report-Q3.docx", Title: "Report", ModifiedBy: "Ann"},
		{ID: "1", Name: "Budget.xlsx", Title: "No Title", ModifiedBy: "Bob"},
		{ID: "2", Name: "Report-Q1.docx", Title: "Report", ModifiedBy: "Ann"},
	}
	opts := bindOpts
	opts.Filter = "report"
	p := Bind(loaded(t, docs), opts)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, v1.ID("3"), p.Rows[0].Document.ID)
	assert.Equal(t, v1.ID("2"), p.Rows[1].Document.ID)
	assert.Equal(t, 3, p.Total)
}

func TestBindFilterWithMatcher(t *testing.T) {
	docs := []v1.Document{
		{ID: "3", Name: "Report-Q3.docx", ModifiedAt: "3/3/2024"},
		{ID: "1", Name: "Budget.xlsx", ModifiedAt: "3/1/2024"},
	}
	opts := bindOpts
	opts.Filter = "report"
	opts.Matcher = &filter.Matcher{}

	p := Bind(loaded(t, docs), opts)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, p.Rows, Bind(loaded(t, docs), opts).Rows)

	// a refreshed set must not be served from the previous match
	renamed := []v1.Document{
		{ID: "3", Name: "Summary-Q3.docx", ModifiedAt: "3/4/2024"},
		{ID: "1", Name: "Budget.xlsx", ModifiedAt: "3/1/2024"},
	}
	assert.Empty(t, Bind(loaded(t, renamed), opts).Rows)

	opts.Filter = "budget"
	p = Bind(loaded(t, renamed), opts)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, v1.ID("1"), p.Rows[0].Document.ID)
}

func TestBindColumns(t *testing.T) {
	p := Bind(db.State{}, bindOpts)
	keys := []string{}
	for _, c := range p.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{ColumnName, ColumnTitle, ColumnModified, ColumnModifiedBy, ColumnActions}, keys)
}
