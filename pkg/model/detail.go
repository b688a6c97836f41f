package model

import (
	"fmt"
	"log"
	"strings"

	"github.com/byxorna/doclib/pkg/text"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/byxorna/doclib/pkg/ui"
	"github.com/charmbracelet/glamour"
)

// detailMarkdown describes doc as a markdown document for the detail pager.
func detailMarkdown(doc v1.Document) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s %s\n\n", text.ExtensionIcon(doc.Extension), doc.Name)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	row := func(k, v string) {
		fmt.Fprintf(&b, "| %s | %s |\n", k, strings.ReplaceAll(v, "|", `\|`))
	}
	row("Title", doc.Title)
	modified := doc.ModifiedAt
	if !doc.Modified.IsZero() {
		modified = fmt.Sprintf("%s (%s)", doc.ModifiedAt, text.RelativeTime(doc.Modified))
	}
	row("Modified", modified)
	row("Modified By", doc.ModifiedBy)
	row("Type", doc.Extension)
	row("ID", doc.ID.String())
	fmt.Fprintf(&b, "\n`%s`\n", doc.Path)
	return b.String()
}

func glamourStyle() string {
	if !ui.DarkBackground() {
		return "light"
	}
	return "dark"
}

// renderDetail renders doc for a pager width cells wide, falling back to the
// raw markdown if glamour cannot render it.
func renderDetail(doc v1.Document, width int) string {
	md := detailMarkdown(doc)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle()),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		log.Printf("unable to build markdown renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("unable to render document details: %v", err)
		return md
	}
	return out
}
