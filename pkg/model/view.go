package model

import (
	"fmt"
	"strings"

	"github.com/byxorna/doclib/pkg/app"
	"github.com/byxorna/doclib/pkg/db"
	"github.com/byxorna/doclib/pkg/text"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/charmbracelet/lipgloss"
)

const loadingMessage = "Loading documents..."

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.headerView(),
		m.toolbarView(),
		"",
		m.bodyView(),
		m.statusView(),
		m.help.View(m.keys),
	}
	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) headerView() string {
	p := m.presentation
	parts := []string{headerStyle.Render(p.Title)}
	if p.Description != "" {
		parts = append(parts, descriptionStyle.Render(p.Description))
	}
	parts = append(parts, collectionStyle.Render(p.Collection.String()))
	header := strings.Join(parts, " ")
	if m.width > 0 {
		header = text.Truncate(header, m.width-2)
	}
	return header
}

func (m Model) toolbarView() string {
	p := m.presentation
	keys := []string{
		m.keys.Refresh.Help().Key,
		m.keys.Toolbar.Help().Key,
		m.keys.Filter.Help().Key,
	}
	items := []string{}
	for i, item := range p.ToolbarItems {
		label := item.Label
		if label == app.FilterLabel {
			switch {
			case m.mode == modeFilter:
				items = append(items, toolbarKeyStyle.Render("["+keys[i]+"]")+" "+m.filter.View())
				continue
			case m.filter.Value() != "":
				label = fmt.Sprintf("%s: %s", label, m.filter.Value())
			}
		}
		k := ""
		if i < len(keys) {
			k = toolbarKeyStyle.Render("["+keys[i]+"]") + " "
		}
		items = append(items, k+toolbarLabelStyle.Render(label))
	}
	return strings.Join(items, "  ")
}

func (m Model) bodyView() string {
	p := m.presentation
	switch {
	case p.IsLoading:
		return m.spinner.View() + " " + loadingMessage
	case p.ErrorMessage != "":
		return statusErrorStyle.Render("Error: " + p.ErrorMessage)
	case m.mode == modeDetail:
		return m.detail.View()
	case len(p.Rows) == 0 && p.Total > 0:
		return countStyle.Render("No documents match the filter")
	case len(p.Rows) == 0 && m.State().Phase == db.Loaded:
		return countStyle.Render("No documents in " + p.Collection.String())
	case len(p.Rows) == 0:
		return ""
	}
	if m.mode == modeMenu {
		return lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), " ", m.menuView())
	}
	return m.table.View()
}

func (m Model) menuView() string {
	rows := m.presentation.Rows
	if m.menuRow >= len(rows) {
		return ""
	}
	doc := rows[m.menuRow].Document
	labels := []string{
		text.StyleFilteredText(doc.Name, m.filter.Value(), m.highlight) + " " + text.Badge(doc.Extension),
	}
	for i, c := range rows[m.menuRow].Commands {
		label := m.commandLabel(c)
		if i == m.menuIndex {
			labels = append(labels, menuSelectedStyle.Render("> "+label))
		} else {
			labels = append(labels, "  "+label)
		}
	}
	return menuStyle.Render(strings.Join(labels, "\n"))
}

func (m Model) statusView() string {
	if m.statusMessage != "" {
		if m.statusIsError {
			return statusErrorStyle.Render(m.statusMessage)
		}
		return statusStyle.Render(m.statusMessage)
	}
	p := m.presentation
	if p.IsLoading || p.ErrorMessage != "" {
		return ""
	}
	if len(p.Rows) != p.Total {
		return countStyle.Render(fmt.Sprintf("%d of %d documents", len(p.Rows), p.Total))
	}
	return countStyle.Render(fmt.Sprintf("%d documents", p.Total))
}

func (m Model) commandLabel(c v1.Command) string {
	switch c.Kind {
	case v1.OpenCommand:
		return app.OpenLabel
	case v1.CustomActionCommand:
		return m.cfg.CustomAction.Label
	case v1.RefreshCommand:
		return app.RefreshLabel
	}
	return c.Kind.String()
}
