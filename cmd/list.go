package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/byxorna/doclib/pkg/app"
	"github.com/byxorna/doclib/pkg/config"
	"github.com/byxorna/doclib/pkg/db"
	"github.com/byxorna/doclib/pkg/text"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	listFilter string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the documents of the library once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		closeLog, err := setupLogging(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		s, err := newSession(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		d, err := s.dispatcher(cfg)
		if err != nil {
			return err
		}
		return runList(cmd.OutOrStdout(), cfg, d, listFilter, listJSON)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print documents as JSON")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "only print documents matching this fuzzy filter")
	root.AddCommand(listCmd)
}

// runList runs exactly one retrieval cycle and prints the bound rows.
func runList(w io.Writer, cfg *config.Config, d *app.Dispatcher, filter string, asJSON bool) error {
	r := db.NewRetrieval(cfg.Collection())
	switch msg := d.Retrieve(r.Refresh())().(type) {
	case app.RetrievedMsg:
		r.Resolve(msg.Ticket, msg.Documents)
	case app.RetrievalFailedMsg:
		r.Reject(msg.Ticket, msg.Err)
	}

	p := app.Bind(r.State(), app.BindOptions{
		Title:       cfg.Title,
		Description: cfg.Description,
		ActionLabel: cfg.CustomAction.Label,
		Filter:      filter,
	})
	if p.ErrorMessage != "" {
		return errors.New(p.ErrorMessage)
	}

	if asJSON {
		docs := make([]v1.Document, 0, len(p.Rows))
		for _, row := range p.Rows {
			docs = append(docs, row.Document)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(p.Rows) == 0 {
		fmt.Fprintf(w, "(no documents in %s)\n", p.Collection)
		return nil
	}
	// the actions column only makes sense interactively
	cols := p.Columns[:len(p.Columns)-1]
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}
	fmt.Fprintln(w, formatRow(header, cols))
	for _, row := range p.Rows {
		fmt.Fprintln(w, formatRow(row.Cells[:len(cols)], cols))
	}
	return nil
}

func formatRow(cells []string, cols []app.Column) string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		width := cols[i].Width
		if runewidth.StringWidth(cell) > width {
			cell = text.Truncate(cell, width)
		}
		out[i] = runewidth.FillRight(cell, width)
	}
	return strings.TrimRight(strings.Join(out, "  "), " ")
}
