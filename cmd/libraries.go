package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List the document libraries of the site",
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
		w := cmd.OutOrStdout()

		if s.local != nil {
			names, err := s.local.Collections()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(w, n)
			}
			return nil
		}

		libs, err := s.remote.Libraries(cmd.Context())
		if err != nil {
			return err
		}
		width := len("Library")
		for _, l := range libs {
			width = max(width, runewidth.StringWidth(l.Title))
		}
		fmt.Fprintf(w, "%s  %8s  %s\n", runewidth.FillRight("Library", width), "Items", "Last Modified")
		for _, l := range libs {
			fmt.Fprintf(w, "%s  %8s  %s\n",
				runewidth.FillRight(l.Title, width),
				humanize.Comma(int64(l.ItemCount)),
				strings.TrimSpace(l.LastItemModifiedDate))
		}
		return nil
	},
}

func init() {
	root.AddCommand(librariesCmd)
}
