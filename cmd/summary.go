package cmd

import (
	"encoding/json"

	"github.com/itsmostafa/gobook/internal/book"
	"github.com/itsmostafa/gobook/internal/project"
	"github.com/itsmostafa/gobook/internal/ui"
	"github.com/spf13/cobra"
)

var summaryJSON bool

// summaryEntry is the JSON form of one outline entry.
type summaryEntry struct {
	Section string    `json:"section,omitempty"`
	Kind    book.Kind `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Path    string    `json:"path,omitempty"`
	Depth   int       `json:"depth"`
}

var summaryCmd = &cobra.Command{
	Use:   "summary [dir]",
	Short: "Print the numbered outline",
	Long:  `Parse src/SUMMARY.md and print every entry in reading order with its section number.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}

		p, err := project.Open(bookDir(args), log)
		if err != nil {
			return err
		}
		if err := p.ParseSummary(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !summaryJSON {
			ui.FormatOutline(out, p.Book().Content)
			return nil
		}

		entries := []summaryEntry{}
		for _, e := range book.Flatten(p.Book().Content) {
			se := summaryEntry{Section: e.Section, Kind: book.KindOf(e.Item), Depth: e.Depth}
			if ch, ok := book.ChapterOf(e.Item); ok {
				se.Name = ch.Name
				se.Path = ch.Path
			}
			entries = append(entries, se)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print the outline as JSON")

	rootCmd.AddCommand(summaryCmd)
}
