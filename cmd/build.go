package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/itsmostafa/gobook/internal/project"
	"github.com/itsmostafa/gobook/internal/renderer"
	"github.com/itsmostafa/gobook/internal/ui"
	"github.com/spf13/cobra"
)

var buildDest string

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Build the book",
	Long:  `Parse src/SUMMARY.md, create any missing chapter files and render the book as HTML.`,
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
		if buildDest != "" {
			p.SetDest(buildDest)
		}

		out := cmd.OutOrStdout()
		ui.FormatHeader(out, p.Book().Title, p.Src(), p.Dest())

		start := time.Now()
		r := renderer.NewHTML()
		result, err := p.Build(r)
		if err != nil {
			return err
		}

		ui.FormatBuildSummary(out, ui.BuildSummary{
			Renderer: r.Name(),
			Pages:    result.Pages,
			Skipped:  result.Skipped,
			Bytes:    result.Bytes,
			Dest:     relToCwd(p.Dest()),
			Duration: time.Since(start),
		})
		return nil
	},
}

func relToCwd(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}

func init() {
	// Output directory flag with env var fallback
	buildCmd.Flags().StringVarP(&buildDest, "dest", "d", os.Getenv("GOBOOK_DEST"), "Output directory (default from book.yaml)")

	rootCmd.AddCommand(buildCmd)
}
