package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/itsmostafa/gobook/internal/book"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// sectionStyle for section numbers
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// affixStyle for front and back matter
	affixStyle = lipgloss.NewStyle().
			Italic(true)

	// draftStyle for entries without a source file
	draftStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)
)

// FormatHeader renders the project header
func FormatHeader(w io.Writer, title, src, dest string) {
	if title == "" {
		title = "(untitled)"
	}
	content := fmt.Sprintf("%s %s\n%s %s\n%s %s",
		dimStyle.Render("Book:"), titleStyle.Render(title),
		dimStyle.Render("Source:"), src,
		dimStyle.Render("Output:"), dest,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatOutline renders the numbered outline, one entry per line
func FormatOutline(w io.Writer, items []book.Item) {
	it := book.NewIterator(items)
	for label, item := range it.All() {
		indent := strings.Repeat("  ", it.Depth())

		switch v := item.(type) {
		case *book.Spacer:
			fmt.Fprintln(w, indent+dimStyle.Render("────────"))
		case *book.ChapterItem:
			name := v.Chapter.Name
			if label != "" {
				name = sectionStyle.Render(label+".") + " " + name
			}
			fmt.Fprintln(w, indent+name+pathSuffix(&v.Chapter))
		case *book.AffixItem:
			fmt.Fprintln(w, indent+affixStyle.Render(v.Chapter.Name)+pathSuffix(&v.Chapter))
		}
	}
}

func pathSuffix(ch *book.Chapter) string {
	if !ch.HasFile() {
		return " " + draftStyle.Render("(draft)")
	}
	return " " + dimStyle.Render(ch.Path)
}

// BuildSummary describes a finished build
type BuildSummary struct {
	Renderer string
	Pages    int
	Skipped  int
	Bytes    int64
	Dest     string
	Duration time.Duration
}

// FormatBuildSummary renders the build summary box
func FormatBuildSummary(w io.Writer, s BuildSummary) {
	line1 := fmt.Sprintf("%s %s  %s %d  %s %d",
		dimStyle.Render("Renderer:"), s.Renderer,
		dimStyle.Render("Pages:"), s.Pages,
		dimStyle.Render("Drafts:"), s.Skipped,
	)
	line2 := fmt.Sprintf("%s %s (%s)  %s %.2fs  %s",
		dimStyle.Render("Output:"), s.Dest, humanize.Bytes(uint64(s.Bytes)),
		dimStyle.Render("Took:"), s.Duration.Seconds(),
		successStyle.Render("OK"),
	)

	content := titleStyle.Render("Build Complete") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatCreated writes a created-file indicator
func FormatCreated(w io.Writer, path string) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), path)
}
