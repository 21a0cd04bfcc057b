// Package summary parses a SUMMARY.md outline into a book.Item tree.
//
// The outline is a Markdown nested list of links:
//
//	# Summary
//
//	[Introduction](intro.md)
//
//	- [Getting started](start.md)
//	  - [Installing](start/install.md)
//	- [Reference](ref.md)
//
//	---
//
//	- [Appendix](appendix.md)
//
// Bare links before the first list item are front matter, list items are
// numbered chapters, and anything after a bare link or a column-0 rule that
// follows the chapters is back matter. Separator lines become spacers.
package summary

import (
	"errors"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/itsmostafa/gobook/internal/book"
)

const tabWidth = 4

var (
	headingPattern   = regexp.MustCompile(`^#{1,6}(\s+.*)?$`)
	listItemPattern  = regexp.MustCompile(`^([-*+]|\d{1,9}[.)])(?:\s+(.*))?$`)
	separatorPattern = regexp.MustCompile(`^(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
)

// phase tracks where a top-level entry sits relative to the numbered chapters.
type phase int

const (
	phasePrefix phase = iota
	phaseNumbered
	phaseSuffix
)

// entry is an open chapter or affix that later lines may nest under.
type entry struct {
	item     book.Item
	indent   int
	label    string
	numbered bool
	children int // numbered children seen so far
}

type parser struct {
	items    []book.Item
	stack    []*entry
	step     int // indentation width of one nesting level, fixed by the first nested line
	phase    phase
	chapters int // numbered top-level chapters seen so far
}

// Load reads and parses the summary at path.
func Load(path string) ([]book.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: KindIO, Path: path, Err: err}
	}

	items, err := Parse(string(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return items, nil
}

// Parse builds the outline from the text of a summary. On error no partial
// outline is returned and the error is a *ParseError.
func Parse(text string) ([]book.Item, error) {
	p := &parser{}
	text = strings.TrimPrefix(text, "\ufeff")

	inComment := false
	for i, raw := range strings.Split(text, "\n") {
		lineNum := i + 1
		line := strings.TrimRight(raw, " \t\r")

		indent, content := splitIndent(line)
		if content == "" {
			continue
		}

		// HTML comments are skipped, including multi-line ones.
		if inComment {
			inComment = !strings.Contains(content, "-->")
			continue
		}
		if strings.HasPrefix(content, "<!--") {
			inComment = !strings.Contains(content[4:], "-->")
			continue
		}

		if err := p.line(lineNum, line, indent, content); err != nil {
			return nil, err
		}
	}

	return p.items, nil
}

func (p *parser) line(lineNum int, raw string, indent int, content string) error {
	if headingPattern.MatchString(content) {
		return nil
	}

	// "- ---" is a list-form spacer, while "- - -" is a rule whose first
	// dash happens to look like a marker.
	m := listItemPattern.FindStringSubmatch(content)
	if m != nil && separatorPattern.MatchString(strings.TrimSpace(m[2])) {
		return p.spacer(lineNum, raw, indent, false)
	}
	if separatorPattern.MatchString(content) {
		return p.spacer(lineNum, raw, indent, indent == 0)
	}

	if m != nil {
		body := strings.TrimSpace(m[2])
		if body == "" {
			return malformed(lineNum, raw, "empty list item")
		}
		name, path, err := parseLink(body)
		if err != nil {
			if err == errNotLink {
				return malformed(lineNum, raw, "list item must contain a single link")
			}
			return malformed(lineNum, raw, err.Error())
		}
		return p.listItem(lineNum, raw, indent, name, path)
	}

	name, path, err := parseLink(content)
	switch {
	case err == nil:
		if indent != 0 {
			return malformed(lineNum, raw, "indented link without a list marker")
		}
		return p.bareLink(name, path)
	case looksLikeLink(content):
		return malformed(lineNum, raw, err.Error())
	default:
		// Prose between list entries carries no structure.
		return nil
	}
}

// resolve finds the parent for a line at indent, popping closed entries.
// A nil parent means the top level.
func (p *parser) resolve(lineNum int, raw string, indent int) (*entry, error) {
	if len(p.stack) == 0 {
		if indent != 0 {
			return nil, malformed(lineNum, raw, "indented entry has no parent")
		}
		return nil, nil
	}

	top := p.stack[len(p.stack)-1]
	if indent > top.indent {
		if p.step == 0 && indent-top.indent <= tabWidth {
			p.step = indent - top.indent
		}
		if indent != top.indent+p.step {
			return nil, malformed(lineNum, raw, "indentation skips a nesting level")
		}
		return top, nil
	}

	for len(p.stack) > 0 && p.stack[len(p.stack)-1].indent > indent {
		p.stack = p.stack[:len(p.stack)-1]
	}
	if len(p.stack) == 0 || p.stack[len(p.stack)-1].indent != indent {
		return nil, malformed(lineNum, raw, "indentation does not match any open list level")
	}

	// Same level: the open entry is a sibling, not a parent.
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		return nil, nil
	}
	return p.stack[len(p.stack)-1], nil
}

func (p *parser) listItem(lineNum int, raw string, indent int, name, path string) error {
	parent, err := p.resolve(lineNum, raw, indent)
	if err != nil {
		return err
	}

	ch := book.Chapter{Name: name, Path: path}
	var e *entry

	if parent == nil {
		if p.phase == phaseSuffix {
			e = &entry{item: &book.AffixItem{Chapter: ch}}
		} else {
			p.phase = phaseNumbered
			p.chapters++
			label := strconv.Itoa(p.chapters)
			e = &entry{item: &book.ChapterItem{Label: label, Chapter: ch}, label: label, numbered: true}
		}
		p.items = append(p.items, e.item)
	} else {
		var label string
		if parent.numbered {
			parent.children++
			label = parent.label + "." + strconv.Itoa(parent.children)
		}
		e = &entry{item: &book.ChapterItem{Label: label, Chapter: ch}, label: label, numbered: parent.numbered}
		appendChild(parent, e.item)
	}

	e.indent = indent
	p.stack = append(p.stack, e)
	return nil
}

func (p *parser) bareLink(name, path string) error {
	// Bare links only occur at column 0, so every open entry closes.
	p.stack = p.stack[:0]
	if p.phase == phaseNumbered {
		p.phase = phaseSuffix
	}

	e := &entry{item: &book.AffixItem{Chapter: book.Chapter{Name: name, Path: path}}}
	p.items = append(p.items, e.item)
	p.stack = append(p.stack, e)
	return nil
}

// spacer attaches a separator at the depth given by indent. A rule at
// column 0 that is not written as a list item ends the numbered chapters.
func (p *parser) spacer(lineNum int, raw string, indent int, rule bool) error {
	parent, err := p.resolveSpacer(lineNum, raw, indent)
	if err != nil {
		return err
	}

	if parent == nil {
		p.items = append(p.items, &book.Spacer{})
		if rule && p.phase == phaseNumbered {
			p.phase = phaseSuffix
		}
		return nil
	}
	appendChild(parent, &book.Spacer{})
	return nil
}

// resolveSpacer is resolve for lines that never become a parent themselves.
func (p *parser) resolveSpacer(lineNum int, raw string, indent int) (*entry, error) {
	if indent == 0 {
		p.stack = p.stack[:0]
		return nil, nil
	}

	// resolve leaves the parent on top of the stack, so following siblings
	// still nest under it.
	return p.resolve(lineNum, raw, indent)
}

func appendChild(parent *entry, item book.Item) {
	ch, _ := book.ChapterOf(parent.item)
	ch.SubItems = append(ch.SubItems, item)
}

// splitIndent returns the indentation width in columns and the rest of line.
func splitIndent(line string) (int, string) {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width, line[i:]
		}
	}
	return width, ""
}
