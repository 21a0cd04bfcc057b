package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/itsmostafa/gobook/internal/book"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// HTML renders every chapter to a standalone page with a numbered sidebar.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates the HTML renderer.
func NewHTML() *HTML {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, emoji.Emoji),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			gmrenderer.WithNodeRenderers(util.Prioritized(newCodeRenderer(), 200)),
		),
	)
	return &HTML{md: md}
}

func (h *HTML) Name() string {
	return "html"
}

// tocEntry is one sidebar line.
type tocEntry struct {
	Section string
	Name    string
	Link    string
	Depth   int
	Spacer  bool
	Affix   bool
	Active  bool
}

// page is the data handed to the theme template.
type page struct {
	Title       string
	Description string
	Language    string
	Root        string
	Section     string
	Name        string
	Content     template.HTML
	TOC         []tocEntry
	Prev        string
	Next        string
	LiveReload  string
}

func (h *HTML) Render(ctx *Context) (*Result, error) {
	tmpl, err := loadTemplate(ctx.ThemeDir)
	if err != nil {
		return nil, err
	}

	manifest, err := buildManifest(ctx.Book)
	if err != nil {
		return nil, err
	}

	// Pages in reading order, as indexes into manifest.Entries.
	var pages []int
	for i, e := range manifest.Entries {
		if e.Output != "" {
			pages = append(pages, i)
		}
	}

	result := &Result{Manifest: manifest}
	for _, e := range manifest.Entries {
		if e.Kind != book.KindSpacer && e.Output == "" {
			result.Skipped++
			ctx.log().ChapterSkipped(e.Name, "no source file")
		}
	}

	for i, idx := range pages {
		e := manifest.Entries[idx]

		source, err := os.ReadFile(filepath.Join(ctx.Src, filepath.FromSlash(e.Path)))
		if err != nil {
			return nil, fmt.Errorf("failed to read chapter %q: %w", e.Path, err)
		}

		content, err := h.convert(source, "")
		if err != nil {
			return nil, fmt.Errorf("failed to convert chapter %q: %w", e.Path, err)
		}

		p := newPage(ctx.Book, manifest, idx, e.Output)
		p.Content = content
		p.LiveReload = ctx.LiveReload
		if i > 0 {
			p.Prev = manifest.Entries[pages[i-1]].Output
		}
		if i < len(pages)-1 {
			p.Next = manifest.Entries[pages[i+1]].Output
		}

		n, err := writePage(tmpl, filepath.Join(ctx.Dest, filepath.FromSlash(e.Output)), p)
		if err != nil {
			return nil, err
		}
		result.Bytes += int64(n)
		ctx.log().ChapterRendered(e.Section, e.Path, e.Output)
		result.Pages++

		// The first page doubles as the landing page. Its relative links
		// are relocated to the output root.
		if i == 0 {
			if dir := path.Dir(e.Output); dir != "." {
				if p.Content, err = h.convert(source, dir); err != nil {
					return nil, fmt.Errorf("failed to convert chapter %q: %w", e.Path, err)
				}
			}
			p.Root = ""
			n, err := writePage(tmpl, filepath.Join(ctx.Dest, "index.html"), p)
			if err != nil {
				return nil, err
			}
			result.Bytes += int64(n)
		}
	}

	css, err := themeFile(ctx.ThemeDir, "book.css")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(ctx.Dest, "book.css"), css, 0644); err != nil {
		return nil, fmt.Errorf("failed to write stylesheet: %w", err)
	}
	result.Bytes += int64(len(css))

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(ctx.Dest, "book.json"), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	result.Bytes += int64(len(data))

	return result, nil
}

// buildManifest flattens the outline and assigns an output file to every
// entry that has a source file.
func buildManifest(b *book.Book) (*Manifest, error) {
	m := &Manifest{
		BuildID:  uuid.NewString(),
		Title:    b.Title,
		Language: b.Metadata.Language,
		Entries:  []ManifestEntry{},
	}

	it := b.Iter()
	for label, item := range it.All() {
		e := ManifestEntry{Section: label, Kind: book.KindOf(item), Depth: it.Depth()}

		switch v := item.(type) {
		case *book.ChapterItem, *book.AffixItem:
			ch, _ := book.ChapterOf(v)
			e.Name = ch.Name
			e.Path = ch.Path
			if ch.HasFile() {
				out, err := OutputPath(ch.Path)
				if err != nil {
					return nil, err
				}
				e.Output = out
			}
		case *book.Spacer:
		}
		m.Entries = append(m.Entries, e)
	}
	return m, nil
}

// OutputPath maps a chapter source path to its page, "a/b.md" -> "a/b.html".
// Paths that leave the source directory are rejected.
func OutputPath(src string) (string, error) {
	clean := path.Clean(filepath.ToSlash(src))
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("chapter path %q is outside the source directory", src)
	}
	return strings.TrimSuffix(clean, path.Ext(clean)) + ".html", nil
}

func newPage(b *book.Book, m *Manifest, active int, output string) *page {
	p := &page{
		Title:       b.Title,
		Description: b.Metadata.Description,
		Language:    b.Metadata.Language,
		Root:        strings.Repeat("../", strings.Count(output, "/")),
		Section:     m.Entries[active].Section,
		Name:        m.Entries[active].Name,
	}
	for i, e := range m.Entries {
		p.TOC = append(p.TOC, tocEntry{
			Section: e.Section,
			Name:    e.Name,
			Link:    e.Output,
			Depth:   e.Depth,
			Spacer:  e.Kind == book.KindSpacer,
			Affix:   e.Kind == book.KindAffix,
			Active:  i == active,
		})
	}
	return p
}

// writePage renders p into dest and returns the number of bytes written.
func writePage(tmpl *template.Template, dest string, p *page) (int, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return 0, fmt.Errorf("failed to render %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return buf.Len(), nil
}

// convert renders chapter Markdown to HTML. Relative link and image
// targets are resolved against dir, which is "" for the chapter's own page.
func (h *HTML) convert(source []byte, dir string) (template.HTML, error) {
	pc := parser.NewContext()
	pc.Set(linkDirKey, dir)

	var buf bytes.Buffer
	if err := h.md.Convert(source, &buf, parser.WithContext(pc)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var linkDirKey = parser.NewContextKey()

// linkRewriter points relative links to .md files at the rendered .html page.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	dir, _ := pc.Get(linkDirKey).(string)
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = []byte(rewriteLink(string(v.Destination), dir))
		case *ast.Image:
			v.Destination = []byte(rewriteLink(string(v.Destination), dir))
		}
		return ast.WalkContinue, nil
	})
}

// rewriteLink maps a relative .md target to its .html page and, when dir
// is set, makes the target relative to the parent of dir.
func rewriteLink(dest, dir string) string {
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "/") {
		return dest
	}

	target, fragment, hasFragment := strings.Cut(dest, "#")
	if strings.HasSuffix(target, ".md") {
		target = strings.TrimSuffix(target, ".md") + ".html"
	}
	if target != "" && dir != "" {
		target = path.Join(dir, target)
	}
	if hasFragment {
		return target + "#" + fragment
	}
	return target
}
