// Package project ties a book directory on disk to its configuration,
// outline and renderer.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itsmostafa/gobook/internal/book"
	"github.com/itsmostafa/gobook/internal/config"
	"github.com/itsmostafa/gobook/internal/logger"
	"github.com/itsmostafa/gobook/internal/renderer"
	"github.com/itsmostafa/gobook/internal/summary"
)

// SummaryFile is the outline file name inside the source directory.
const SummaryFile = "SUMMARY.md"

// ThemeDir is the theme override directory inside the source directory.
const ThemeDir = "theme"

const defaultSummary = "# Summary\n\n- [Chapter 1](./chapter_1.md)\n"

// Project is a book rooted at a directory. It keeps one Book per language;
// the outline is parsed into the default language edition.
type Project struct {
	root       string
	cfg        *config.Config
	books      map[string]*book.Book
	defaultLng string
	liveReload string
	log        *logger.Logger
}

// New creates a project rooted at root with default settings. Call
// ReadConfig to pick up book.yaml or book.json.
func New(root string, log *logger.Logger) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	cfg := config.DefaultConfig()
	cfg.ExpandPaths(abs)

	p := &Project{
		root: abs,
		cfg:  cfg,
		log:  log,
	}
	p.resetBooks()
	return p, nil
}

// Open creates a project and reads its configuration.
func Open(root string, log *logger.Logger) (*Project, error) {
	p, err := New(root, log)
	if err != nil {
		return nil, err
	}
	if err := p.ReadConfig(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) resetBooks() {
	lang := p.cfg.Language
	if lang == "" {
		lang = "en"
	}
	b := book.New(p.cfg.Title).
		SetDescription(p.cfg.Description).
		SetLanguage(lang).
		AddAuthor(book.Author{Name: p.cfg.Author})

	var content []book.Item
	if prev, ok := p.books[p.defaultLng]; ok {
		content = prev.Content
	}
	b.SetContent(content)

	p.books = map[string]*book.Book{lang: b}
	p.defaultLng = lang
}

// ReadConfig loads the configuration from the project root and refreshes
// the book metadata.
func (p *Project) ReadConfig() error {
	cfg, err := config.Load(p.root)
	if err != nil {
		return err
	}
	p.cfg = cfg
	p.resetBooks()
	p.log.ConfigLoaded(config.Path(p.root), cfg.Src, cfg.Dest)
	return nil
}

// Config returns the active configuration.
func (p *Project) Config() *config.Config {
	return p.cfg
}

// Root returns the absolute project root.
func (p *Project) Root() string {
	return p.root
}

// Book returns the default language edition.
func (p *Project) Book() *book.Book {
	return p.books[p.defaultLng]
}

// SummaryPath returns the location of SUMMARY.md.
func (p *Project) SummaryPath() string {
	return filepath.Join(p.cfg.Src, SummaryFile)
}

// ParseSummary reads SUMMARY.md and replaces the default edition's outline.
func (p *Project) ParseSummary() error {
	path := p.SummaryPath()
	items, err := summary.Load(path)
	if err != nil {
		return err
	}
	p.Book().SetContent(items)
	p.log.SummaryParsed(path, len(book.Flatten(items)))
	return nil
}

// Iter returns a fresh iterator over the default edition's outline.
func (p *Project) Iter() *book.Iterator {
	return p.Book().Iter()
}

// Init scaffolds the project: the root, source and output directories, a
// default SUMMARY.md and a stub file for every chapter the outline names
// that does not exist yet. Entries without a path are skipped.
func (p *Project) Init() error {
	for _, dir := range []string{p.root, p.cfg.Src, p.cfg.Dest} {
		if err := p.mkdir(dir); err != nil {
			return err
		}
	}

	summaryPath := p.SummaryPath()
	if _, err := os.Stat(summaryPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(summaryPath, []byte(defaultSummary), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", SummaryFile, err)
		}
		p.log.FileCreated(summaryPath)
	} else if err != nil {
		return fmt.Errorf("failed to stat %s: %w", SummaryFile, err)
	}

	if err := p.ParseSummary(); err != nil {
		return err
	}

	for _, item := range p.Iter().All() {
		ch, ok := book.ChapterOf(item)
		if !ok || !ch.HasFile() {
			continue
		}
		if err := p.createChapter(ch); err != nil {
			return err
		}
	}
	return nil
}

func (p *Project) mkdir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	p.log.FileCreated(dir)
	return nil
}

func (p *Project) createChapter(ch *book.Chapter) error {
	if _, err := renderer.OutputPath(ch.Path); err != nil {
		return err
	}
	path := filepath.Join(p.cfg.Src, filepath.FromSlash(ch.Path))

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat chapter %s: %w", ch.Path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", ch.Path, err)
	}
	if err := os.WriteFile(path, []byte("# "+ch.Name+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to create chapter %s: %w", ch.Path, err)
	}
	p.log.FileCreated(path)
	return nil
}

// CreateGitignore writes a .gitignore excluding the output directory.
// Nothing is written when the file exists or dest lies outside the root.
func (p *Project) CreateGitignore() error {
	rel, err := filepath.Rel(p.root, p.cfg.Dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}

	path := filepath.Join(p.root, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(filepath.ToSlash(rel)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	p.log.FileCreated(path)
	return nil
}

// CopyTheme writes the built-in theme into the source directory, where
// builds pick it up as an override.
func (p *Project) CopyTheme() error {
	dir := filepath.Join(p.cfg.Src, ThemeDir)
	if err := renderer.WriteTheme(dir); err != nil {
		return err
	}
	p.log.FileCreated(dir)
	return nil
}

// Build scaffolds missing files, empties the output directory and renders
// the book with r.
func (p *Project) Build(r renderer.Renderer) (*renderer.Result, error) {
	start := time.Now()

	// The output directory is emptied below; refuse anything that holds sources.
	if err := p.cfg.Validate(p.root); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := p.Init(); err != nil {
		return nil, err
	}
	if err := cleanDir(p.cfg.Dest); err != nil {
		return nil, err
	}

	result, err := r.Render(&renderer.Context{
		Book:       p.Book(),
		Src:        p.cfg.Src,
		Dest:       p.cfg.Dest,
		ThemeDir:   filepath.Join(p.cfg.Src, ThemeDir),
		LiveReload: p.liveReload,
		Log:        p.log,
	})
	if err != nil {
		return nil, fmt.Errorf("%s renderer failed: %w", r.Name(), err)
	}

	p.log.BuildCompleted(r.Name(), result.Pages, time.Since(start))
	return result, nil
}

func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}
	return nil
}

// Src returns the absolute source directory.
func (p *Project) Src() string {
	return p.cfg.Src
}

// SetSrc sets the source directory; relative paths are resolved against the root.
func (p *Project) SetSrc(dir string) *Project {
	p.cfg.Src = p.resolve(dir)
	return p
}

// Dest returns the absolute output directory.
func (p *Project) Dest() string {
	return p.cfg.Dest
}

// SetDest sets the output directory; relative paths are resolved against the root.
func (p *Project) SetDest(dir string) *Project {
	p.cfg.Dest = p.resolve(dir)
	return p
}

func (p *Project) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(p.root, dir)
}

// SetTitle sets the book title.
func (p *Project) SetTitle(title string) *Project {
	p.cfg.Title = title
	p.Book().Title = title
	return p
}

// SetAuthor sets the single author of the book.
func (p *Project) SetAuthor(name string) *Project {
	p.cfg.Author = name
	p.Book().Metadata.Authors = nil
	p.Book().AddAuthor(book.Author{Name: name})
	return p
}

// SetDescription sets the book description.
func (p *Project) SetDescription(description string) *Project {
	p.cfg.Description = description
	p.Book().SetDescription(description)
	return p
}

// SetLiveReload makes built pages connect to the websocket at path and
// reload when told to.
func (p *Project) SetLiveReload(path string) *Project {
	p.liveReload = path
	return p
}

// UnsetLiveReload stops built pages from connecting for reloads.
func (p *Project) UnsetLiveReload() *Project {
	p.liveReload = ""
	return p
}

// LiveReload returns the websocket path pages reload from, or "".
func (p *Project) LiveReload() string {
	return p.liveReload
}

// SaveConfig writes the active configuration to book.yaml in the root.
func (p *Project) SaveConfig() error {
	path := filepath.Join(p.root, config.FileNames[0])
	if err := p.cfg.Save(path, p.root); err != nil {
		return err
	}
	p.log.FileCreated(path)
	return nil
}
