// Package renderer turns a parsed book into output files.
package renderer

import (
	"github.com/itsmostafa/gobook/internal/book"
	"github.com/itsmostafa/gobook/internal/logger"
)

// Context is everything a renderer needs for one build.
type Context struct {
	Book *book.Book
	// Src is the directory chapter paths are relative to.
	Src string
	// Dest is the output directory. It exists and is empty when Render is called.
	Dest string
	// ThemeDir optionally overrides the built-in theme files.
	ThemeDir string
	// LiveReload is the websocket path pages connect to for reload
	// notifications. Empty disables the script.
	LiveReload string
	Log        *logger.Logger
}

func (ctx *Context) log() *logger.Logger {
	if ctx.Log == nil {
		return logger.Discard()
	}
	return ctx.Log
}

// Result represents the outcome of a build
type Result struct {
	// Number of pages written
	Pages int
	// Entries without a source file
	Skipped int
	// Total bytes written below Dest
	Bytes int64
	// Manifest describing what was written
	Manifest *Manifest
}

// Renderer defines the interface for output backends
type Renderer interface {
	// Name returns a human-readable name for this renderer (e.g., "html")
	Name() string

	// Render writes the book below ctx.Dest. It drives a fresh iterator over
	// the outline and must not modify it.
	Render(ctx *Context) (*Result, error)
}

// ManifestEntry is one outline entry as written by a renderer.
type ManifestEntry struct {
	Section string    `json:"section,omitempty"`
	Kind    book.Kind `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Path    string    `json:"path,omitempty"`
	Output  string    `json:"output,omitempty"`
	Depth   int       `json:"depth"`
}

// Manifest records a build for downstream tools such as search indexers.
type Manifest struct {
	BuildID  string          `json:"build_id"`
	Title    string          `json:"title"`
	Language string          `json:"language"`
	Entries  []ManifestEntry `json:"entries"`
}
