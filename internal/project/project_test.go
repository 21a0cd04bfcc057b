package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itsmostafa/gobook/internal/book"
	"github.com/itsmostafa/gobook/internal/renderer"
	"github.com/itsmostafa/gobook/internal/summary"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestInitDefault(t *testing.T) {
	root := filepath.Join(t.TempDir(), "mybook")

	p, err := New(root, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := p.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "src", "SUMMARY.md"))
	if err != nil {
		t.Fatalf("expected SUMMARY.md: %v", err)
	}
	if !strings.Contains(string(data), "[Chapter 1](./chapter_1.md)") {
		t.Errorf("unexpected default summary:\n%s", data)
	}

	chapter, err := os.ReadFile(filepath.Join(root, "src", "chapter_1.md"))
	if err != nil {
		t.Fatalf("expected chapter_1.md: %v", err)
	}
	if string(chapter) != "# Chapter 1\n" {
		t.Errorf("chapter_1.md = %q", chapter)
	}

	if info, err := os.Stat(filepath.Join(root, "book")); err != nil || !info.IsDir() {
		t.Errorf("expected output directory: %v", err)
	}
}

func TestInitExistingSummary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), `# Summary
[Intro](intro.md)
- [Part](part/index.md)
  - [Draft]()
  - [Kept](kept.md)
`)
	writeFile(t, filepath.Join(root, "src", "kept.md"), "original")

	p, err := New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	for path, want := range map[string]string{
		"intro.md":      "# Intro\n",
		"part/index.md": "# Part\n",
		"kept.md":       "original",
	} {
		got, err := os.ReadFile(filepath.Join(root, "src", filepath.FromSlash(path)))
		if err != nil {
			t.Errorf("expected %s: %v", path, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	entries, err := os.ReadDir(filepath.Join(root, "src"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 { // SUMMARY.md, intro.md, part/, kept.md; nothing for the draft
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected source files: %v", names)
	}
}

func TestInitMalformedSummary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), "- [A](a.md)\n- [B](b.md\n")

	p, err := New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Init()
	if !errors.Is(err, summary.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "src", "a.md")); statErr == nil {
		t.Error("no chapter should be scaffolded from a malformed outline")
	}
}

func TestReadConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "book.yaml"), `title: Field Guide
author: Ada
description: Notes
language: fr
src: content
dest: out
`)

	p, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if p.Src() != filepath.Join(root, "content") {
		t.Errorf("Src() = %q", p.Src())
	}
	if p.Dest() != filepath.Join(root, "out") {
		t.Errorf("Dest() = %q", p.Dest())
	}

	b := p.Book()
	if b.Title != "Field Guide" || b.Metadata.Language != "fr" || b.Metadata.Description != "Notes" {
		t.Errorf("unexpected book metadata: %+v", b)
	}
	if len(b.Metadata.Authors) != 1 || b.Metadata.Authors[0].Name != "Ada" {
		t.Errorf("Authors = %+v", b.Metadata.Authors)
	}
}

func TestParseSummaryIter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), "- [A](a.md)\n  - [B](b.md)\n- [C](c.md)\n")

	p, err := New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ParseSummary(); err != nil {
		t.Fatalf("ParseSummary() error: %v", err)
	}

	var labels []string
	for label := range p.Iter().All() {
		labels = append(labels, label)
	}
	if got := strings.Join(labels, " "); got != "1 1.1 2" {
		t.Errorf("labels = %q, want %q", got, "1 1.1 2")
	}
}

func TestParseSummaryMissing(t *testing.T) {
	p, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ParseSummary(); !errors.Is(err, summary.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestCreateGitignore(t *testing.T) {
	t.Run("dest inside root", func(t *testing.T) {
		root := t.TempDir()
		p, _ := New(root, nil)
		p.SetDest("build/html")

		if err := p.CreateGitignore(); err != nil {
			t.Fatalf("CreateGitignore() error: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "build/html\n" {
			t.Errorf(".gitignore = %q", data)
		}
	})

	t.Run("existing file kept", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".gitignore"), "custom\n")
		p, _ := New(root, nil)

		if err := p.CreateGitignore(); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
		if string(data) != "custom\n" {
			t.Errorf(".gitignore overwritten: %q", data)
		}
	})

	t.Run("dest outside root", func(t *testing.T) {
		root := t.TempDir()
		p, _ := New(root, nil)
		p.SetDest(t.TempDir())

		if err := p.CreateGitignore(); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(root, ".gitignore")); err == nil {
			t.Error("did not expect a .gitignore")
		}
	})
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), "- [One](one.md)\n- [Two](two.md)\n")
	writeFile(t, filepath.Join(root, "src", "one.md"), "# One\n\nFirst.")
	writeFile(t, filepath.Join(root, "book", "stale.html"), "old")

	p, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := p.Build(renderer.NewHTML())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}
	if _, err := os.Stat(filepath.Join(root, "book", "stale.html")); err == nil {
		t.Error("expected stale output to be removed")
	}
	for _, name := range []string{"index.html", "one.html", "two.html", "book.json"} {
		if _, err := os.Stat(filepath.Join(root, "book", name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestBuildUsesThemeOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), "- [One](one.md)\n")

	p, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.CopyTheme(); err != nil {
		t.Fatalf("CopyTheme() error: %v", err)
	}
	writeFile(t, filepath.Join(root, "src", "theme", "book.css"), "body{}")

	if _, err := p.Build(renderer.NewHTML()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	css, err := os.ReadFile(filepath.Join(root, "book", "book.css"))
	if err != nil {
		t.Fatal(err)
	}
	if string(css) != "body{}" {
		t.Errorf("book.css = %q, want override", css)
	}
}

func TestSetters(t *testing.T) {
	root := t.TempDir()
	p, _ := New(root, nil)

	p.SetTitle("T").SetAuthor("A").SetDescription("D").SetSrc("pages")
	abs := t.TempDir()
	p.SetDest(abs)

	if p.Src() != filepath.Join(root, "pages") {
		t.Errorf("Src() = %q", p.Src())
	}
	if p.Dest() != abs {
		t.Errorf("Dest() = %q", p.Dest())
	}
	b := p.Book()
	if b.Title != "T" || b.Metadata.Description != "D" {
		t.Errorf("book = %+v", b)
	}
	if want := []book.Author{{Name: "A"}}; len(b.Metadata.Authors) != 1 || b.Metadata.Authors[0] != want[0] {
		t.Errorf("Authors = %+v", b.Metadata.Authors)
	}

	if err := p.SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}
	reopened, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Book().Title != "T" || reopened.Src() != filepath.Join(root, "pages") {
		t.Errorf("config did not round trip: %+v", reopened.Config())
	}
}

func TestBuildRefusesDestructiveDest(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		dest string
	}{
		{name: "dest is root in config", yaml: "dest: .\n"},
		{name: "dest set to src", dest: "src"},
		{name: "dest set to root", dest: "."},
		{name: "dest contains src", dest: ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), "- [One](one.md)\n")
			writeFile(t, filepath.Join(root, "src", "one.md"), "# One\n\nAuthored.")

			p, err := New(root, nil)
			if err != nil {
				t.Fatal(err)
			}
			if tt.yaml != "" {
				writeFile(t, filepath.Join(root, "book.yaml"), tt.yaml)
				if err := p.ReadConfig(); err == nil {
					t.Fatal("expected ReadConfig to reject the config")
				}
				// A project that skipped validation must still refuse to build.
				p.Config().Dest = root
			}
			if tt.dest != "" {
				p.SetDest(tt.dest)
			}

			if _, err := p.Build(renderer.NewHTML()); err == nil {
				t.Fatal("expected Build to refuse the output directory")
			}
			data, err := os.ReadFile(filepath.Join(root, "src", "one.md"))
			if err != nil {
				t.Fatalf("source chapter removed: %v", err)
			}
			if string(data) != "# One\n\nAuthored." {
				t.Errorf("source chapter changed: %q", data)
			}
		})
	}
}

func TestBuildLiveReload(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "SUMMARY.md"), "- [One](one.md)\n")

	p, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	p.SetLiveReload("/__livereload")
	if p.LiveReload() != "/__livereload" {
		t.Errorf("LiveReload() = %q", p.LiveReload())
	}
	if _, err := p.Build(renderer.NewHTML()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	page, err := os.ReadFile(filepath.Join(root, "book", "one.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "__livereload") {
		t.Error("expected live reload script in built page")
	}

	p.UnsetLiveReload()
	if p.LiveReload() != "" {
		t.Errorf("LiveReload() after unset = %q", p.LiveReload())
	}
	if _, err := p.Build(renderer.NewHTML()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	page, err = os.ReadFile(filepath.Join(root, "book", "one.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(page), "__livereload") {
		t.Error("did not expect live reload script after unset")
	}
}
