// Package book holds the outline of a book: a tree of numbered chapters,
// un-numbered affixes and spacers, the per-language Book that owns it, and
// the depth-first iterator that assigns section numbers.
package book

// Author is a book author.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Metadata describes a book for renderers.
type Metadata struct {
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language"`
	Authors     []Author `json:"authors,omitempty"`
}

// Book is one language edition. It owns its outline; the outline is
// replaced wholesale on every build and never mutated in place.
type Book struct {
	Title    string
	Metadata Metadata
	Content  []Item
}

// New creates an empty book with the given title.
func New(title string) *Book {
	return &Book{
		Title:    title,
		Metadata: Metadata{Language: "en"},
	}
}

// SetDescription sets the description and returns the book for chaining.
func (b *Book) SetDescription(description string) *Book {
	b.Metadata.Description = description
	return b
}

// SetLanguage sets the language code.
func (b *Book) SetLanguage(lang string) *Book {
	b.Metadata.Language = lang
	return b
}

// AddAuthor appends an author, ignoring empty names.
func (b *Book) AddAuthor(a Author) *Book {
	if a.Name == "" {
		return b
	}
	b.Metadata.Authors = append(b.Metadata.Authors, a)
	return b
}

// SetContent replaces the outline.
func (b *Book) SetContent(items []Item) *Book {
	b.Content = items
	return b
}

// Iter returns a fresh iterator over the outline.
func (b *Book) Iter() *Iterator {
	return NewIterator(b.Content)
}
