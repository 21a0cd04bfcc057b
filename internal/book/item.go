package book

// Item is one node of the book outline. It is implemented only by
// *ChapterItem, *AffixItem and *Spacer; consumers switch on the concrete type.
type Item interface {
	bookItem()
}

// Chapter is the payload shared by numbered chapters and affixes.
type Chapter struct {
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"` // empty when the entry has no backing file
	SubItems []Item `json:"-"`
}

// HasFile reports whether the chapter is backed by a source file.
func (c *Chapter) HasFile() bool {
	return c.Path != ""
}

// ChapterItem is a numbered chapter. Label holds the section number the
// parser saw; Iterator recomputes the authoritative one.
type ChapterItem struct {
	Label   string
	Chapter Chapter
}

// AffixItem is front or back matter. It and everything below it are
// excluded from numbering.
type AffixItem struct {
	Chapter Chapter
}

// Spacer is a visual separator with no content.
type Spacer struct{}

func (*ChapterItem) bookItem() {}
func (*AffixItem) bookItem()   {}
func (*Spacer) bookItem()      {}

// Kind names the variant of an item.
type Kind string

const (
	KindChapter Kind = "chapter"
	KindAffix   Kind = "affix"
	KindSpacer  Kind = "spacer"
)

// KindOf returns the variant name of item.
func KindOf(item Item) Kind {
	switch item.(type) {
	case *ChapterItem:
		return KindChapter
	case *AffixItem:
		return KindAffix
	default:
		return KindSpacer
	}
}

// ChapterOf returns the chapter payload of a chapter or affix.
func ChapterOf(item Item) (*Chapter, bool) {
	switch it := item.(type) {
	case *ChapterItem:
		return &it.Chapter, true
	case *AffixItem:
		return &it.Chapter, true
	default:
		return nil, false
	}
}

// SubItems returns the children of item. Spacers have none.
func SubItems(item Item) []Item {
	if ch, ok := ChapterOf(item); ok {
		return ch.SubItems
	}
	return nil
}

// Walk visits items in pre-order. numbered is false for spacers, affixes
// and anything nested under an affix. Returning false from fn skips the
// children of the current item.
func Walk(items []Item, fn func(item Item, depth int, numbered bool) bool) {
	walk(items, 0, true, fn)
}

func walk(items []Item, depth int, numbered bool, fn func(Item, int, bool) bool) {
	for _, item := range items {
		switch it := item.(type) {
		case *ChapterItem:
			if fn(it, depth, numbered) {
				walk(it.Chapter.SubItems, depth+1, numbered, fn)
			}
		case *AffixItem:
			if fn(it, depth, false) {
				walk(it.Chapter.SubItems, depth+1, false, fn)
			}
		case *Spacer:
			fn(it, depth, false)
		}
	}
}

// Equal reports whether two outlines have the same structure, names,
// paths and labels in the same order.
func Equal(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalItem(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalItem(a, b Item) bool {
	switch x := a.(type) {
	case *ChapterItem:
		y, ok := b.(*ChapterItem)
		return ok && x.Label == y.Label && equalChapter(&x.Chapter, &y.Chapter)
	case *AffixItem:
		y, ok := b.(*AffixItem)
		return ok && equalChapter(&x.Chapter, &y.Chapter)
	case *Spacer:
		_, ok := b.(*Spacer)
		return ok
	default:
		return false
	}
}

func equalChapter(a, b *Chapter) bool {
	return a.Name == b.Name && a.Path == b.Path && Equal(a.SubItems, b.SubItems)
}
