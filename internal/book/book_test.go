package book

import (
	"reflect"
	"testing"
)

func chapter(label, name, path string, children ...Item) *ChapterItem {
	return &ChapterItem{Label: label, Chapter: Chapter{Name: name, Path: path, SubItems: children}}
}

func affix(name, path string, children ...Item) *AffixItem {
	return &AffixItem{Chapter: Chapter{Name: name, Path: path, SubItems: children}}
}

func labels(items []Item) []string {
	var out []string
	for _, e := range Flatten(items) {
		out = append(out, e.Section)
	}
	return out
}

func TestIteratorNumbering(t *testing.T) {
	items := []Item{
		chapter("1", "One", "one.md"),
		chapter("2", "Two", "two.md",
			chapter("2.1", "Two A", "two/a.md"),
			chapter("2.2", "Two B", "two/b.md"),
		),
		chapter("3", "Three", "three.md"),
	}

	got := labels(items)
	want := []string{"1", "2", "2.1", "2.2", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %q, want %q", got, want)
	}
}

func TestIteratorDeepNesting(t *testing.T) {
	items := []Item{
		chapter("", "A", "a.md",
			chapter("", "B", "b.md",
				chapter("", "C", "c.md",
					chapter("", "D", "d.md"),
				),
				chapter("", "E", "e.md"),
			),
		),
		chapter("", "F", "f.md", chapter("", "G", "g.md")),
	}

	got := labels(items)
	want := []string{"1", "1.1", "1.1.1", "1.1.1.1", "1.1.2", "2", "2.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %q, want %q", got, want)
	}
}

func TestIteratorAffixExclusion(t *testing.T) {
	items := []Item{
		affix("Preface", "preface.md"),
		chapter("1", "One", "one.md"),
		affix("Appendix", "appendix.md",
			chapter("", "Tables", "appendix/tables.md",
				chapter("", "Units", "appendix/units.md"),
			),
		),
	}

	got := labels(items)
	want := []string{"", "1", "", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %q, want %q", got, want)
	}
}

func TestIteratorSpacerTransparency(t *testing.T) {
	items := []Item{
		chapter("1", "One", "one.md"),
		&Spacer{},
		chapter("2", "Two", "two.md",
			chapter("2.1", "A", "a.md"),
			&Spacer{},
			chapter("2.2", "B", "b.md"),
		),
	}

	got := labels(items)
	want := []string{"1", "", "2", "2.1", "", "2.2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %q, want %q", got, want)
	}
}

func TestIteratorCountersResetPerParent(t *testing.T) {
	items := []Item{
		chapter("", "One", "", chapter("", "A", ""), chapter("", "B", "")),
		chapter("", "Two", "", chapter("", "C", "")),
	}

	got := labels(items)
	want := []string{"1", "1.1", "1.2", "2", "2.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %q, want %q", got, want)
	}
}

func TestIteratorPreOrder(t *testing.T) {
	items := []Item{
		chapter("", "One", "1.md", chapter("", "A", "1a.md", chapter("", "X", "1ax.md"))),
		&Spacer{},
		affix("End", "end.md", chapter("", "Z", "end/z.md")),
	}

	var paths []string
	for _, e := range Flatten(items) {
		if ch, ok := ChapterOf(e.Item); ok {
			paths = append(paths, ch.Path)
		} else {
			paths = append(paths, "-")
		}
	}
	want := []string{"1.md", "1a.md", "1ax.md", "-", "end.md", "end/z.md"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %q, want %q", paths, want)
	}
}

func TestIteratorDepth(t *testing.T) {
	items := []Item{
		chapter("", "One", "", chapter("", "A", "", chapter("", "X", ""))),
		chapter("", "Two", ""),
	}

	var depths []int
	for _, e := range Flatten(items) {
		depths = append(depths, e.Depth)
	}
	want := []int{0, 1, 2, 0}
	if !reflect.DeepEqual(depths, want) {
		t.Errorf("depths = %v, want %v", depths, want)
	}
}

func TestIteratorRestartable(t *testing.T) {
	b := New("Test").SetContent([]Item{
		chapter("", "One", "one.md", chapter("", "A", "a.md")),
		&Spacer{},
		affix("End", "end.md"),
	})

	first := Flatten(b.Content)
	second := Flatten(b.Content)
	if !reflect.DeepEqual(first, second) {
		t.Error("two iterators over the same tree produced different sequences")
	}

	// Two live iterators interleaved do not disturb each other.
	a, c := b.Iter(), b.Iter()
	for {
		la, ia, oka := a.Next()
		lc, ic, okc := c.Next()
		if oka != okc || la != lc || ia != ic {
			t.Fatalf("interleaved iterators diverged: (%q, %v) vs (%q, %v)", la, oka, lc, okc)
		}
		if !oka {
			break
		}
	}
}

func TestIteratorEmpty(t *testing.T) {
	it := NewIterator(nil)
	if _, _, ok := it.Next(); ok {
		t.Error("expected empty iterator to be exhausted")
	}
	if _, _, ok := it.Next(); ok {
		t.Error("expected exhausted iterator to stay exhausted")
	}
}

func TestIteratorAllStopsEarly(t *testing.T) {
	items := []Item{chapter("", "One", ""), chapter("", "Two", ""), chapter("", "Three", "")}
	it := NewIterator(items)

	count := 0
	for range it.All() {
		count++
		if count == 2 {
			break
		}
	}

	label, _, ok := it.Next()
	if !ok || label != "3" {
		t.Errorf("Next after early break = (%q, %v), want (\"3\", true)", label, ok)
	}
}

func TestWalk(t *testing.T) {
	items := []Item{
		chapter("", "One", "", chapter("", "A", "")),
		&Spacer{},
		affix("End", "", chapter("", "Z", "")),
	}

	type visit struct {
		kind     Kind
		depth    int
		numbered bool
	}
	var got []visit
	Walk(items, func(item Item, depth int, numbered bool) bool {
		got = append(got, visit{KindOf(item), depth, numbered})
		return true
	})

	want := []visit{
		{KindChapter, 0, true},
		{KindChapter, 1, true},
		{KindSpacer, 0, false},
		{KindAffix, 0, false},
		{KindChapter, 1, false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk visits = %+v, want %+v", got, want)
	}
}

func TestWalkSkipChildren(t *testing.T) {
	items := []Item{chapter("", "One", "", chapter("", "A", "")), chapter("", "Two", "")}

	var names []string
	Walk(items, func(item Item, depth int, numbered bool) bool {
		ch, _ := ChapterOf(item)
		names = append(names, ch.Name)
		return false
	})
	if !reflect.DeepEqual(names, []string{"One", "Two"}) {
		t.Errorf("names = %q", names)
	}
}

func TestEqual(t *testing.T) {
	base := func() []Item {
		return []Item{chapter("1", "One", "one.md", chapter("1.1", "A", "a.md")), &Spacer{}, affix("End", "")}
	}

	tests := []struct {
		name string
		b    []Item
		want bool
	}{
		{"identical", base(), true},
		{"different path", []Item{chapter("1", "One", "uno.md", chapter("1.1", "A", "a.md")), &Spacer{}, affix("End", "")}, false},
		{"different child", []Item{chapter("1", "One", "one.md"), &Spacer{}, affix("End", "")}, false},
		{"kind swapped", []Item{chapter("1", "One", "one.md", chapter("1.1", "A", "a.md")), &Spacer{}, chapter("", "End", "")}, false},
		{"shorter", base()[:2], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(base(), tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookMetadata(t *testing.T) {
	b := New("Guide").
		SetDescription("A guide").
		SetLanguage("fr").
		AddAuthor(Author{Name: "Ada"}).
		AddAuthor(Author{})

	if b.Metadata.Description != "A guide" {
		t.Errorf("Description = %q", b.Metadata.Description)
	}
	if b.Metadata.Language != "fr" {
		t.Errorf("Language = %q", b.Metadata.Language)
	}
	if len(b.Metadata.Authors) != 1 {
		t.Errorf("expected empty author to be ignored, got %d authors", len(b.Metadata.Authors))
	}
}

func TestChapterHelpers(t *testing.T) {
	if _, ok := ChapterOf(&Spacer{}); ok {
		t.Error("spacer should carry no chapter")
	}
	if SubItems(&Spacer{}) != nil {
		t.Error("spacer should have no children")
	}
	c := chapter("", "Draft", "")
	if c.Chapter.HasFile() {
		t.Error("empty path should report no backing file")
	}
}
