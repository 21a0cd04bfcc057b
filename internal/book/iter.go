package book

import (
	"iter"
	"strconv"
)

// frame is one sibling group on the traversal path.
type frame struct {
	items    []Item
	next     int    // index of the next sibling to yield
	counter  int    // last section number handed out in this group
	prefix   string // label of the parent chapter, empty at the top level
	numbered bool   // false below an affix
}

// Iterator walks an outline depth-first and yields each item with its
// section label ("1", "1.2", ...). Affixes, their descendants and spacers
// get an empty label. The iterator never modifies the tree; the tree must
// not be modified while an iterator over it is in use.
type Iterator struct {
	stack []frame
	depth int
}

// NewIterator returns an iterator positioned before the first item.
func NewIterator(items []Item) *Iterator {
	return &Iterator{
		stack: []frame{{items: items, numbered: true}},
	}
}

// Next returns the next item in document order. ok is false once the
// outline is exhausted.
func (it *Iterator) Next() (label string, item Item, ok bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.next >= len(top.items) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		item = top.items[top.next]
		top.next++
		it.depth = len(it.stack) - 1

		switch v := item.(type) {
		case *ChapterItem:
			numbered := top.numbered
			if numbered {
				top.counter++
				label = strconv.Itoa(top.counter)
				if top.prefix != "" {
					label = top.prefix + "." + label
				}
			}
			it.push(v.Chapter.SubItems, label, numbered)
		case *AffixItem:
			it.push(v.Chapter.SubItems, "", false)
		case *Spacer:
		}
		return label, item, true
	}
	return "", nil, false
}

// Depth returns the nesting depth of the item last returned by Next,
// zero for top-level items.
func (it *Iterator) Depth() int {
	return it.depth
}

func (it *Iterator) push(children []Item, prefix string, numbered bool) {
	if len(children) == 0 {
		return
	}
	it.stack = append(it.stack, frame{items: children, prefix: prefix, numbered: numbered})
}

// All adapts the remaining items of it to a range-over-func sequence.
func (it *Iterator) All() iter.Seq2[string, Item] {
	return func(yield func(string, Item) bool) {
		for {
			label, item, ok := it.Next()
			if !ok || !yield(label, item) {
				return
			}
		}
	}
}

// Entry is a flattened outline element.
type Entry struct {
	Section string
	Depth   int
	Item    Item
}

// Flatten drains a fresh iterator over items into a slice.
func Flatten(items []Item) []Entry {
	var entries []Entry
	it := NewIterator(items)
	for label, item := range it.All() {
		entries = append(entries, Entry{Section: label, Depth: it.Depth(), Item: item})
	}
	return entries
}
