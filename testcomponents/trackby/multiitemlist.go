package trackby

import (
	"slices"

	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/view"
)

// Item represents a data item with an ID.
type Item struct {
	ID   int
	Name string
}

// MultiItemList renders several sibling elements per loop iteration, which
// must all land under the list in order.
type MultiItemList struct {
	view.Base
	Items signals.Cell[[]Item]
}

// NewMultiItemList creates the list with three items.
func NewMultiItemList() *MultiItemList {
	return &MultiItemList{Items: signals.New([]Item{
		{ID: 101, Name: "Alpha"},
		{ID: 102, Name: "Beta"},
		{ID: 103, Name: "Gamma"},
	})}
}

// AddItem appends an item named name with the next free ID.
func (c *MultiItemList) AddItem(name string) {
	c.Items.Mut().Update(func(items []Item) []Item {
		return append(slices.Clone(items), Item{ID: 100 + len(items) + 1, Name: name})
	})
}

// ClearItems removes every item.
func (c *MultiItemList) ClearItems() {
	c.Items.Mut().Set([]Item{})
}
