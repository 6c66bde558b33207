package trackby

import (
	"slices"

	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/view"
)

// TagList renders a list of bare string values. Every change to Tags
// rebuilds the list.
type TagList struct {
	view.Base
	Tags  signals.Cell[[]string]
	Empty signals.Cell[bool]
}

// NewTagList creates a list holding tags.
func NewTagList(tags ...string) *TagList {
	return &TagList{
		Tags:  signals.New(tags),
		Empty: signals.New(len(tags) == 0),
	}
}

// AddTag appends a tag to the list.
func (c *TagList) AddTag(tag string) {
	c.Tags.Mut().Update(func(tags []string) []string {
		return append(slices.Clone(tags), tag)
	})
	c.Empty.Mut().Set(false)
}

// ClearTags removes every tag.
func (c *TagList) ClearTags() {
	c.Tags.Mut().Set([]string{})
	c.Empty.Mut().Set(true)
}
