package databinding

import (
	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/view"
)

// Counter binds two cells into text and updates them from click handlers.
type Counter struct {
	view.Base
	Count signals.Cell[int]
	Label signals.Cell[string]
	step  int
}

// NewCounter creates a counter starting at count.
func NewCounter(count int, label string) *Counter {
	return &Counter{
		Count: signals.New(count),
		Label: signals.New(label),
		step:  1,
	}
}

// Increment adds the step to the count.
func (c *Counter) Increment() {
	signals.Add(c.Count.Mut(), c.step)
}

// Rename replaces the label.
func (c *Counter) Rename(label string) {
	c.Label.Mut().Set(label)
}
