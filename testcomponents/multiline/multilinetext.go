package multiline

import (
	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/view"
)

// MultilineText is a test component for verifying templates whose tags,
// arguments and text span several lines.
type MultilineText struct {
	view.Base
	Title   string
	Message string
	Count   signals.Cell[int]
}

// NewMultilineText creates the component with zero views.
func NewMultilineText(title, message string) *MultilineText {
	return &MultilineText{Title: title, Message: message, Count: signals.New(0)}
}
