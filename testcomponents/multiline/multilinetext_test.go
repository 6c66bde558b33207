//go:build !wasm
// +build !wasm

package multiline

import (
	"testing"

	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/testcomponents"
)

// TestMultilineText_Render verifies that arguments split over several
// lines and raw-string text with a line break render like their single
// line forms.
func TestMultilineText_Render(t *testing.T) {
	// Arrange
	comp := NewMultilineText("Hello", "Line one")
	h := testcomponents.NewHarness(comp)

	// Act
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	// Assert: attributes from the multi-line argument list
	article, err := h.Element("article")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"class": "card wide", "title": "multi line"}
	for key, value := range want {
		if got, _ := article.Attr(key); got != value {
			t.Errorf("Expected %s '%s', got '%s'", key, value, got)
		}
	}

	// Assert: text content
	if got, _ := h.Text("title"); got != "Hello" {
		t.Errorf("Expected title 'Hello', got '%s'", got)
	}
	if got, _ := h.Text("message"); got != "Line one\n(0 views)" {
		t.Errorf("Expected message %q, got %q", "Line one\n(0 views)", got)
	}
}

// TestMultilineText_CountUpdate verifies that the cell embedded in the
// multi-line text re-renders the whole text.
func TestMultilineText_CountUpdate(t *testing.T) {
	// Arrange
	comp := NewMultilineText("Hello", "Line one")
	h := testcomponents.NewHarness(comp)
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	// Act
	signals.Add(comp.Count.Mut(), 41)
	signals.Add(comp.Count.Mut(), 1)

	// Assert
	if got, _ := h.Text("message"); got != "Line one\n(42 views)" {
		t.Errorf("Expected message %q, got %q", "Line one\n(42 views)", got)
	}
}
