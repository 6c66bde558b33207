//go:build !wasm
// +build !wasm

package databinding

import (
	"testing"

	"github.com/vcrobe/tsz/testcomponents"
)

func mountCounter(t *testing.T, count int, label string) (*Counter, *testcomponents.Harness) {
	t.Helper()
	counter := NewCounter(count, label)
	h := testcomponents.NewHarness(counter)
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	return counter, h
}

func text(t *testing.T, h *testcomponents.Harness, id string) string {
	t.Helper()
	s, err := h.Text(id)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// TestDataBinding_InitialRender verifies that data binding correctly
// interpolates component state into the document on mount.
func TestDataBinding_InitialRender(t *testing.T) {
	// Arrange & Act: Mount a counter with initial state
	_, h := mountCounter(t, 5, "Test Counter")

	// Assert: Verify the root structure
	if n := h.Count("div"); n != 1 {
		t.Errorf("Expected 1 root div, got %d", n)
	}
	if n := h.Count("p"); n != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", n)
	}

	// Assert: Verify data binding for both cells
	if got := text(t, h, "count"); got != "Count: 5" {
		t.Errorf("Expected content 'Count: 5', got '%s'", got)
	}
	if got := text(t, h, "label"); got != "Label: Test Counter" {
		t.Errorf("Expected content 'Label: Test Counter', got '%s'", got)
	}
}

// TestDataBinding_StateUpdate verifies that mutating a cell updates only
// the text bound to it.
func TestDataBinding_StateUpdate(t *testing.T) {
	// Arrange
	counter, h := mountCounter(t, 0, "Initial")

	// Act: Update the state
	counter.Increment()
	counter.Rename("Updated")

	// Assert: Verify the text reflects the new values
	if got := text(t, h, "count"); got != "Count: 1" {
		t.Errorf("Expected content 'Count: 1', got '%s'", got)
	}
	if got := text(t, h, "label"); got != "Label: Updated" {
		t.Errorf("Expected content 'Label: Updated', got '%s'", got)
	}
}

// TestDataBinding_ClickHandlers verifies method-bound and inline handlers.
func TestDataBinding_ClickHandlers(t *testing.T) {
	// Arrange
	counter, h := mountCounter(t, 0, "Clicks")

	steps := []struct {
		id   string
		want string
	}{
		{"inc", "Count: 1"},
		{"inc", "Count: 2"},
		{"add", "Count: 12"},
		{"reset", "Count: 0"},
		{"add", "Count: 10"},
	}
	for _, step := range steps {
		// Act
		if err := h.Click(step.id); err != nil {
			t.Fatalf("Click %s failed: %v", step.id, err)
		}

		// Assert
		if got := text(t, h, "count"); got != step.want {
			t.Errorf("After clicking %s, expected '%s', got '%s'", step.id, step.want, got)
		}
	}
	if got := counter.Count.Get(); got != 10 {
		t.Errorf("Expected Count 10, got %d", got)
	}
}

// TestDataBinding_Teardown verifies that tearing the view down releases
// every subscription, so later mutations leave the document alone.
func TestDataBinding_Teardown(t *testing.T) {
	// Arrange
	counter, h := mountCounter(t, 3, "Gone")
	ref := counter.Count.Ref()
	if n := ref.Arena().Subscribers(ref.ID()); n != 1 {
		t.Fatalf("Expected 1 subscriber before teardown, got %d", n)
	}

	// Act
	h.Teardown()
	counter.Increment()

	// Assert
	if n := ref.Arena().Subscribers(ref.ID()); n != 0 {
		t.Errorf("Expected 0 subscribers after teardown, got %d", n)
	}
	if got := text(t, h, "count"); got != "Count: 3" {
		t.Errorf("Expected stale content 'Count: 3', got '%s'", got)
	}
}
