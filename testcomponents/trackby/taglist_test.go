//go:build !wasm
// +build !wasm

package trackby

import (
	"fmt"
	"testing"

	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/testcomponents"
)

func mountTagList(t *testing.T, tags ...string) (*TagList, *testcomponents.Harness) {
	t.Helper()
	tagList := NewTagList(tags...)
	h := testcomponents.NewHarness(tagList)
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	return tagList, h
}

// listItems returns the text of every <li> under the <ul>.
func listItems(t *testing.T, h *testcomponents.Harness) []string {
	t.Helper()
	ul, err := h.Element("tags")
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, child := range ul.Children() {
		li, ok := child.(*dom.MemoryElement)
		if !ok || li.Tag() != "li" {
			t.Fatalf("Expected only <li> children, got %s", child.NodeName())
		}
		out = append(out, li.TextContent())
	}
	return out
}

func hasEmptyMessage(h *testcomponents.Harness) bool {
	_, err := h.Element("empty")
	return err == nil
}

// TestTagList_BareVariable_InitialRender verifies that a list of primitive
// strings renders one item per tag with its index.
func TestTagList_BareVariable_InitialRender(t *testing.T) {
	// Arrange & Act
	_, h := mountTagList(t, "golang", "wasm", "component", "framework")

	// Assert: Verify the number of list items matches the tags
	items := listItems(t, h)
	expectedTags := []string{"golang", "wasm", "component", "framework"}
	if len(items) != len(expectedTags) {
		t.Fatalf("Expected %d <li> elements, got %d", len(expectedTags), len(items))
	}

	// Assert: Verify each tag is rendered correctly
	for i, expectedTag := range expectedTags {
		expectedContent := fmt.Sprintf("Tag %d: %s", i, expectedTag)
		if items[i] != expectedContent {
			t.Errorf("Child %d: expected '%s', got '%s'", i, expectedContent, items[i])
		}
	}
	if hasEmptyMessage(h) {
		t.Errorf("Expected no empty message for a non-empty list")
	}
}

// TestTagList_BareVariable_AddTag verifies that AddTag rebuilds the list
// with the new tag at the end.
func TestTagList_BareVariable_AddTag(t *testing.T) {
	// Arrange
	tagList, h := mountTagList(t, "golang", "wasm", "component", "framework")

	// Act: Add a new tag
	tagList.AddTag("testing")

	// Assert
	items := listItems(t, h)
	if len(items) != 5 {
		t.Fatalf("After adding a tag, expected 5 <li> elements, got %d", len(items))
	}
	if items[4] != "Tag 4: testing" {
		t.Errorf("Expected last tag 'Tag 4: testing', got '%s'", items[4])
	}
}

// TestTagList_BareVariable_MultipleAdditions verifies that successive
// additions accumulate.
func TestTagList_BareVariable_MultipleAdditions(t *testing.T) {
	// Arrange
	tagList, h := mountTagList(t, "golang", "wasm", "component", "framework")

	// Act & Assert: Add multiple tags
	for i, newTag := range []string{"rust", "typescript", "python"} {
		tagList.AddTag(newTag)
		items := listItems(t, h)

		expectedCount := 4 + i + 1
		if len(items) != expectedCount {
			t.Errorf("After adding tag %d, expected %d items, got %d", i+1, expectedCount, len(items))
			continue
		}
		expectedContent := fmt.Sprintf("Tag %d: %s", expectedCount-1, newTag)
		if last := items[len(items)-1]; last != expectedContent {
			t.Errorf("Tag %d: expected '%s', got '%s'", i+1, expectedContent, last)
		}
	}
}

// TestTagList_BareVariable_ClearTags verifies that the clear button empties
// the list and shows the empty message.
func TestTagList_BareVariable_ClearTags(t *testing.T) {
	// Arrange
	_, h := mountTagList(t, "golang", "wasm", "component", "framework")

	// Act
	if err := h.Click("clear"); err != nil {
		t.Fatalf("Click failed: %v", err)
	}

	// Assert
	if items := listItems(t, h); len(items) != 0 {
		t.Errorf("After clearing tags, expected 0 items, got %d", len(items))
	}
	if !hasEmptyMessage(h) {
		t.Errorf("Expected the empty message after clearing")
	}
}

// TestTagList_BareVariable_AddAfterClear verifies that adding after a clear
// starts numbering again and removes the empty message.
func TestTagList_BareVariable_AddAfterClear(t *testing.T) {
	// Arrange
	tagList, h := mountTagList(t, "golang", "wasm", "component", "framework")

	// Act: Clear and then add a new tag
	tagList.ClearTags()
	tagList.ClearTags()
	tagList.AddTag("newonly")

	// Assert
	items := listItems(t, h)
	if len(items) != 1 {
		t.Fatalf("After clear and add, expected 1 item, got %d", len(items))
	}
	if items[0] != "Tag 0: newonly" {
		t.Errorf("Expected 'Tag 0: newonly', got '%s'", items[0])
	}
	if hasEmptyMessage(h) {
		t.Errorf("Expected the empty message to be removed")
	}
	if n := h.Count("p"); n != 0 {
		t.Errorf("Expected no <p> elements, got %d", n)
	}
}
