package events

import (
	"testing"

	"github.com/vcrobe/tsz/dom"
)

func TestLookup(t *testing.T) {
	if _, ok := Lookup("click"); !ok {
		t.Errorf("Expected click to be recognized")
	}
	if _, ok := Lookup("onclick"); ok {
		t.Errorf("Expected onclick to be rejected")
	}
	if IsEvent("class") {
		t.Errorf("Expected class not to be an event")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		event, tag string
		want       bool
	}{
		{"click", "button", true},
		{"click", "div", true},
		{"input", "input", true},
		{"input", "div", false},
		{"submit", "form", true},
		{"submit", "button", false},
		{"hover", "div", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.event, tt.tag); got != tt.want {
			t.Errorf("IsSupported(%q, %q): expected %v, got %v", tt.event, tt.tag, tt.want, got)
		}
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	if len(names) != len(registry) {
		t.Fatalf("Expected %d names, got %d", len(registry), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted names, got %v", names)
			break
		}
	}
}

func TestAdaptNoArgEvent(t *testing.T) {
	doc := dom.NewDocument()
	body, _ := doc.Body()
	btn, _ := doc.CreateElement("button")
	_ = body.AppendChild(btn)
	calls := 0
	_ = btn.AddEventListener("click", AdaptNoArgEvent(func() { calls++ }))

	_, _ = doc.Dispatch(btn, "click")

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}
