//go:build js || wasm

// Package dialogs wraps the browser's modal dialogs.
package dialogs

import (
	"syscall/js"
)

// Alert shows msg and blocks until it is dismissed.
func Alert(msg string) {
	js.Global().Call("alert", msg)
}

// Prompt asks for a line of text, pre-filled with initial. ok is false
// when the dialog was cancelled.
func Prompt(message, initial string) (answer string, ok bool) {
	result := js.Global().Call("prompt", message, initial)
	if result.IsNull() || result.IsUndefined() {
		return "", false
	}
	return result.String(), true
}

// Confirm asks an OK/Cancel question.
func Confirm(message string) bool {
	return js.Global().Call("confirm", message).Truthy()
}
