package view

import "github.com/vcrobe/tsz/console"

var faultHandler = func(err error) {
	panic(err)
}

// SetFaultHandler replaces the function receiving failures that happen in
// subscribers, where no caller can take an error. It returns the previous
// handler. The default panics.
func SetFaultHandler(fn func(error)) (previous func(error)) {
	previous = faultHandler
	faultHandler = fn
	return previous
}

// Check reports a non-nil err to the console and to the fault handler.
func Check(err error) {
	if err == nil {
		return
	}
	console.Error("view:", err)
	faultHandler(err)
}
