package compiler

import (
	"fmt"
	"slices"
	"strings"
)

// getContextLines returns a formatted string with context lines around the error line.
// It shows 'contextSize' lines before and after the target line.
func getContextLines(source string, lineNumber int, contextSize int) string {
	lines := strings.Split(source, "\n")

	startLine := lineNumber - contextSize - 1 // -1 for 0-based indexing
	if startLine < 0 {
		startLine = 0
	}

	endLine := lineNumber + contextSize
	if endLine > len(lines) {
		endLine = len(lines)
	}

	var result strings.Builder
	result.WriteString("\n")

	for i := startLine; i < endLine; i++ {
		lineNum := i + 1
		prefix := "  "

		// Highlight the error line with a marker
		if lineNum == lineNumber {
			prefix = "> "
		}

		result.WriteString(fmt.Sprintf("%s%4d | %s\n", prefix, lineNum, lines[i]))
	}

	return result.String()
}

// getAvailableFieldNames returns the sorted names of a component's state cells.
func getAvailableFieldNames(fields map[string]fieldDescriptor) []string {
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

// getAvailableMethodNames returns a comma-separated string of available method names for error messages.
func getAvailableMethodNames(methods map[string]methodDescriptor) string {
	var names []string
	for methodName := range methods {
		names = append(names, methodName)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// lowerFirst returns s with its first byte lower-cased.
func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]+('a'-'A')) + s[1:]
}

// upperFirst returns s with its first byte upper-cased.
func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
