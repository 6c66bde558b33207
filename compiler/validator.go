package compiler

import (
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// validateComponentName rejects component names that cannot be told apart
// from the constructs the compiler provides.
func validateComponentName(componentName, templatePath string) error {
	if IsBuiltin(componentName) {
		return fmt.Errorf(
			"Compilation Error: Component name '%s' in %s conflicts with the built-in construct '%s'.\n"+
				"\n"+
				"Suggested alternatives:\n"+
				"  - If  → Show, When or Guard\n"+
				"  - For → List, Each or Repeat",
			componentName, templatePath, componentName)
	}
	return nil
}

// validator checks the references of a lowered program against the schema
// of its component and the other known components.
type validator struct {
	comp       componentInfo
	components map[string]componentInfo
	loops      []*LoopVars
	diags      Diagnostics
}

// validateProgram reports every state, method and component reference of
// prog that cannot be resolved.
func validateProgram(prog *Program, comp componentInfo, components map[string]componentInfo) Diagnostics {
	v := &validator{comp: comp, components: components}
	v.program(prog)
	v.diags.Sort()
	return v.diags
}

func (v *validator) program(prog *Program) {
	for _, op := range prog.Ops {
		switch op.Kind {
		case OpBindAttribute, OpCreateText:
			v.text(op.Pos, op.Text)
		case OpWatchText:
			// Covered by the CreateText of the same node.
		case OpListen:
			if op.Handler.Method != "" {
				v.handler(op.Pos, op.Key, op.Handler.Method)
			} else {
				v.expr(op.Handler.Stmt)
			}
		case OpInvoke:
			v.invoke(op)
		}
	}
}

func (v *validator) invoke(op Op) {
	switch op.Component {
	case BuiltinIf:
		if f, ok := v.state(op.Pos, op.State); ok && f.Value != "" && f.Value != "bool" {
			v.diags.errorf(op.Pos, "a bool cell", "If condition '%s' must be a bool cell, found type '%s'", op.State, f.GoType)
		}
		v.program(op.Body)
		return
	case BuiltinFor:
		v.expr(op.Source)
		v.loops = append(v.loops, op.Body.Loop)
		v.program(op.Body)
		v.loops = v.loops[:len(v.loops)-1]
		return
	}

	if _, ok := v.components[strings.ToLower(op.Component)]; !ok && len(v.components) > 0 {
		v.diags.errorf(op.Pos, "", "%s", generateMissingComponentError(op.Component, v.components))
	}
	for _, a := range op.Args {
		v.expr(a.Value)
	}
}

func (v *validator) text(pos token.Position, in *Interpolation) {
	for _, r := range in.Refs {
		if r.Kind == RefState {
			v.state(pos, r.Name)
			continue
		}
		head, _, _ := strings.Cut(r.Name, ".")
		if v.bound(head) {
			continue
		}
		if _, _, ok := v.comp.Schema.field(head); ok {
			continue
		}
		if _, ok := v.comp.Schema.method(head); ok {
			continue
		}
		v.diags.errorf(pos, "", "'%s' is neither a field nor a method of '%s'. Available fields: [%s]",
			head, v.comp.PascalName, strings.Join(v.allFields(), ", "))
	}
}

// expr checks the state and method references of a template expression.
// Go expressions are left to the Go compiler.
func (v *validator) expr(x Expr) {
	switch x := x.(type) {
	case *StateRef:
		v.state(x.Position, x.Name)
	case *MethodRef:
		if _, ok := v.comp.Schema.method(x.Name); !ok {
			v.diags.errorf(x.Position, "", "Method '%s' not found on component '%s'. Available methods: %s",
				x.Name, v.comp.PascalName, getAvailableMethodNames(v.comp.Schema.Methods))
		}
	case *Block:
		v.expr(x.Inner)
	case *Assignment:
		v.expr(x.Target)
		v.expr(x.Value)
	case *List:
		for _, e := range x.Elems {
			v.expr(e)
		}
	}
}

func (v *validator) state(pos token.Position, name string) (fieldDescriptor, bool) {
	f, isState, ok := v.comp.Schema.field(name)
	if ok && isState {
		return f, true
	}
	if ok {
		v.diags.errorf(pos, "a signals.Cell or signals.Binding field", "'$%s' refers to field '%s' of type '%s', which is not a cell",
			name, f.Name, f.GoType)
		return f, false
	}
	v.diags.errorf(pos, "", "State '$%s' not found on component '%s'. Available state: [%s]",
		name, v.comp.PascalName, strings.Join(getAvailableFieldNames(v.comp.Schema.State), ", "))
	return fieldDescriptor{}, false
}

// handler validates that an event handler exists and has a signature the
// runtime can register: no parameters, or a single dom.Event.
func (v *validator) handler(pos token.Position, event, name string) {
	method, ok := v.comp.Schema.method(name)
	if !ok {
		v.diags.errorf(pos, "", "Handler method '%s' not found on component '%s'. Available methods: %s",
			name, v.comp.PascalName, getAvailableMethodNames(v.comp.Schema.Methods))
		return
	}
	if len(method.Params) == 0 || (len(method.Params) == 1 && method.Params[0].Type == "dom.Event") {
		return
	}
	params := make([]string, len(method.Params))
	for i, p := range method.Params {
		params[i] = strings.TrimSpace(p.Name + " " + p.Type)
	}
	v.diags.errorf(pos, fmt.Sprintf("func (c *%s) %s() or func (c *%s) %s(e dom.Event)", v.comp.PascalName, method.Name, v.comp.PascalName, method.Name),
		"Handler '%s' for '%s' has incorrect signature func (c *%s) %s(%s)",
		method.Name, event, v.comp.PascalName, method.Name, strings.Join(params, ", "))
}

func (v *validator) bound(name string) bool {
	for _, l := range v.loops {
		if l.Item == name || l.Index == name {
			return true
		}
	}
	return false
}

func (v *validator) allFields() []string {
	names := append(getAvailableFieldNames(v.comp.Schema.State), getAvailableFieldNames(v.comp.Schema.Fields)...)
	slices.Sort(names)
	return names
}

// levenshteinDistance calculates the edit distance between two strings.
// Used for fuzzy matching component name suggestions.
// Returns the minimum number of single-character edits (insertions, deletions, substitutions)
// needed to transform one string into the other.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Only the previous row is needed, not the full matrix.
	if len(a) > len(b) {
		a, b = b, a
	}

	prevRow := make([]int, len(a)+1)
	currRow := make([]int, len(a)+1)

	for j := 0; j <= len(a); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(b); i++ {
		currRow[0] = i

		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}

			currRow[j] = min(
				currRow[j-1]+1,    // insertion
				prevRow[j]+1,      // deletion
				prevRow[j-1]+cost, // substitution
			)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[len(a)]
}

// findSimilarComponents finds component names similar to the given name using fuzzy matching.
// Returns up to three suggestions with edit distance <= 2, closest first.
func findSimilarComponents(typedName string, availableComponents []componentInfo) []componentInfo {
	const threshold = 2

	type suggestion struct {
		comp     componentInfo
		distance int
	}

	var suggestions []suggestion
	for _, comp := range availableComponents {
		dist := levenshteinDistance(strings.ToLower(typedName), strings.ToLower(comp.PascalName))
		if dist <= threshold {
			suggestions = append(suggestions, suggestion{comp, dist})
		}
	}

	slices.SortStableFunc(suggestions, func(a, b suggestion) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}
		return strings.Compare(a.comp.PascalName, b.comp.PascalName)
	})

	var result []componentInfo
	for i := 0; i < len(suggestions) && i < 3; i++ {
		result = append(result, suggestions[i].comp)
	}
	return result
}

// generateMissingComponentError generates a detailed message for an unknown component.
func generateMissingComponentError(name string, componentMap map[string]componentInfo) string {
	var errorMsg strings.Builder
	fmt.Fprintf(&errorMsg, "Component '%s' not found.", name)

	var allComponents []componentInfo
	for _, comp := range componentMap {
		allComponents = append(allComponents, comp)
	}
	slices.SortFunc(allComponents, func(a, b componentInfo) int {
		return strings.Compare(a.PascalName, b.PascalName)
	})

	if similar := findSimilarComponents(name, allComponents); len(similar) > 0 {
		errorMsg.WriteString("\nDid you mean one of these?\n")
		for _, comp := range similar {
			fmt.Fprintf(&errorMsg, "  - %s\n", comp.PascalName)
		}
	}

	if len(allComponents) > 0 {
		errorMsg.WriteString("\nAvailable components in this project:\n")
		for i, comp := range allComponents {
			if i >= 10 {
				fmt.Fprintf(&errorMsg, "  ... and %d more\n", len(allComponents)-10)
				break
			}
			fmt.Fprintf(&errorMsg, "  - %s\n", comp.PascalName)
		}
	}

	errorMsg.WriteString("\nTips to fix this:\n")
	errorMsg.WriteString("  1. Check the component name spelling (PascalCase, e.g. MyComponent)\n")
	errorMsg.WriteString("  2. Ensure the component has a *.tsz template file\n")
	errorMsg.WriteString("  3. Use 'view Name' to mark a component whose name does not follow the casing rule\n")
	return errorMsg.String()
}
