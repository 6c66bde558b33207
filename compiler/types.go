package compiler

// componentSchema holds the type information of a component struct.
type componentSchema struct {
	State       map[string]fieldDescriptor  // Cell and Binding fields, keyed by field name
	Fields      map[string]fieldDescriptor  // Other fields
	Methods     map[string]methodDescriptor // Methods with a pointer or value receiver
	Constructor *methodDescriptor           // New<Name>, when declared
	HasBase     bool                        // Embeds view.Base
}

// fieldDescriptor describes a struct field.
type fieldDescriptor struct {
	Name   string
	GoType string // e.g. "signals.Cell[int]"
	// Value is the type held by a cell (e.g. "int"), empty for other fields.
	Value string
}

// methodDescriptor holds the signature information for a component method.
type methodDescriptor struct {
	Name    string            // Method name (e.g., "inc")
	Params  []paramDescriptor // Parameter list
	Returns []string          // Return type names
}

// paramDescriptor describes a single parameter in a method signature.
type paramDescriptor struct {
	Name string // Parameter name (e.g., "e")
	Type string // Qualified type (e.g., "dom.Event", "signals.Binding[int]")
}

// componentInfo holds all discovered information about a component.
type componentInfo struct {
	Path          string // template path
	GoPath        string // file declaring the struct
	PascalName    string
	LowercaseName string
	PackageName   string
	ImportPath    string            // Full import path (e.g., "github.com/vcrobe/tsz/testcomponents/counter")
	Imports       map[string]string // package name -> import path, from the component's Go files
	Schema        componentSchema
}

func newSchema() componentSchema {
	return componentSchema{
		State:   make(map[string]fieldDescriptor),
		Fields:  make(map[string]fieldDescriptor),
		Methods: make(map[string]methodDescriptor),
	}
}

// field looks up a state cell or field by template name, accepting the
// capitalized spelling of exported fields.
func (s componentSchema) field(name string) (fieldDescriptor, bool, bool) {
	for _, n := range []string{name, upperFirst(name)} {
		if f, ok := s.State[n]; ok {
			return f, true, true
		}
		if f, ok := s.Fields[n]; ok {
			return f, false, true
		}
	}
	return fieldDescriptor{}, false, false
}

// method looks up a method by template name, accepting the capitalized
// spelling of exported methods.
func (s componentSchema) method(name string) (methodDescriptor, bool) {
	for _, n := range []string{name, upperFirst(name)} {
		if m, ok := s.Methods[n]; ok {
			return m, true
		}
	}
	return methodDescriptor{}, false
}
