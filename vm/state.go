package vm

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vcrobe/tsz/signals"
)

// StateProvider is implemented by states that resolve their cells by name
// instead of exposing them as exported fields.
type StateProvider interface {
	State(name string) (signals.Ref, bool)
}

// cell resolves a state reference: through StateProvider, or an exported
// field holding a Cell or Binding named name or its capitalized spelling.
func (in *Instance) cell(name string) (signals.Ref, error) {
	if ref, ok := in.cells[name]; ok {
		return ref, nil
	}
	if p, ok := in.state.(StateProvider); ok {
		if ref, ok := p.State(name); ok && ref.Valid() {
			in.cells[name] = ref
			return ref, nil
		}
		return signals.Ref{}, fmt.Errorf("state %s not found", name)
	}
	field, ok := in.field(name)
	if !ok {
		return signals.Ref{}, fmt.Errorf("state %s not found on %s", name, in.rv.Type())
	}
	r, ok := field.Interface().(signals.Referrer)
	if !ok {
		return signals.Ref{}, fmt.Errorf("field %s of type %s is not a cell", name, field.Type())
	}
	ref := r.Ref()
	if !ref.Valid() {
		return signals.Ref{}, fmt.Errorf("cell %s is not initialized", name)
	}
	in.cells[name] = ref
	return ref, nil
}

// field returns the exported struct field for a template name.
func (in *Instance) field(name string) (reflect.Value, bool) {
	return fieldOf(in.rv, name)
}

// method returns the exported method for a template name as a func value.
func (in *Instance) method(name string) (any, error) {
	m, ok := methodOf(in.rv, name)
	if !ok {
		return nil, fmt.Errorf("method %s not found on %s", name, in.rv.Type())
	}
	return m.Interface(), nil
}

// lookup resolves a free name: loop variables, then fields, then methods.
func (in *Instance) lookup(name string, vars env) (reflect.Value, bool) {
	if v, ok := vars[name]; ok {
		return reflect.ValueOf(v), true
	}
	if f, ok := in.field(name); ok {
		return f, true
	}
	return methodOf(in.rv, name)
}

// textRef resolves a placeholder such as "max" or "item.Name". A method
// without parameters is called, as generated code does.
func (in *Instance) textRef(name string, vars env) (any, error) {
	parts := strings.Split(name, ".")
	v, ok := in.lookup(parts[0], vars)
	if !ok {
		return nil, fmt.Errorf("%s is not defined", parts[0])
	}
	v = callNullary(v)
	for _, part := range parts[1:] {
		next, err := selectMember(v, part)
		if err != nil {
			return nil, err
		}
		v = callNullary(next)
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// callNullary calls v when it is a function of no arguments and one result.
func callNullary(v reflect.Value) reflect.Value {
	if v.IsValid() && v.Kind() == reflect.Func && !v.IsNil() && v.Type().NumIn() == 0 && v.Type().NumOut() == 1 {
		return v.Call(nil)[0]
	}
	return v
}

// selectMember evaluates v.name for a struct field, a method or a string map key.
func selectMember(v reflect.Value, name string) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("cannot select %s of nil", name)
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if m, ok := methodOf(v, name); ok {
		return m, nil
	}
	if f, ok := fieldOf(v, name); ok {
		return f, nil
	}
	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		e := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if e.IsValid() {
			return e, nil
		}
		return reflect.Zero(v.Type().Elem()), nil
	}
	return reflect.Value{}, fmt.Errorf("%s has no field or method %s", v.Type(), name)
}

func fieldOf(v reflect.Value, name string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	for _, n := range spellings(name) {
		sf, ok := v.Type().FieldByName(n)
		if ok && sf.IsExported() {
			return v.FieldByIndex(sf.Index), true
		}
	}
	return reflect.Value{}, false
}

func methodOf(v reflect.Value, name string) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	for _, n := range spellings(name) {
		if m := v.MethodByName(n); m.IsValid() {
			return m, true
		}
	}
	return reflect.Value{}, false
}

// spellings returns name and, when it starts with a lower-case letter, its
// exported spelling.
func spellings(name string) []string {
	r, size := utf8.DecodeRuneInString(name)
	if !unicode.IsLower(r) {
		return []string{name}
	}
	return []string{name, string(unicode.ToUpper(r)) + name[size:]}
}
