package signals

import (
	"fmt"
	"reflect"
)

// Op is an assignment operator applied to a cell.
type Op int

const (
	Assign Op = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	RemAssign
	AndAssign
	OrAssign
	XorAssign
	ShlAssign
	ShrAssign
)

var opNames = [...]string{
	Assign:    "=",
	AddAssign: "+=",
	SubAssign: "-=",
	MulAssign: "*=",
	DivAssign: "/=",
	RemAssign: "%=",
	AndAssign: "&=",
	OrAssign:  "|=",
	XorAssign: "^=",
	ShlAssign: "<<=",
	ShrAssign: ">>=",
}

// mutatorNames maps each compound operator to the generic function that
// performs it.
var mutatorNames = [...]string{
	AddAssign: "Add",
	SubAssign: "Sub",
	MulAssign: "Mul",
	DivAssign: "Div",
	RemAssign: "Rem",
	AndAssign: "And",
	OrAssign:  "Or",
	XorAssign: "Xor",
	ShlAssign: "Shl",
	ShrAssign: "Shr",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Mutator returns the name of the function in this package performing o,
// or "" for Assign, which uses Mutator.Set.
func (o Op) Mutator() string {
	if o <= Assign || int(o) >= len(mutatorNames) {
		return ""
	}
	return mutatorNames[o]
}

// ParseOp maps an operator token such as "+=" to its Op.
func ParseOp(s string) (Op, bool) {
	for i, name := range opNames {
		if name == s {
			return Op(i), true
		}
	}
	return 0, false
}

// Apply performs op with operand on the referenced cell and publishes once.
// The operand is converted to the cell's type when both are numeric.
func (r Ref) Apply(op Op, operand any) error {
	if !r.Valid() {
		return fmt.Errorf("signals: apply %s on invalid reference", op)
	}
	sl := r.arena.slot(r.id)

	rhs, err := convertOperand(operand, sl.typ)
	if err != nil {
		return fmt.Errorf("signals: %s on cell %d: %w", op, r.id, err)
	}
	if op == Assign {
		sl.value = rhs.Interface()
		r.arena.publish(r.id)
		return nil
	}

	cur := reflect.New(sl.typ).Elem()
	if sl.value != nil {
		cur.Set(reflect.ValueOf(sl.value))
	}
	next, err := applyOp(op, cur, rhs)
	if err != nil {
		return fmt.Errorf("signals: %s on cell %d: %w", op, r.id, err)
	}
	sl.value = next.Interface()
	r.arena.publish(r.id)
	return nil
}

func convertOperand(operand any, typ reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(operand)
	if !v.IsValid() {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(typ), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", typ)
	}
	if v.Type().AssignableTo(typ) {
		out := reflect.New(typ).Elem()
		out.Set(v)
		return out, nil
	}
	if isNumeric(v.Kind()) && isNumeric(typ.Kind()) && v.Type().ConvertibleTo(typ) {
		return v.Convert(typ), nil
	}
	if v.Kind() == reflect.String && typ.Kind() == reflect.String {
		return v.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), typ)
}

func applyOp(op Op, x, y reflect.Value) (reflect.Value, error) {
	out := reflect.New(x.Type()).Elem()
	switch k := x.Kind(); {
	case isSigned(k):
		a, b := x.Int(), y.Int()
		var r int64
		switch op {
		case AddAssign:
			r = a + b
		case SubAssign:
			r = a - b
		case MulAssign:
			r = a * b
		case DivAssign, RemAssign:
			if b == 0 {
				return out, fmt.Errorf("integer division by zero")
			}
			if op == DivAssign {
				r = a / b
			} else {
				r = a % b
			}
		case AndAssign:
			r = a & b
		case OrAssign:
			r = a | b
		case XorAssign:
			r = a ^ b
		case ShlAssign, ShrAssign:
			if b < 0 {
				return out, fmt.Errorf("negative shift amount %d", b)
			}
			if op == ShlAssign {
				r = a << uint64(b)
			} else {
				r = a >> uint64(b)
			}
		}
		out.SetInt(r)
	case isUnsigned(k):
		a, b := x.Uint(), y.Uint()
		var r uint64
		switch op {
		case AddAssign:
			r = a + b
		case SubAssign:
			r = a - b
		case MulAssign:
			r = a * b
		case DivAssign, RemAssign:
			if b == 0 {
				return out, fmt.Errorf("integer division by zero")
			}
			if op == DivAssign {
				r = a / b
			} else {
				r = a % b
			}
		case AndAssign:
			r = a & b
		case OrAssign:
			r = a | b
		case XorAssign:
			r = a ^ b
		case ShlAssign:
			r = a << b
		case ShrAssign:
			r = a >> b
		}
		out.SetUint(r)
	case k == reflect.Float32 || k == reflect.Float64:
		a, b := x.Float(), y.Float()
		switch op {
		case AddAssign:
			out.SetFloat(a + b)
		case SubAssign:
			out.SetFloat(a - b)
		case MulAssign:
			out.SetFloat(a * b)
		case DivAssign:
			out.SetFloat(a / b)
		default:
			return out, fmt.Errorf("operator %s not defined on %s", op, x.Type())
		}
	case k == reflect.Complex64 || k == reflect.Complex128:
		a, b := x.Complex(), y.Complex()
		switch op {
		case AddAssign:
			out.SetComplex(a + b)
		case SubAssign:
			out.SetComplex(a - b)
		case MulAssign:
			out.SetComplex(a * b)
		case DivAssign:
			out.SetComplex(a / b)
		default:
			return out, fmt.Errorf("operator %s not defined on %s", op, x.Type())
		}
	case k == reflect.String && op == AddAssign:
		out.SetString(x.String() + y.String())
	default:
		return out, fmt.Errorf("operator %s not defined on %s", op, x.Type())
	}
	return out, nil
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || (k >= reflect.Float32 && k <= reflect.Complex128)
}
