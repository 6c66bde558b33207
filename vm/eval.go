package vm

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// eval evaluates a Go expression of a template against the instance.
// Supported are literals, names, selectors, unary and binary operators on
// basic values, calls, index expressions and len.
func (in *Instance) eval(x ast.Expr, vars env) (any, error) {
	v, err := in.evalValue(x, vars)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

func (in *Instance) evalValue(x ast.Expr, vars env) (reflect.Value, error) {
	switch x := x.(type) {
	case *ast.BasicLit:
		return literal(x)
	case *ast.Ident:
		switch x.Name {
		case "true", "false":
			return reflect.ValueOf(x.Name == "true"), nil
		case "nil":
			return reflect.Value{}, nil
		}
		if v, ok := in.lookup(x.Name, vars); ok {
			return v, nil
		}
		return reflect.Value{}, fmt.Errorf("%s is not defined", x.Name)
	case *ast.ParenExpr:
		return in.evalValue(x.X, vars)
	case *ast.SelectorExpr:
		v, err := in.evalValue(x.X, vars)
		if err != nil {
			return reflect.Value{}, err
		}
		return selectMember(v, x.Sel.Name)
	case *ast.UnaryExpr:
		return in.unary(x, vars)
	case *ast.BinaryExpr:
		return in.binary(x, vars)
	case *ast.CallExpr:
		return in.call(x, vars)
	case *ast.IndexExpr:
		return in.index(x, vars)
	}
	return reflect.Value{}, fmt.Errorf("unsupported expression %T", x)
}

func literal(x *ast.BasicLit) (reflect.Value, error) {
	c := constant.MakeFromLiteral(x.Value, x.Kind, 0)
	switch x.Kind {
	case token.INT:
		i, ok := constant.Int64Val(c)
		if !ok {
			return reflect.Value{}, fmt.Errorf("integer %s overflows", x.Value)
		}
		return reflect.ValueOf(int(i)), nil
	case token.FLOAT:
		f, _ := constant.Float64Val(c)
		return reflect.ValueOf(f), nil
	case token.CHAR:
		i, _ := constant.Int64Val(c)
		return reflect.ValueOf(rune(i)), nil
	case token.STRING:
		return reflect.ValueOf(constant.StringVal(c)), nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported literal %s", x.Value)
}

func (in *Instance) unary(x *ast.UnaryExpr, vars env) (reflect.Value, error) {
	v, err := in.evalValue(x.X, vars)
	if err != nil {
		return reflect.Value{}, err
	}
	c, ok := toConstant(v)
	if !ok {
		return reflect.Value{}, fmt.Errorf("operator %s not defined on %s", x.Op, typeName(v))
	}
	switch {
	case x.Op == token.NOT && c.Kind() == constant.Bool,
		(x.Op == token.SUB || x.Op == token.ADD) && isNumber(c),
		x.Op == token.XOR && c.Kind() == constant.Int:
		return fromConstant(constant.UnaryOp(x.Op, c, 0), v.Type()), nil
	}
	return reflect.Value{}, fmt.Errorf("operator %s not defined on %s", x.Op, typeName(v))
}

func (in *Instance) binary(x *ast.BinaryExpr, vars env) (reflect.Value, error) {
	l, err := in.evalValue(x.X, vars)
	if err != nil {
		return reflect.Value{}, err
	}
	if x.Op == token.LAND || x.Op == token.LOR {
		lb, ok := asBool(l)
		if !ok {
			return reflect.Value{}, fmt.Errorf("operator %s not defined on %s", x.Op, typeName(l))
		}
		if lb == (x.Op == token.LOR) {
			return reflect.ValueOf(lb), nil
		}
		r, err := in.evalValue(x.Y, vars)
		if err != nil {
			return reflect.Value{}, err
		}
		rb, ok := asBool(r)
		if !ok {
			return reflect.Value{}, fmt.Errorf("operator %s not defined on %s", x.Op, typeName(r))
		}
		return reflect.ValueOf(rb), nil
	}

	r, err := in.evalValue(x.Y, vars)
	if err != nil {
		return reflect.Value{}, err
	}
	cl, okl := toConstant(l)
	cr, okr := toConstant(r)
	if !okl || !okr {
		if x.Op == token.EQL || x.Op == token.NEQ {
			eq, err := equal(l, r)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(eq == (x.Op == token.EQL)), nil
		}
		return reflect.Value{}, fmt.Errorf("operator %s not defined on %s and %s", x.Op, typeName(l), typeName(r))
	}
	if cl.Kind() != cr.Kind() && !(isNumber(cl) && isNumber(cr)) {
		return reflect.Value{}, fmt.Errorf("mismatched types %s and %s", typeName(l), typeName(r))
	}

	switch x.Op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		if cl.Kind() == constant.Bool && x.Op != token.EQL && x.Op != token.NEQ {
			return reflect.Value{}, fmt.Errorf("operator %s not defined on bool", x.Op)
		}
		return reflect.ValueOf(constant.Compare(cl, x.Op, cr)), nil
	case token.SHL, token.SHR:
		if cl.Kind() != constant.Int || cr.Kind() != constant.Int {
			return reflect.Value{}, fmt.Errorf("shift of %s by %s", typeName(l), typeName(r))
		}
		n, ok := constant.Uint64Val(cr)
		if !ok {
			return reflect.Value{}, fmt.Errorf("invalid shift amount %s", cr)
		}
		return fromConstant(constant.Shift(cl, x.Op, uint(n)), l.Type()), nil
	case token.QUO, token.REM:
		if constant.Sign(cr) == 0 {
			return reflect.Value{}, errors.New("division by zero")
		}
	}

	op := x.Op
	integers := cl.Kind() == constant.Int && cr.Kind() == constant.Int
	switch {
	case op == token.QUO && integers:
		// constant.BinaryOp divides exactly unless asked for integer division.
		op = token.QUO_ASSIGN
	case op == token.REM && !integers:
		return reflect.Value{}, fmt.Errorf("operator %% not defined on %s", typeName(l))
	case cl.Kind() == constant.String && op != token.ADD:
		return reflect.Value{}, fmt.Errorf("operator %s not defined on string", op)
	case cl.Kind() == constant.Bool:
		return reflect.Value{}, fmt.Errorf("operator %s not defined on bool", op)
	case !integers && (op == token.AND || op == token.OR || op == token.XOR || op == token.AND_NOT):
		return reflect.Value{}, fmt.Errorf("operator %s not defined on %s", op, typeName(l))
	}
	return fromConstant(constant.BinaryOp(cl, op, cr), resultType(l, r)), nil
}

func (in *Instance) call(x *ast.CallExpr, vars env) (reflect.Value, error) {
	if id, ok := x.Fun.(*ast.Ident); ok && id.Name == "len" {
		if _, shadowed := in.lookup("len", vars); !shadowed {
			if len(x.Args) != 1 {
				return reflect.Value{}, errors.New("len takes one argument")
			}
			v, err := in.evalValue(x.Args[0], vars)
			if err != nil {
				return reflect.Value{}, err
			}
			switch v.Kind() {
			case reflect.Slice, reflect.Array, reflect.String, reflect.Map, reflect.Chan:
				return reflect.ValueOf(v.Len()), nil
			}
			return reflect.Value{}, fmt.Errorf("invalid argument %s for len", typeName(v))
		}
	}

	fn, err := in.evalValue(x.Fun, vars)
	if err != nil {
		return reflect.Value{}, err
	}
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return reflect.Value{}, fmt.Errorf("cannot call %s", typeName(fn))
	}
	ft := fn.Type()
	if n := len(x.Args); n < ft.NumIn()-boolInt(ft.IsVariadic()) || (!ft.IsVariadic() && n != ft.NumIn()) {
		return reflect.Value{}, fmt.Errorf("wrong argument count %d for %s", n, ft)
	}
	args := make([]reflect.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := in.evalValue(a, vars)
		if err != nil {
			return reflect.Value{}, err
		}
		pt := paramType(ft, i)
		if args[i], err = convert(v, pt); err != nil {
			return reflect.Value{}, fmt.Errorf("argument %d: %w", i+1, err)
		}
	}

	out := fn.Call(args)
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return reflect.Value{}, nil
	case 1:
		return out[0], nil
	}
	return reflect.Value{}, fmt.Errorf("%s returns %d values", ft, len(out))
}

func (in *Instance) index(x *ast.IndexExpr, vars env) (reflect.Value, error) {
	v, err := in.evalValue(x.X, vars)
	if err != nil {
		return reflect.Value{}, err
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	idx, err := in.evalValue(x.Index, vars)
	if err != nil {
		return reflect.Value{}, err
	}
	switch v.Kind() {
	case reflect.Map:
		key, err := convert(idx, v.Type().Key())
		if err != nil {
			return reflect.Value{}, err
		}
		if e := v.MapIndex(key); e.IsValid() {
			return e, nil
		}
		return reflect.Zero(v.Type().Elem()), nil
	case reflect.Slice, reflect.Array, reflect.String:
		c, ok := toConstant(idx)
		if !ok || c.Kind() != constant.Int {
			return reflect.Value{}, fmt.Errorf("invalid index %s", typeName(idx))
		}
		i, _ := constant.Int64Val(c)
		if i < 0 || i >= int64(v.Len()) {
			return reflect.Value{}, fmt.Errorf("index %d out of range [0:%d]", i, v.Len())
		}
		return v.Index(int(i)), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot index %s", typeName(v))
}

func toConstant(v reflect.Value) (constant.Value, bool) {
	if !v.IsValid() {
		return nil, false
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch k := v.Kind(); {
	case k == reflect.Bool:
		return constant.MakeBool(v.Bool()), true
	case k >= reflect.Int && k <= reflect.Int64:
		return constant.MakeInt64(v.Int()), true
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return constant.MakeUint64(v.Uint()), true
	case k == reflect.Float32 || k == reflect.Float64:
		return constant.MakeFloat64(v.Float()), true
	case k == reflect.String:
		return constant.MakeString(v.String()), true
	}
	return nil, false
}

// fromConstant converts c back to a Go value of typ when the kinds agree,
// and to the default type of c otherwise.
func fromConstant(c constant.Value, typ reflect.Type) reflect.Value {
	var v reflect.Value
	switch c.Kind() {
	case constant.Bool:
		v = reflect.ValueOf(constant.BoolVal(c))
	case constant.String:
		v = reflect.ValueOf(constant.StringVal(c))
	case constant.Int:
		if typ != nil && typ.Kind() >= reflect.Uint && typ.Kind() <= reflect.Uintptr {
			u, _ := constant.Uint64Val(c)
			return reflect.ValueOf(u).Convert(typ)
		}
		i, _ := constant.Int64Val(c)
		v = reflect.ValueOf(int(i))
	default:
		f, _ := constant.Float64Val(constant.ToFloat(c))
		v = reflect.ValueOf(f)
	}
	if typ != nil && v.Kind() != reflect.Interface && v.Type().ConvertibleTo(typ) && sameClass(v.Kind(), typ.Kind()) {
		return v.Convert(typ)
	}
	return v
}

func resultType(l, r reflect.Value) reflect.Type {
	lk, rk := l.Kind(), r.Kind()
	if (rk == reflect.Float32 || rk == reflect.Float64) && lk != reflect.Float32 && lk != reflect.Float64 {
		return r.Type()
	}
	return l.Type()
}

func sameClass(a, b reflect.Kind) bool {
	class := func(k reflect.Kind) int {
		switch {
		case k >= reflect.Int && k <= reflect.Uintptr:
			return 1
		case k == reflect.Float32 || k == reflect.Float64:
			return 2
		}
		return int(k) + 10
	}
	return class(a) == class(b)
}

func isNumber(c constant.Value) bool {
	return c.Kind() == constant.Int || c.Kind() == constant.Float
}

func asBool(v reflect.Value) (bool, bool) {
	if v.IsValid() && v.Kind() == reflect.Bool {
		return v.Bool(), true
	}
	return false, false
}

func equal(l, r reflect.Value) (bool, error) {
	if !l.IsValid() || !r.IsValid() {
		return isNil(l) && isNil(r), nil
	}
	if !l.Type().Comparable() || !r.Type().Comparable() {
		return false, fmt.Errorf("cannot compare %s and %s", l.Type(), r.Type())
	}
	return l.Interface() == r.Interface(), nil
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func convert(v reflect.Value, typ reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		if isNilable(typ) {
			return reflect.Zero(typ), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", typ)
	}
	if v.Type().AssignableTo(typ) {
		return v, nil
	}
	if _, numeric := toConstant(v); numeric && v.Kind() != reflect.Bool && v.Type().ConvertibleTo(typ) && sameClass(v.Kind(), typ.Kind()) {
		return v.Convert(typ), nil
	}
	if v.Kind() == reflect.Int && (typ.Kind() == reflect.Float32 || typ.Kind() == reflect.Float64) {
		return v.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), typ)
}

func isNilable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}
