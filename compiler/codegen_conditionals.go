package compiler

// genIf emits a view.If bound to the condition cell. The body becomes a
// fragment closure that the If runs each time the condition turns true.
func (g *generator) genIf(op Op) {
	v := viewVar(op.Node)
	option := ""
	if op.Replace {
		option = ", view.Replace()"
	}
	g.printf("%s := view.NewIf(%s.Bind()%s)", v, g.stateExpr(op.State), option)
	g.printf("if err := %s.Init(m.At(%s), func(m view.Mount) error {", v, parentExpr(op.Parent))
	g.genMount(op.Body)
	g.printf("return nil")
	g.printf("}); err != nil {")
	g.printf("return err")
	g.printf("}")
}
