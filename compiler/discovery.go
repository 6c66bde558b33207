package compiler

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// templateExt is the extension of template files.
const templateExt = ".tsz"

// discoverAndInspectComponents finds all *.tsz files and inspects the Go files of their packages.
func discoverAndInspectComponents(rootDir string, logf func(string, ...any)) ([]componentInfo, error) {
	var components []componentInfo

	// Step 1: Load all packages in the module, configured for WASM.
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  rootDir,
		Env:  append(os.Environ(), "GOOS=js", "GOARCH=wasm"),
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Step 2: Iterate through the loaded packages.
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue // Skip packages that are empty for the js/wasm target.
		}

		// All files in a package share the same directory.
		packageDir := filepath.Dir(pkg.GoFiles[0])

		// Step 3: Scan the package's directory for templates.
		files, err := os.ReadDir(packageDir)
		if err != nil {
			logf("Warning: could not read directory %s: %v\n", packageDir, err)
			continue
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), templateExt) {
				continue
			}

			templatePath := filepath.Join(packageDir, file.Name())
			src, err := os.ReadFile(templatePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read template: %w", err)
			}
			pascalName, ok := declaredName(src)
			if !ok {
				return nil, fmt.Errorf("%s: template must start with \"declare Name;\"", templatePath)
			}
			if err := validateComponentName(pascalName, templatePath); err != nil {
				return nil, err
			}

			info, err := inspectPackage(pkg.GoFiles, pascalName)
			if err != nil {
				logf("Warning: could not inspect component %s: %v\n", pascalName, err)
				info = componentInfo{Schema: newSchema(), Imports: map[string]string{}}
			}
			info.Path = templatePath
			info.PascalName = pascalName
			info.LowercaseName = strings.ToLower(pascalName)
			info.PackageName = pkg.Name
			info.ImportPath = pkg.PkgPath
			components = append(components, info)
		}
	}

	if len(components) == 0 {
		logf("Warning: No component templates (*%s) were found in any Go packages.\n", templateExt)
	}

	return components, nil
}

// declaredName reads the name from the leading "declare Name;" of a template.
func declaredName(src []byte) (string, bool) {
	items, _ := tokenize(token.NewFileSet(), "", src)
	if len(items) < 3 || items[0].tok != token.IDENT || items[0].lit != "declare" || items[1].tok != token.IDENT {
		return "", false
	}
	return items[1].lit, true
}

// extractTypeName extracts the type name from an AST expression.
// Handles simple types (int, string, bool), slice types ([]User), pointer types (*User),
// generic instantiations (signals.Cell[int]) and function types.
func extractTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		if t.Len != nil {
			return "[" + exprString(t.Len) + "]" + extractTypeName(t.Elt)
		}
		return "[]" + extractTypeName(t.Elt)
	case *ast.StarExpr:
		return "*" + extractTypeName(t.X)
	case *ast.MapType:
		return "map[" + extractTypeName(t.Key) + "]" + extractTypeName(t.Value)
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name + "." + t.Sel.Name
		}
	case *ast.IndexExpr:
		return extractTypeName(t.X) + "[" + extractTypeName(t.Index) + "]"
	case *ast.IndexListExpr:
		var args []string
		for _, idx := range t.Indices {
			args = append(args, extractTypeName(idx))
		}
		return extractTypeName(t.X) + "[" + strings.Join(args, ", ") + "]"
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "any"
		}
	case *ast.FuncType:
		var paramTypes []string
		if t.Params != nil {
			for _, param := range t.Params.List {
				paramTypes = append(paramTypes, extractTypeName(param.Type))
			}
		}
		returnTypes := extractReturns(t.Results)
		paramsStr := strings.Join(paramTypes, ", ")
		switch len(returnTypes) {
		case 0:
			return fmt.Sprintf("func(%s)", paramsStr)
		case 1:
			return fmt.Sprintf("func(%s) %s", paramsStr, returnTypes[0])
		}
		return fmt.Sprintf("func(%s) (%s)", paramsStr, strings.Join(returnTypes, ", "))
	}
	return "unknown"
}

func exprString(x ast.Expr) string {
	if lit, ok := x.(*ast.BasicLit); ok {
		return lit.Value
	}
	return extractTypeName(x)
}

// extractParams extracts parameter descriptors from a function's parameter list.
func extractParams(fields *ast.FieldList) []paramDescriptor {
	if fields == nil {
		return nil
	}
	var params []paramDescriptor
	for _, field := range fields.List {
		typeName := extractTypeName(field.Type)
		// Handle cases where multiple params share the same type: func(a, b string)
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				params = append(params, paramDescriptor{Name: name.Name, Type: typeName})
			}
		} else {
			params = append(params, paramDescriptor{Type: typeName})
		}
	}
	return params
}

// extractReturns extracts return type names from a function's return list.
func extractReturns(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var returns []string
	for _, field := range fields.List {
		typeName := extractTypeName(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			returns = append(returns, typeName)
		}
	}
	return returns
}

// cellValueType returns T for Cell[T] and Binding[T] of the signals
// package imported as pkg.
func cellValueType(goType, pkg string) (string, bool) {
	for _, prefix := range []string{pkg + ".Cell[", pkg + ".Binding["} {
		if rest, ok := strings.CutPrefix(goType, prefix); ok && strings.HasSuffix(rest, "]") {
			return rest[:len(rest)-1], true
		}
	}
	return "", false
}

// inspectPackage parses the Go files of a package and extracts the schema
// of the struct structName, its methods, its New<Name> constructor and the
// imports visible to generated code.
func inspectPackage(goFiles []string, structName string) (componentInfo, error) {
	info := componentInfo{Schema: newSchema(), Imports: make(map[string]string)}
	fset := token.NewFileSet()
	found := false

	for _, path := range goFiles {
		if strings.HasSuffix(path, ".generated.go") || strings.HasSuffix(path, "_test.go") {
			continue
		}
		file, err := goparser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return info, err
		}
		if inspectFile(file, structName, &info) {
			found = true
			info.GoPath = path
		}
	}

	if !found {
		return info, fmt.Errorf("struct '%s' not found in package", structName)
	}
	return info, nil
}

// inspectFile adds what file declares about structName to info and reports
// whether the struct type itself is declared there.
func inspectFile(file *ast.File, structName string, info *componentInfo) bool {
	schema := &info.Schema
	found := false
	signalsName, viewName := "signals", "view"

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path[strings.LastIndex(path, "/")+1:]
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		info.Imports[name] = path
		switch path {
		case signalsImport:
			signalsName = name
		case viewImport:
			viewName = name
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.TypeSpec:
			structType, ok := decl.Type.(*ast.StructType)
			if !ok || decl.Name.Name != structName {
				return true
			}
			found = true
			for _, field := range structType.Fields.List {
				goType := extractTypeName(field.Type)
				if len(field.Names) == 0 {
					if goType == viewName+".Base" || goType == "*"+viewName+".Base" {
						schema.HasBase = true
					}
					continue
				}
				for _, name := range field.Names {
					desc := fieldDescriptor{Name: name.Name, GoType: goType}
					if value, ok := cellValueType(goType, signalsName); ok {
						desc.Value = value
						schema.State[name.Name] = desc
					} else {
						schema.Fields[name.Name] = desc
					}
				}
			}
		case *ast.FuncDecl:
			if decl.Recv == nil {
				if decl.Name.Name == "New"+structName {
					ctor := methodDescriptor{
						Name:    decl.Name.Name,
						Params:  extractParams(decl.Type.Params),
						Returns: extractReturns(decl.Type.Results),
					}
					schema.Constructor = &ctor
				}
				return false
			}
			recv := decl.Recv.List[0].Type
			if starExpr, ok := recv.(*ast.StarExpr); ok {
				recv = starExpr.X
			}
			if typeIdent, ok := recv.(*ast.Ident); ok && typeIdent.Name == structName {
				schema.Methods[decl.Name.Name] = methodDescriptor{
					Name:    decl.Name.Name,
					Params:  extractParams(decl.Type.Params),
					Returns: extractReturns(decl.Type.Results),
				}
			}
			return false
		}
		return true
	})
	return found
}
