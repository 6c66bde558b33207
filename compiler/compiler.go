package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options configures Compile.
type Options struct {
	// DevMode prints warnings next to errors.
	DevMode bool
	// DryRun compiles every template without writing the generated files.
	DryRun bool
	// Logf receives progress lines. Defaults to fmt.Printf.
	Logf func(format string, args ...any)
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
		return
	}
	fmt.Printf(format, args...)
}

// TemplateError is returned for a template that does not compile. Its
// message lists every diagnostic with the surrounding source lines.
type TemplateError struct {
	Path  string
	Diags Diagnostics
	src   []byte
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%d error(s) in %s\n%s", len(e.Diags), e.Path, e.Diags.Report(e.src))
}

// Compile is the main entry point for the tsz compiler.
// It discovers all *.tsz templates under srcDir, inspects their
// corresponding Go structs, and writes a *.generated.go file next
// to each template.
func Compile(srcDir string, opts Options) error {
	// Convert srcDir to absolute path for consistent path handling
	absSrcDir, err := filepath.Abs(srcDir)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path for srcDir: %w", err)
	}

	// Step 1: Discover templates and inspect their Go structs.
	components, err := discoverAndInspectComponents(absSrcDir, opts.logf)
	if err != nil {
		return fmt.Errorf("failed to discover or inspect components: %w", err)
	}
	opts.logf("Discovered and inspected %d component templates.\n", len(components))

	componentMap := make(map[string]componentInfo)
	for _, comp := range components {
		componentMap[comp.LowercaseName] = comp
	}

	// Step 2: Compile every template, collecting failures so one bad
	// template does not hide the others.
	var errs []error
	for _, comp := range components {
		if err := compileComponentTemplate(comp, componentMap, opts); err != nil {
			errs = append(errs, fmt.Errorf("failed to compile template for %s: %w", comp.PascalName, err))
		}
	}
	return errors.Join(errs...)
}

// CompileFile compiles one template into Go source for package pkg without
// inspecting the component's Go files. Every reference is assumed to exist.
func CompileFile(path string, src []byte, pkg string) ([]byte, error) {
	prog, err := compileProgram(path, src)
	if err != nil {
		return nil, err
	}
	code, err := Generate(prog, GenOptions{Package: pkg, Source: filepath.Base(path)})
	if err != nil {
		return nil, templateError(path, src, err)
	}
	return code, nil
}

// compileProgram parses and lowers a template.
func compileProgram(path string, src []byte) (*Program, error) {
	v, err := ParseView(path, src)
	if err != nil {
		return nil, templateError(path, src, err)
	}
	prog, err := Lower(v)
	if err != nil {
		return nil, templateError(path, src, err)
	}
	return prog, nil
}

func templateError(path string, src []byte, err error) error {
	var diags Diagnostics
	if !errors.As(err, &diags) {
		return err
	}
	return &TemplateError{Path: path, Diags: diags, src: src}
}

func compileComponentTemplate(comp componentInfo, componentMap map[string]componentInfo, opts Options) error {
	src, err := os.ReadFile(comp.Path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	prog, err := compileProgram(comp.Path, src)
	if err != nil {
		return err
	}
	if prog.Name != comp.PascalName {
		return fmt.Errorf("%s declares %s, expected %s", comp.Path, prog.Name, comp.PascalName)
	}

	if comp.GoPath != "" {
		if diags := validateProgram(prog, comp, componentMap); len(diags) > 0 {
			return &TemplateError{Path: comp.Path, Diags: diags, src: src}
		}
	}
	if opts.DevMode && len(prog.Warnings) > 0 {
		opts.logf("%s", prog.Warnings.Report(src))
	}

	c := comp
	code, err := Generate(prog, GenOptions{
		Package:    comp.PackageName,
		Source:     filepath.Base(comp.Path),
		comp:       &c,
		components: componentMap,
	})
	if err != nil {
		return templateError(comp.Path, src, err)
	}

	outputPath := filepath.Join(filepath.Dir(comp.Path), strings.ToLower(comp.PascalName)+".generated.go")
	if opts.DryRun {
		opts.logf("Would write %s (%d bytes)\n", outputPath, len(code))
		return nil
	}
	if err := os.WriteFile(outputPath, code, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	opts.logf("Generated %s\n", outputPath)
	return nil
}
