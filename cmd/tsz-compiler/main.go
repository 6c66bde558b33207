package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vcrobe/tsz/compiler"
)

func main() {
	// --- CLI Flags ---
	// The '-in' flag specifies the source directory to scan for templates.
	inDir := flag.String("in", ".", "The source directory to scan for *.tsz files.")
	// The '-dev' flag enables development mode (warnings are reported).
	devMode := flag.Bool("dev", false, "Enable development mode (report template warnings)")
	// The '-dry' flag compiles without writing generated files.
	dryRun := flag.Bool("dry", false, "Compile and validate without writing *.generated.go files")
	// The '-file' flag compiles a single template to stdout without inspecting Go code.
	file := flag.String("file", "", "Compile one *.tsz file and print the generated code")
	pkg := flag.String("pkg", "main", "Package name used with -file")
	flag.Parse()

	if *file != "" {
		src, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read template: %v", err)
		}
		code, err := compiler.CompileFile(*file, src, *pkg)
		if err != nil {
			log.Fatalf("Compilation failed: %v", err)
		}
		os.Stdout.Write(code)
		return
	}

	fmt.Printf("Starting compilation...\nSource directory: %s\n", *inDir)
	if *devMode {
		fmt.Printf("Development mode: ENABLED\n")
	}
	opts := compiler.Options{DevMode: *devMode, DryRun: *dryRun}
	if err := compiler.Compile(*inDir, opts); err != nil {
		log.Fatalf("Compilation failed: %v", err)
	}

	fmt.Printf("🎉 Compilation completed successfully!\n")
}
