// Command ijkc is the batch Ijk-to-VM compiler CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sflorezs1/IJack-nand2tetris/compiler"
	"github.com/sflorezs1/IJack-nand2tetris/lexer"
	"github.com/sflorezs1/IJack-nand2tetris/outline"
)

const usage = `ijkc - Ijk compiler CLI

Usage:
  ijkc <command> <path>

Commands:
  compile   Compile a .ijk file, or every .ijk file in a directory (non-recursive)
  tokens    Dump the filtered token stream for one .ijk file
  symbols   List the classes, fields, statics, and subroutines declared in one .ijk file
  help      Show this help
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compile":
		os.Exit(compileCommand(os.Args[2:]))
	case "tokens":
		os.Exit(tokensCommand(os.Args[2:]))
	case "symbols":
		os.Exit(symbolsCommand(os.Args[2:]))
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}
}

func compileCommand(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ijkc compile <file|dir>")
		return 1
	}
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid file/directory, compilation failed")
		return 1
	}

	if info.IsDir() {
		return compileDirectory(path)
	}
	return compileOneFile(path)
}

func compileDirectory(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", dir, err)
		return 1
	}
	exitCode := 0
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".ijk" {
			continue
		}
		if compileOneFile(filepath.Join(dir, e.Name())) != 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func compileOneFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		return 1
	}

	ext := filepath.Ext(path)
	outPath := strings.TrimSuffix(path, ext) + ".vm"

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", outPath, err)
		return 1
	}
	defer out.Close()

	if _, err := compiler.Compile(string(src), out); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return 1
	}

	fmt.Println("Compilation Ended Successfully!")
	return 0
}

func tokensCommand(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ijkc tokens <file>")
		return 1
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", args[0], err)
		return 1
	}

	l := lexer.New(string(src))
	for {
		tok, err := l.NextToken()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
			return 1
		}
		fmt.Println(tok)
		if tok.Type.String() == "EOF" {
			break
		}
	}
	for _, e := range l.Errors() {
		fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], e)
	}
	return 0
}

func symbolsCommand(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ijkc symbols <file>")
		return 1
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", args[0], err)
		return 1
	}

	class, err := compiler.Compile(string(src), discardWriter{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
		return 1
	}

	printOutline(class)
	return 0
}

func printOutline(c *outline.ClassOutline) {
	fmt.Printf("class %s\n", c.Name)
	for _, s := range c.Statics {
		fmt.Printf("  static %s %s\n", s.Type, s.Name)
	}
	for _, f := range c.Fields {
		fmt.Printf("  field %s %s\n", f.Type, f.Name)
	}
	for _, sub := range c.Subroutines {
		var params []string
		for _, p := range sub.Params {
			params = append(params, p.Type+" "+p.Name)
		}
		fmt.Printf("  %s %s(%s) -> %s\n", sub.Kind, sub.Name, strings.Join(params, ", "), sub.ReturnType)
	}
}

// discardWriter avoids importing io/ioutil solely for a throwaway sink;
// compiler.Compile only needs an io.Writer.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
