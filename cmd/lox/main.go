package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"lox-core/internal/chunk"
	"lox-core/internal/compiler"
	"lox-core/internal/vm"
)

const Version = "v1.0.0"

func main() {
	showDisassembly := flag.Bool("disassembly", false, "Print bytecode disassembly before running")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lox [options] [script]\n\nOptions:\n")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(os.Stderr, "  --%s\n\t%s\n", f.Name, f.Usage)
		})
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("lox-core %s\n", Version)
		return
	}

	args := flag.Args()
	if len(args) > 1 {
		flag.Usage()
		os.Exit(64)
	}

	if len(args) == 0 {
		runREPL(*showDisassembly)
		return
	}

	runFile(args[0], *showDisassembly)
}

func runFile(path string, showDisassembly bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[INTERPRETER] ERROR: %s\n", err)
		os.Exit(1)
	}

	machine := vm.New()
	if run(machine, string(content), showDisassembly) != nil {
		os.Exit(1)
	}
}

// runREPL reads one line at a time and interprets each independently,
// sharing a single VM so globals persist across lines (spec.md §6). The
// "> " prompt is only printed when stdin is an interactive terminal, so
// piped input stays clean.
func runREPL(showDisassembly bool) {
	machine := vm.New()
	interactive := isatty.IsTerminal(os.Stdin.Fd())
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		run(machine, scanner.Text(), showDisassembly)
	}
}

func run(machine *vm.VM, source string, showDisassembly bool) error {
	fn, err := compiler.Compile(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	if showDisassembly {
		fn.Chunk.(*chunk.Chunk).DisassembleAll(fn.Name)
	}

	if err := machine.Interpret(fn); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
