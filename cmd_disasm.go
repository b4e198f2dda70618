package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"max/bytecode"
	"max/compiler"
)

// disasmCmd compiles a source file and dumps the disassembly of the script
// and of every function it defines.
type disasmCmd struct {
	outPath string
}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Compile a source file and print its bytecode" }
func (*disasmCmd) Usage() string {
	return `disasm [-o file.dmax] <file>:
  Compile a MAX source file and write a human-readable bytecode listing.
`
}

func (cmd *disasmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.outPath, "o", "", "write the listing to this file instead of stdout")
}

func (cmd *disasmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	function := compiler.New().Compile(string(data))
	if function.HadError() {
		fmt.Fprintln(os.Stderr, "Errors were found at compile time.")
		return subcommands.ExitFailure
	}

	out := io.Writer(os.Stdout)
	if cmd.outPath != "" {
		path := cmd.outPath
		if !strings.HasSuffix(path, ".dmax") {
			path += ".dmax"
		}
		file, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create listing file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	disassembleAll(out, function)
	return subcommands.ExitSuccess
}

// disassembleAll lists the script chunk followed by every function constant
// reachable from it.
func disassembleAll(w io.Writer, script *bytecode.Function) {
	script.Chunk.Disassemble(w, script.String())
	for _, constant := range script.Chunk.Constants {
		if constant.Kind == bytecode.KindFunction {
			fmt.Fprintln(w)
			constant.Fn.Chunk.Disassemble(w, constant.Fn.String())
		}
	}
}
