package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"max/vm"
)

// Exit codes for the bare `max [script]` form.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")

	flag.Parse()
	args := flag.Args()

	// Bare invocations mirror the classic interpreter CLI: no arguments
	// starts a REPL, a single file argument runs it. A first argument that
	// names a subcommand goes through subcommand dispatch; any other argument
	// list is a usage error.
	switch {
	case len(args) == 0:
		os.Exit(repl(""))
	case len(args) == 1 && !isSubcommand(args[0]):
		os.Exit(runFile(vm.New(), args[0]))
	case isSubcommand(args[0]):
		os.Exit(int(subcommands.Execute(context.Background())))
	default:
		fmt.Fprintln(os.Stderr, "Usage: max [script]")
		os.Exit(exitUsage)
	}
}

func isSubcommand(name string) bool {
	switch name {
	case "run", "repl", "disasm", "help", "commands", "flags":
		return true
	}
	return false
}

// runFile executes one source file and maps the interpretation outcome to
// an exit code: 0 on success, 65 on compile error, 70 on runtime error.
func runFile(machine *vm.VM, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		return exitIOError
	}

	switch machine.Interpret(string(data)) {
	case vm.CompileError:
		return exitCompileError
	case vm.RuntimeError:
		return exitRuntimeError
	}
	return exitOK
}
