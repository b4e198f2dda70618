package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"max/config"
	"max/vm"
)

// runCmd executes a MAX source file.
type runCmd struct {
	configPath string
	trace      bool
	printCode  bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute MAX code from a source file" }
func (*runCmd) Usage() string {
	return `run [-config max.yaml] [-trace] [-printCode] <file>:
  Compile and execute a MAX source file.
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.configPath, "config", "", "path to a max.yaml config file")
	f.BoolVar(&cmd.trace, "trace", false, "disassemble each instruction before executing it")
	f.BoolVar(&cmd.printCode, "printCode", false, "disassemble each chunk after compiling it")
}

func (cmd *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "File not provided\n")
		return subcommands.ExitUsageError
	}

	cfg, err := config.LoadOrDefault(cmd.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	machine := vm.New()
	machine.SetTrace(cmd.trace || cfg.Debug.TraceExecution)
	machine.SetPrintCode(cmd.printCode || cfg.Debug.PrintCode)

	if code := runFile(machine, args[0]); code != exitOK {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
