package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"

	"max/config"
	"max/scanner"
	"max/token"
	"max/vm"
)

// replCmd starts an interactive session.
type replCmd struct {
	configPath string
	trace      bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive MAX session" }
func (*replCmd) Usage() string {
	return `repl [-config max.yaml] [-trace]:
  Start an interactive MAX session.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.configPath, "config", "", "path to a max.yaml config file")
	f.BoolVar(&cmd.trace, "trace", false, "disassemble each instruction before executing it")
}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if code := replWithOptions(cmd.configPath, cmd.trace); code != exitOK {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func repl(configPath string) int {
	return replWithOptions(configPath, false)
}

func replWithOptions(configPath string, trace bool) int {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}

	machine := vm.New()
	machine.SetTrace(trace || cfg.Debug.TraceExecution)
	machine.SetPrintCode(cfg.Debug.PrintCode)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if interactive {
		fmt.Println("Welcome to MAX!")
		fmt.Println("Type 'exit' to leave.")
	}

	rl, err := readline.New("MAX > ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	defer rl.Close()

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt("MAX > ")
		} else {
			rl.SetPrompt("  ... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return exitOK
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}

		if buffer.Len() == 0 && strings.TrimSpace(line) == "exit" {
			return exitOK
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		source := buffer.String()
		if needsMoreInput(source) {
			continue
		}

		machine.Interpret(source)
		buffer.Reset()
	}
}

// needsMoreInput reports whether source has more open braces than closed
// ones, in which case the REPL keeps buffering lines instead of compiling
// an obviously unfinished statement.
func needsMoreInput(source string) bool {
	s := scanner.New(source)
	balance := 0
	for {
		tok := s.ScanToken()
		switch tok.Type {
		case token.LeftBrace:
			balance++
		case token.RightBrace:
			balance--
		case token.Eof:
			return balance > 0
		}
	}
}
