package bytecode

import "max/token"

// FunctionInfo is a function's signature: its name and the positional
// parameters with their declared type annotations. The compiler's header
// pass populates one per global function so that call sites can be checked
// before the function body has been compiled.
type FunctionInfo struct {
	Name     string
	ArgNames []string
	ArgTypes []token.TokenType
}

// Function is a compiled function object: its name (empty for the top-level
// script), the chunk holding its body, its signature, and the number of
// globally declared function constants that precede its locals in the
// enclosing frame. The VM's call protocol copies that many slots from the
// caller so functions stay addressable by slot index from inside callees.
type Function struct {
	Name           string
	Chunk          *Chunk
	Info           FunctionInfo
	FunctionsCount int
}

func NewFunction() *Function {
	return &Function{Chunk: NewChunk()}
}

// HadError reports whether compiling this function produced diagnostics.
func (f *Function) HadError() bool {
	return f.Chunk.HadError
}

func (f *Function) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return "<function " + f.Name + ">"
}
