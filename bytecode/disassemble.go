package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of the whole chunk to w.
// Operand words are consumed by the opcode that owns them, so the listing
// shows one row per instruction.
func (c *Chunk) Disassemble(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)

	skip := 0
	for index, word := range c.Code {
		if skip > 0 {
			skip--
			continue
		}
		skip = c.DisassembleInstruction(w, word, index)
	}
}

// DisassembleInstruction writes one instruction row and returns how many
// following operand words it consumed (0 or 1). The line column shows `|`
// when the instruction sits on the same line as the previous one.
func (c *Chunk) DisassembleInstruction(w io.Writer, word Word, index int) int {
	fmt.Fprintf(w, "%04d ", index)
	line := c.GetLine(index)
	if index > 0 && line == c.GetLine(index-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", line)
	}

	op, ok := word.(Op)
	if !ok {
		// A raw operand where an opcode belongs means the emitter and this
		// reader disagree about the chunk layout.
		fmt.Fprintf(w, "%-30s%d\n", "!DATA", int(word.(Number)))
		return 0
	}

	switch {
	case op == OpConstant:
		idx := c.operandAt(index)
		rendered := "<out of range>"
		if idx >= 0 && idx < len(c.Constants) {
			rendered = c.Constants[idx].String()
		}
		fmt.Fprintf(w, "%-30s%s\n", op.String(), rendered)
		return 1
	case op.HasOperand():
		fmt.Fprintf(w, "%-30s%d\n", op.String(), c.operandAt(index))
		return 1
	}

	fmt.Fprintln(w, op.String())
	return 0
}

// operandAt returns the Number word following the opcode at index, or -1
// when the chunk is malformed there.
func (c *Chunk) operandAt(index int) int {
	if index+1 >= len(c.Code) {
		return -1
	}
	if n, ok := c.Code[index+1].(Number); ok {
		return int(n)
	}
	return -1
}
