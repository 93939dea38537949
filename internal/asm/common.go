// Package asm holds the textual assembly produced by the code generator.
package asm

import (
	"fmt"
	"io"
	"strings"
)

// Label names a position in the emitted text.
type Label string

// Buffer is an append-only sequence of assembly lines. A Buffer is owned by a
// single generation pass and is not safe for concurrent use.
type Buffer struct {
	lines   []string
	defined map[Label]bool
}

func NewBuffer() *Buffer {
	return &Buffer{defined: make(map[Label]bool)}
}

// Instruction appends a tab-indented instruction with comma separated
// operands.
func (b *Buffer) Instruction(mnemonic string, operands ...string) {
	if len(operands) == 0 {
		b.lines = append(b.lines, "\t"+mnemonic)
		return
	}
	b.lines = append(b.lines, "\t"+mnemonic+"\t"+strings.Join(operands, ", "))
}

// MarkLabel defines label at the current position.
func (b *Buffer) MarkLabel(label Label) error {
	if label == "" {
		return fmt.Errorf("asm: empty label")
	}
	if b.defined[label] {
		return fmt.Errorf("label %q already defined", label)
	}
	b.defined[label] = true
	b.lines = append(b.lines, string(label)+":")
	return nil
}

// Text appends verbatim text, one line per newline-separated segment. A
// single trailing newline does not produce an empty line.
func (b *Buffer) Text(text string) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return
	}
	b.lines = append(b.lines, strings.Split(text, "\n")...)
}

// Defined reports whether label has been marked in this buffer.
func (b *Buffer) Defined(label Label) bool {
	return b.defined[label]
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the emitted lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// WriteTo implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
