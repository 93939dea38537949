package asm

import (
	"strings"

	"github.com/samber/lo"
)

// Mnemonic returns the instruction mnemonic of line, or "" for labels,
// directives, comments and blank lines.
func Mnemonic(line string) string {
	if !strings.HasPrefix(line, "\t") {
		return ""
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], ".") {
		return ""
	}
	return fields[0]
}

// CountMnemonic counts instructions using mnemonic.
func (b *Buffer) CountMnemonic(mnemonic string) int {
	return lo.CountBy(b.lines, func(line string) bool {
		return Mnemonic(line) == mnemonic
	})
}

// LabelDefinitions maps every label defined in the text (including verbatim
// text) to the number of times it is defined.
func (b *Buffer) LabelDefinitions() map[Label]int {
	defs := lo.FilterMap(b.lines, func(line string, _ int) (Label, bool) {
		if strings.HasPrefix(line, "\t") || !strings.HasSuffix(line, ":") {
			return "", false
		}
		return Label(strings.TrimSuffix(line, ":")), true
	})
	return lo.CountValues(defs)
}

// LabelReferences maps labels to the number of instructions naming them as
// an operand.
func (b *Buffer) LabelReferences() map[Label]int {
	defined := b.LabelDefinitions()
	refs := lo.FlatMap(b.lines, func(line string, _ int) []Label {
		if Mnemonic(line) == "" {
			return nil
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		return lo.FilterMap(fields[1:], func(field string, _ int) (Label, bool) {
			_, ok := defined[Label(field)]
			return Label(field), ok
		})
	})
	return lo.CountValues(refs)
}
