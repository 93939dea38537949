// Package token defines the operation stream consumed by the code generator.
//
// Tokens are immutable values. A stream is expected to be structurally valid
// (balanced loops) by the time it reaches code generation; Parse guarantees
// that for streams it produces.
package token

import "fmt"

type Kind int

const (
	KindInvalid Kind = iota
	KindDataArithmetic
	KindPointerArithmetic
	KindLoopBegin
	KindLoopEnd
	KindPutChar
	KindGetChar
)

func (k Kind) String() string {
	switch k {
	case KindDataArithmetic:
		return "data"
	case KindPointerArithmetic:
		return "pointer"
	case KindLoopBegin:
		return "loop-begin"
	case KindLoopEnd:
		return "loop-end"
	case KindPutChar:
		return "putchar"
	case KindGetChar:
		return "getchar"
	default:
		return "invalid"
	}
}

// Token is a single operation. Delta is only meaningful for the two
// arithmetic kinds.
type Token struct {
	Kind  Kind
	Delta int
}

func DataArithmetic(delta int) Token {
	return Token{Kind: KindDataArithmetic, Delta: delta}
}

func PointerArithmetic(delta int) Token {
	return Token{Kind: KindPointerArithmetic, Delta: delta}
}

func LoopBegin() Token { return Token{Kind: KindLoopBegin} }
func LoopEnd() Token   { return Token{Kind: KindLoopEnd} }
func PutChar() Token   { return Token{Kind: KindPutChar} }
func GetChar() Token   { return Token{Kind: KindGetChar} }

// IsArithmetic reports whether the token carries a delta.
func (t Token) IsArithmetic() bool {
	return t.Kind == KindDataArithmetic || t.Kind == KindPointerArithmetic
}

func (t Token) String() string {
	if t.IsArithmetic() {
		return fmt.Sprintf("%s(%+d)", t.Kind, t.Delta)
	}
	return t.Kind.String()
}
