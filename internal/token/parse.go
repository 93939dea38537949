package token

import (
	"errors"
	"fmt"
)

var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a structural problem in source text.
type SyntaxError struct {
	Offset  int // Byte offset into the source
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Parse converts source text into a token stream. Runs of '+'/'-' and '<'/'>'
// are folded into a single arithmetic token; runs that cancel out are
// dropped. Every byte other than the eight command characters is a comment.
func Parse(src []byte) ([]Token, error) {
	var (
		tokens []Token
		opens  []int
	)

	fold := func(kind Kind, delta int) {
		if n := len(tokens); n > 0 && tokens[n-1].Kind == kind {
			tokens[n-1].Delta += delta
			if tokens[n-1].Delta == 0 {
				tokens = tokens[:n-1]
			}
			return
		}
		tokens = append(tokens, Token{Kind: kind, Delta: delta})
	}

	for off, b := range src {
		switch b {
		case '+':
			fold(KindDataArithmetic, 1)
		case '-':
			fold(KindDataArithmetic, -1)
		case '>':
			fold(KindPointerArithmetic, 1)
		case '<':
			fold(KindPointerArithmetic, -1)
		case '.':
			tokens = append(tokens, PutChar())
		case ',':
			tokens = append(tokens, GetChar())
		case '[':
			opens = append(opens, off)
			tokens = append(tokens, LoopBegin())
		case ']':
			if len(opens) == 0 {
				return nil, &SyntaxError{Offset: off, Message: "unmatched ']'"}
			}
			opens = opens[:len(opens)-1]
			tokens = append(tokens, LoopEnd())
		}
	}

	if len(opens) > 0 {
		return nil, &SyntaxError{Offset: opens[len(opens)-1], Message: "unmatched '['"}
	}
	return tokens, nil
}
