// Package codegen translates a token stream into assembly text for one of the
// registered backends.
//
// The accumulator register caches the cell under the tape pointer. Arithmetic
// runs against the register and memory is only touched when something needs
// the committed value (pointer moves, loop tests, output) or has written
// memory behind the register's back (input).
package codegen

import (
	"fmt"
	"log/slog"

	"github.com/tinyrange/bfc/internal/asm"
	"github.com/tinyrange/bfc/internal/token"
)

type generator struct {
	backend Backend
	ctx     *Context
}

// Generate performs a single forward pass over tokens. On error no buffer is
// returned.
func Generate(tokens []token.Token, backend Backend, opts Options) (*asm.Buffer, error) {
	if backend == nil {
		return nil, fmt.Errorf("codegen: backend must be non-nil")
	}
	desc := backend.Descriptor()
	opts, err := opts.normalize(desc)
	if err != nil {
		return nil, err
	}

	g := &generator{backend: backend, ctx: newContext(opts)}

	if err := backend.EmitPreamble(g.ctx); err != nil {
		return nil, fmt.Errorf("emit preamble: %w", err)
	}
	for idx, tok := range tokens {
		if err := g.compileToken(idx, tok); err != nil {
			return nil, err
		}
	}
	if g.ctx.Depth() != 0 {
		return nil, &MalformedProgramError{
			Index:  len(tokens),
			Reason: fmt.Sprintf("%d unclosed loop(s)", g.ctx.Depth()),
		}
	}
	if err := backend.EmitPostamble(g.ctx); err != nil {
		return nil, fmt.Errorf("emit postamble: %w", err)
	}

	slog.Debug("generated assembly",
		"arch", desc.Arch,
		"tokens", len(tokens),
		"lines", g.ctx.Out.Len(),
		"labels", g.ctx.labelCounter,
	)
	return g.ctx.Out, nil
}

func (g *generator) compileToken(idx int, tok token.Token) error {
	var err error
	switch tok.Kind {
	case token.KindDataArithmetic:
		err = g.compileData(tok.Delta)
	case token.KindPointerArithmetic:
		err = g.compilePointer(tok.Delta)
	case token.KindLoopBegin:
		err = g.compileLoopBegin()
	case token.KindLoopEnd:
		if g.ctx.Depth() == 0 {
			return &MalformedProgramError{Index: idx, Reason: "loop end without matching begin"}
		}
		err = g.compileLoopEnd()
	case token.KindPutChar:
		err = g.compilePutChar()
	case token.KindGetChar:
		err = g.compileGetChar()
	default:
		return &MalformedProgramError{Index: idx, Reason: fmt.Sprintf("unknown token kind %d", tok.Kind)}
	}
	if err != nil {
		return fmt.Errorf("token %d (%s): %w", idx, tok, err)
	}
	return nil
}

// flush commits a dirty accumulator.
func (g *generator) flush() error {
	if g.ctx.cache != CacheDirty {
		return nil
	}
	if err := g.backend.EmitStore(g.ctx); err != nil {
		return err
	}
	g.ctx.cache = CacheClean
	return nil
}

// reload makes a stale accumulator valid.
func (g *generator) reload() error {
	if g.ctx.cache != CacheStale {
		return nil
	}
	if err := g.backend.EmitLoad(g.ctx); err != nil {
		return err
	}
	g.ctx.cache = CacheClean
	return nil
}

func (g *generator) compileData(delta int) error {
	if delta == 0 {
		return nil
	}
	if err := g.reload(); err != nil {
		return err
	}
	if err := g.backend.EmitDataOp(g.ctx, delta); err != nil {
		return err
	}
	g.ctx.cache = CacheDirty
	return nil
}

func (g *generator) compilePointer(delta int) error {
	if delta == 0 {
		return nil
	}
	if err := g.flush(); err != nil {
		return err
	}
	if err := g.backend.EmitPointerOp(g.ctx, delta); err != nil {
		return err
	}
	g.ctx.cache = CacheStale
	return nil
}

// Both loop labels are reached with the accumulator holding the committed
// current cell, so the state after either of them is clean.
func (g *generator) compileLoopBegin() error {
	if err := g.flush(); err != nil {
		return err
	}
	if err := g.reload(); err != nil {
		return err
	}

	begin := g.ctx.freshLabel()
	end := g.ctx.freshLabel()
	if err := g.backend.EmitLoopBegin(g.ctx, begin, end); err != nil {
		return err
	}
	g.ctx.pushLoop(begin, end)
	g.ctx.cache = CacheClean
	return nil
}

func (g *generator) compileLoopEnd() error {
	if err := g.flush(); err != nil {
		return err
	}
	if err := g.reload(); err != nil {
		return err
	}

	begin, end, ok := g.ctx.popLoop()
	if !ok {
		return fmt.Errorf("loop label stacks out of balance")
	}
	if err := g.backend.EmitLoopEnd(g.ctx, begin, end); err != nil {
		return err
	}
	g.ctx.cache = CacheClean
	return nil
}

// The output routine reads the cell from memory.
func (g *generator) compilePutChar() error {
	if err := g.flush(); err != nil {
		return err
	}
	return g.backend.EmitPutChar(g.ctx)
}

// The input routine writes the cell in memory, so whatever the accumulator
// held is discarded without a store.
func (g *generator) compileGetChar() error {
	if err := g.backend.EmitGetChar(g.ctx); err != nil {
		return err
	}
	g.ctx.cache = CacheStale
	return nil
}
