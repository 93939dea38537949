package codegen_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tinyrange/bfc/internal/asm"
	"github.com/tinyrange/bfc/internal/codegen"
)

// traceBackend emits one pseudo-instruction per request so tests can assert
// on the exact sequence Generate asks for.
type traceBackend struct {
	failOn string
}

var errInjected = errors.New("injected failure")

func (b traceBackend) fail(op string) error {
	if b.failOn == op {
		return errInjected
	}
	return nil
}

func (traceBackend) Descriptor() codegen.Descriptor {
	return codegen.Descriptor{
		Arch:                "trace",
		Prefix:              "trace-",
		DefaultTapeSize:     16,
		PointerRegister:     "p",
		AccumulatorRegister: "a",
	}
}

func (b traceBackend) EmitPreamble(ctx *codegen.Context) error {
	if err := b.fail("preamble"); err != nil {
		return err
	}
	if err := ctx.Out.MarkLabel("bfmain"); err != nil {
		return err
	}
	ctx.Out.Instruction("frame", fmt.Sprint(ctx.Options.TapeSize))
	return nil
}

func (b traceBackend) EmitPostamble(ctx *codegen.Context) error {
	ctx.Out.Instruction("unframe")
	return b.fail("postamble")
}

func (b traceBackend) EmitLoad(ctx *codegen.Context) error {
	ctx.Out.Instruction("load")
	return b.fail("load")
}

func (b traceBackend) EmitStore(ctx *codegen.Context) error {
	ctx.Out.Instruction("store")
	return b.fail("store")
}

func (b traceBackend) EmitDataOp(ctx *codegen.Context, delta int) error {
	ctx.Out.Instruction("data", fmt.Sprintf("%+d", delta))
	return b.fail("data")
}

func (b traceBackend) EmitPointerOp(ctx *codegen.Context, delta int) error {
	ctx.Out.Instruction("ptr", fmt.Sprintf("%+d", delta))
	return b.fail("ptr")
}

func (b traceBackend) EmitLoopBegin(ctx *codegen.Context, begin, end asm.Label) error {
	if err := ctx.Out.MarkLabel(begin); err != nil {
		return err
	}
	ctx.Out.Instruction("beqz", string(end))
	return b.fail("begin")
}

func (b traceBackend) EmitLoopEnd(ctx *codegen.Context, begin, end asm.Label) error {
	ctx.Out.Instruction("jump", string(begin))
	return ctx.Out.MarkLabel(end)
}

func (b traceBackend) EmitPutChar(ctx *codegen.Context) error {
	ctx.Out.Instruction("putchar")
	return nil
}

func (b traceBackend) EmitGetChar(ctx *codegen.Context) error {
	ctx.Out.Instruction("getchar")
	return nil
}

// body strips the preamble and postamble lines from a trace.
func body(buf *asm.Buffer) []string {
	lines := buf.Lines()
	return lines[2 : len(lines)-1]
}

func join(lines []string) string {
	return strings.Join(lines, "\n")
}
