// Package amd64 emits GNU as (AT&T syntax) text for x86_64 GNU/Linux.
//
// Register bindings:
//
//	%rbx   tape pointer
//	%r12b  accumulator (8-bit arithmetic truncates naturally)
//	%r13   first cell, %r14 one past the last cell (bounds checking only)
package amd64

import (
	"debug/elf"
	"fmt"
	"math"

	"github.com/tinyrange/bfc/internal/asm"
	"github.com/tinyrange/bfc/internal/codegen"
)

const (
	Prefix = "x86_64-linux-gnu-"

	pointerReg   = "%rbx"
	accReg       = "%r12b"
	lowBoundReg  = "%r13"
	highBoundReg = "%r14"
	scratchReg   = "%rax"

	entryLabel      asm.Label = "bfmain"
	putcharRoutine            = "bfputchar"
	getcharRoutine            = "bfgetchar"
	overflowRoutine           = "bfoverflow"
)

type backend struct{}

func init() {
	codegen.RegisterBackend(codegen.ArchitectureX86_64, backend{})
}

func (backend) Descriptor() codegen.Descriptor {
	return codegen.Descriptor{
		Arch:                codegen.ArchitectureX86_64,
		Prefix:              Prefix,
		DefaultTapeSize:     codegen.DefaultTapeSize,
		PointerRegister:     pointerReg,
		AccumulatorRegister: accReg,
		Machine:             elf.EM_X86_64,
		GOARCH:              "amd64",
		Emulators:           []string{"qemu-x86_64", "qemu-x86_64-static"},
	}
}

func imm(v uint64) string {
	return fmt.Sprintf("$%d", v)
}

// magnitude splits delta into a mnemonic choice and an absolute value.
func magnitude(delta int) (negative bool, abs uint64) {
	if delta < 0 {
		return true, uint64(-(delta + 1)) + 1
	}
	return false, uint64(delta)
}

func (backend) EmitPreamble(ctx *codegen.Context) error {
	text, err := asm.LoadPreamble(Prefix, ctx.Options.PreambleDir)
	if err != nil {
		return err
	}
	out := ctx.Out
	out.Text(text)

	if err := out.MarkLabel(entryLabel); err != nil {
		return err
	}
	size := uint64(ctx.Options.TapeSize)
	out.Instruction("subq", imm(size), "%rsp")
	out.Instruction("movq", "%rsp", "%rdi")
	out.Instruction("movq", imm(size), "%rcx")
	out.Instruction("xorl", "%eax", "%eax")
	out.Instruction("rep stosb")
	out.Instruction("movq", "%rsp", pointerReg)
	if ctx.Options.BoundsCheck {
		out.Instruction("movq", "%rsp", lowBoundReg)
		out.Instruction("leaq", fmt.Sprintf("%d(%%rsp)", size), highBoundReg)
	}
	return nil
}

func (backend) EmitPostamble(ctx *codegen.Context) error {
	ctx.Out.Instruction("addq", imm(uint64(ctx.Options.TapeSize)), "%rsp")
	ctx.Out.Instruction("ret")
	return nil
}

func (backend) EmitLoad(ctx *codegen.Context) error {
	ctx.Out.Instruction("movb", "("+pointerReg+")", accReg)
	return nil
}

func (backend) EmitStore(ctx *codegen.Context) error {
	ctx.Out.Instruction("movb", accReg, "("+pointerReg+")")
	return nil
}

// Only the low byte of delta matters to an 8-bit register.
func (backend) EmitDataOp(ctx *codegen.Context, delta int) error {
	amount := delta % 256
	if amount < 0 {
		ctx.Out.Instruction("subb", imm(uint64(-amount)), accReg)
	} else {
		ctx.Out.Instruction("addb", imm(uint64(amount)), accReg)
	}
	return nil
}

func (backend) EmitPointerOp(ctx *codegen.Context, delta int) error {
	out := ctx.Out
	negative, abs := magnitude(delta)
	mnemonic := "addq"
	if negative {
		mnemonic = "subq"
	}

	// addq/subq only take a sign-extended 32-bit immediate.
	if abs <= math.MaxInt32 {
		out.Instruction(mnemonic, imm(abs), pointerReg)
	} else {
		out.Instruction("movabsq", imm(abs), scratchReg)
		out.Instruction(mnemonic, scratchReg, pointerReg)
	}

	if ctx.Options.BoundsCheck {
		out.Instruction("cmpq", lowBoundReg, pointerReg)
		out.Instruction("jb", overflowRoutine)
		out.Instruction("cmpq", highBoundReg, pointerReg)
		out.Instruction("jae", overflowRoutine)
	}
	return nil
}

func (backend) EmitLoopBegin(ctx *codegen.Context, begin, end asm.Label) error {
	if err := ctx.Out.MarkLabel(begin); err != nil {
		return err
	}
	ctx.Out.Instruction("testb", accReg, accReg)
	ctx.Out.Instruction("je", string(end))
	return nil
}

func (backend) EmitLoopEnd(ctx *codegen.Context, begin, end asm.Label) error {
	ctx.Out.Instruction("jmp", string(begin))
	return ctx.Out.MarkLabel(end)
}

func (backend) EmitPutChar(ctx *codegen.Context) error {
	ctx.Out.Instruction("call", putcharRoutine)
	return nil
}

func (backend) EmitGetChar(ctx *codegen.Context) error {
	ctx.Out.Instruction("call", getcharRoutine)
	return nil
}
