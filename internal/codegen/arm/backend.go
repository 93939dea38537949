// Package arm emits GNU as (unified syntax, ARM state) text for ARMv7
// hard-float GNU/Linux.
//
// Register bindings:
//
//	r4  tape pointer
//	r5  accumulator (32-bit, masked to 8 bits before every zero test)
//	r6  first cell, r8 one past the last cell (bounds checking only)
//	ip  scratch for immediates that do not encode
//
// bfmain saves lr in its frame since bl overwrites it on every I/O call.
package arm

import (
	"debug/elf"
	"fmt"
	"math"
	"math/bits"

	"github.com/tinyrange/bfc/internal/asm"
	"github.com/tinyrange/bfc/internal/codegen"
)

const (
	Prefix = "arm-linux-gnueabihf-"

	pointerReg   = "r4"
	accReg       = "r5"
	lowBoundReg  = "r6"
	highBoundReg = "r8"
	scratchReg   = "ip"

	entryLabel      asm.Label = "bfmain"
	zeroFillLabel   asm.Label = ".Lbfzero"
	putcharRoutine            = "bfputchar"
	getcharRoutine            = "bfgetchar"
	overflowRoutine           = "bfoverflow"
)

type backend struct{}

func init() {
	codegen.RegisterBackend(codegen.ArchitectureARMHF, backend{})
}

func (backend) Descriptor() codegen.Descriptor {
	return codegen.Descriptor{
		Arch:                codegen.ArchitectureARMHF,
		Prefix:              Prefix,
		DefaultTapeSize:     codegen.DefaultTapeSize,
		PointerRegister:     pointerReg,
		AccumulatorRegister: accReg,
		SavesLinkRegister:   true,
		Machine:             elf.EM_ARM,
		GOARCH:              "arm",
		Emulators:           []string{"qemu-arm", "qemu-arm-static"},
	}
}

func imm(v uint32) string {
	return fmt.Sprintf("#%d", v)
}

// encodable reports whether v fits a data-processing immediate: an 8-bit
// value rotated right by an even amount.
func encodable(v uint32) bool {
	for rot := 0; rot < 32; rot += 2 {
		if bits.RotateLeft32(v, rot) <= 0xff {
			return true
		}
	}
	return false
}

// loadImmediate materializes v in reg without a literal pool.
func loadImmediate(out *asm.Buffer, reg string, v uint32) {
	out.Instruction("movw", reg, imm(v&0xffff))
	if hi := v >> 16; hi != 0 {
		out.Instruction("movt", reg, imm(hi))
	}
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
	size := uint32(ctx.Options.TapeSize)
	out.Instruction("push", "{lr}")
	loadImmediate(out, "r0", size)
	out.Instruction("sub", "sp", "sp", "r0")
	out.Instruction("mov", pointerReg, "sp")

	// Zero the tape from the top down; r0 counts the remaining cells.
	out.Instruction("mov", "r1", imm(0))
	if err := out.MarkLabel(zeroFillLabel); err != nil {
		return err
	}
	out.Instruction("subs", "r0", "r0", imm(1))
	out.Instruction("strb", "r1", "["+pointerReg+", r0]")
	out.Instruction("bne", string(zeroFillLabel))

	if ctx.Options.BoundsCheck {
		out.Instruction("mov", lowBoundReg, pointerReg)
		loadImmediate(out, highBoundReg, size)
		out.Instruction("add", highBoundReg, pointerReg, highBoundReg)
	}
	return nil
}

func (backend) EmitPostamble(ctx *codegen.Context) error {
	out := ctx.Out
	loadImmediate(out, "r0", uint32(ctx.Options.TapeSize))
	out.Instruction("add", "sp", "sp", "r0")
	out.Instruction("pop", "{lr}")
	out.Instruction("bx", "lr")
	return nil
}

func (backend) EmitLoad(ctx *codegen.Context) error {
	ctx.Out.Instruction("ldrb", accReg, "["+pointerReg+"]")
	return nil
}

func (backend) EmitStore(ctx *codegen.Context) error {
	ctx.Out.Instruction("strb", accReg, "["+pointerReg+"]")
	return nil
}

// The accumulator is wider than a cell; strb and the masked loop test only
// observe the low byte, so the delta is reduced to it.
func (backend) EmitDataOp(ctx *codegen.Context, delta int) error {
	amount := delta % 256
	if amount < 0 {
		ctx.Out.Instruction("sub", accReg, accReg, imm(uint32(-amount)))
	} else {
		ctx.Out.Instruction("add", accReg, accReg, imm(uint32(amount)))
	}
	return nil
}

func (backend) EmitPointerOp(ctx *codegen.Context, delta int) error {
	out := ctx.Out
	mnemonic := "add"
	abs := uint64(delta)
	if delta < 0 {
		mnemonic = "sub"
		abs = uint64(-(delta + 1)) + 1
	}
	if abs > math.MaxUint32 {
		return fmt.Errorf("pointer delta %d exceeds the 32-bit address space", delta)
	}

	if v := uint32(abs); encodable(v) {
		out.Instruction(mnemonic, pointerReg, pointerReg, imm(v))
	} else {
		loadImmediate(out, scratchReg, v)
		out.Instruction(mnemonic, pointerReg, pointerReg, scratchReg)
	}

	if ctx.Options.BoundsCheck {
		out.Instruction("cmp", pointerReg, lowBoundReg)
		out.Instruction("blo", overflowRoutine)
		out.Instruction("cmp", pointerReg, highBoundReg)
		out.Instruction("bhs", overflowRoutine)
	}
	return nil
}

func (backend) EmitLoopBegin(ctx *codegen.Context, begin, end asm.Label) error {
	if err := ctx.Out.MarkLabel(begin); err != nil {
		return err
	}
	ctx.Out.Instruction("and", accReg, accReg, imm(0xff))
	ctx.Out.Instruction("cmp", accReg, imm(0))
	ctx.Out.Instruction("beq", string(end))
	return nil
}

func (backend) EmitLoopEnd(ctx *codegen.Context, begin, end asm.Label) error {
	ctx.Out.Instruction("b", string(begin))
	return ctx.Out.MarkLabel(end)
}

func (backend) EmitPutChar(ctx *codegen.Context) error {
	ctx.Out.Instruction("bl", putcharRoutine)
	return nil
}

func (backend) EmitGetChar(ctx *codegen.Context) error {
	ctx.Out.Instruction("bl", getcharRoutine)
	return nil
}
