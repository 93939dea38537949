package codegen

import (
	"debug/elf"

	"github.com/tinyrange/bfc/internal/asm"
)

// Backend supplies the instruction text for one target. Implementations are
// stateless; everything compilation-scoped lives in the Context passed to
// each call, and output goes to ctx.Out.
//
// Cache bookkeeping belongs to Generate. A backend never decides whether to
// load or store the accumulator, it only encodes the request.
type Backend interface {
	Descriptor() Descriptor

	// EmitPreamble writes the preamble resource followed by the bfmain frame
	// setup: tape allocation, zero fill and register bindings.
	EmitPreamble(ctx *Context) error
	// EmitPostamble tears the frame down and returns from bfmain.
	EmitPostamble(ctx *Context) error

	// EmitLoad copies the current cell into the accumulator.
	EmitLoad(ctx *Context) error
	// EmitStore commits the accumulator to the current cell.
	EmitStore(ctx *Context) error

	EmitDataOp(ctx *Context, delta int) error
	EmitPointerOp(ctx *Context, delta int) error

	// EmitLoopBegin defines begin, tests the low 8 bits of the accumulator
	// and branches to end when they are zero.
	EmitLoopBegin(ctx *Context, begin, end asm.Label) error
	// EmitLoopEnd branches back to begin and defines end.
	EmitLoopEnd(ctx *Context, begin, end asm.Label) error

	EmitPutChar(ctx *Context) error
	EmitGetChar(ctx *Context) error
}

// Descriptor describes the fixed properties of a backend.
type Descriptor struct {
	Arch Architecture
	// Prefix is the GNU toolchain prefix, e.g. "x86_64-linux-gnu-". It also
	// keys the preamble resource.
	Prefix string
	// DefaultTapeSize is the frame size used when Options.TapeSize is zero.
	DefaultTapeSize int

	PointerRegister     string
	AccumulatorRegister string
	// SavesLinkRegister is set when the return address lives in a register
	// that bfmain must preserve around its frame.
	SavesLinkRegister bool

	// Machine is the ELF machine of linked executables.
	Machine elf.Machine
	// GOARCH names the host architecture able to run executables natively.
	GOARCH string
	// Emulators lists user-mode emulators able to run executables elsewhere.
	Emulators []string
}
