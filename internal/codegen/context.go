package codegen

import (
	"fmt"

	"github.com/tinyrange/bfc/internal/asm"
)

// MaxTapeSize bounds the tape. The tape lives in bfmain's stack frame, so it
// has to fit comfortably inside the default 8 MiB stack limit.
const MaxTapeSize = 4 << 20

// DefaultTapeSize is the classic 30000-cell tape.
const DefaultTapeSize = 30000

// Options control a single generation pass.
type Options struct {
	// TapeSize is the number of cells; zero selects the backend default.
	TapeSize int
	// BoundsCheck traps pointer moves that leave the tape.
	BoundsCheck bool
	// PreambleDir overrides the built-in preamble resources.
	PreambleDir string
}

func (o Options) normalize(desc Descriptor) (Options, error) {
	if o.TapeSize == 0 {
		o.TapeSize = desc.DefaultTapeSize
	}
	if o.TapeSize <= 0 || o.TapeSize > MaxTapeSize {
		return o, fmt.Errorf("codegen: tape size %d out of range (1..%d)", o.TapeSize, MaxTapeSize)
	}
	return o, nil
}

// CacheState tracks the accumulator register relative to the current cell.
type CacheState int

const (
	// CacheStale: the accumulator does not hold the current cell.
	CacheStale CacheState = iota
	// CacheClean: the accumulator equals the committed cell.
	CacheClean
	// CacheDirty: the accumulator holds a value not yet written back.
	CacheDirty
)

func (s CacheState) String() string {
	switch s {
	case CacheStale:
		return "stale"
	case CacheClean:
		return "clean"
	case CacheDirty:
		return "dirty"
	default:
		return fmt.Sprintf("CacheState(%d)", int(s))
	}
}

// Context is the state of one generation pass. It is created by Generate and
// threaded through every Backend call.
type Context struct {
	Out     *asm.Buffer
	Options Options

	labelCounter int
	beginLabels  []asm.Label
	endLabels    []asm.Label
	cache        CacheState
}

func newContext(opts Options) *Context {
	return &Context{
		Out:     asm.NewBuffer(),
		Options: opts,
		cache:   CacheStale,
	}
}

// Cache returns the accumulator state.
func (c *Context) Cache() CacheState {
	return c.cache
}

// Depth returns the current loop nesting depth.
func (c *Context) Depth() int {
	return len(c.beginLabels)
}

func (c *Context) freshLabel() asm.Label {
	c.labelCounter++
	return asm.Label(fmt.Sprintf(".L%d", c.labelCounter))
}

func (c *Context) pushLoop(begin, end asm.Label) {
	c.beginLabels = append(c.beginLabels, begin)
	c.endLabels = append(c.endLabels, end)
}

func (c *Context) popLoop() (begin, end asm.Label, ok bool) {
	n := len(c.beginLabels)
	if n == 0 || len(c.endLabels) != n {
		return "", "", false
	}
	begin, end = c.beginLabels[n-1], c.endLabels[n-1]
	c.beginLabels = c.beginLabels[:n-1]
	c.endLabels = c.endLabels[:n-1]
	return begin, end, true
}
