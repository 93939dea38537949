// Package toolchain turns an assembly buffer into a native executable with
// the GNU assembler and linker of the target architecture.
package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tinyrange/bfc/internal/asm"
	"github.com/tinyrange/bfc/internal/codegen"
	"github.com/tinyrange/bfc/internal/timeslice"
)

// DefaultOutput is the executable name used when the caller does not pick one.
const DefaultOutput = "out"

var (
	tsWriteSource = timeslice.RegisterKind("write-source")
	tsAssemble    = timeslice.RegisterKind("assemble")
	tsLink        = timeslice.RegisterKind("link")
	tsVerify      = timeslice.RegisterKind("verify")
)

// Intermediate names inside the per-compilation workspace.
const (
	sourceName     = "out.s"
	objectName     = "out.o"
	executableName = "out"
)

type Options struct {
	// Prefix replaces the descriptor's tool prefix when non-nil. An empty
	// string selects the host's unprefixed as and ld.
	Prefix *string

	ASFlags []string
	LDFlags []string

	// WorkDir holds the temporary workspace. Defaults to the output's
	// directory so the final rename never crosses filesystems.
	WorkDir string

	// KeepIntermediates leaves the workspace in place after Compile.
	KeepIntermediates bool

	// Track is called with the workspace path once it exists; the returned
	// function is called when Compile has finished with it. The CLI uses
	// this to remove workspaces on interrupt.
	Track func(dir string) (release func())

	// Timings receives the time spent in each step when non-nil.
	Timings *timeslice.Recorder

	Logger *slog.Logger
}

type Toolchain struct {
	desc   codegen.Descriptor
	prefix string
	opts   Options
	log    *slog.Logger
}

func New(desc codegen.Descriptor, opts Options) *Toolchain {
	prefix := desc.Prefix
	if opts.Prefix != nil {
		prefix = *opts.Prefix
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Toolchain{desc: desc, prefix: prefix, opts: opts, log: log}
}

func (t *Toolchain) Prefix() string { return t.prefix }

func (t *Toolchain) Descriptor() codegen.Descriptor { return t.desc }

// Tool returns the prefixed name of a binutils program.
func (t *Toolchain) Tool(name string) string { return t.prefix + name }

// Compile assembles and links buf, moving the result to output (DefaultOutput
// when empty). The workspace holding the intermediate files is removed on
// every return path unless KeepIntermediates is set. Distinct calls use
// distinct workspaces and may run concurrently.
func (t *Toolchain) Compile(buf *asm.Buffer, output string) (path string, err error) {
	if buf == nil {
		return "", fmt.Errorf("compile: nil assembly buffer")
	}
	if output == "" {
		output = DefaultOutput
	}

	dir := t.opts.WorkDir
	if dir == "" {
		dir = filepath.Dir(output)
	}
	ws, err := os.MkdirTemp(dir, ".bfc-*")
	if err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	release := func() {}
	if t.opts.Track != nil {
		release = t.opts.Track(ws)
	}
	defer func() {
		release()
		if t.opts.KeepIntermediates {
			t.log.Info("kept intermediates", "dir", ws)
			return
		}
		if rmErr := os.RemoveAll(ws); rmErr != nil && err == nil {
			err = fmt.Errorf("remove workspace: %w", rmErr)
		}
	}()

	src := filepath.Join(ws, sourceName)
	obj := filepath.Join(ws, objectName)
	exe := filepath.Join(ws, executableName)

	rec := t.opts.Timings
	if err := writeSource(src, buf); err != nil {
		return "", err
	}
	rec.Record(tsWriteSource)

	asArgs := append(append([]string{}, t.opts.ASFlags...), src, "-o", obj)
	if err := t.run("as", asArgs); err != nil {
		return "", err
	}
	rec.Record(tsAssemble)
	ldArgs := append(append([]string{}, t.opts.LDFlags...), obj, "-o", exe)
	if err := t.run("ld", ldArgs); err != nil {
		return "", err
	}
	rec.Record(tsLink)

	if err := Verify(exe, t.desc.Machine); err != nil {
		return "", err
	}
	rec.Record(tsVerify)
	if t.opts.KeepIntermediates {
		err = copyFile(exe, output)
	} else {
		err = os.Rename(exe, output)
	}
	if err != nil {
		return "", fmt.Errorf("move executable: %w", err)
	}

	t.log.Debug("linked executable", "arch", t.desc.Arch, "output", output)
	return output, nil
}

func writeSource(path string, buf *asm.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write assembly: %w", err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write assembly: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write assembly: %w", err)
	}
	return nil
}

func (t *Toolchain) run(name string, args []string) error {
	tool := t.Tool(name)
	path, err := exec.LookPath(tool)
	if err != nil {
		return &ToolchainError{Tool: tool, Args: args, ExitCode: -1, Err: err}
	}

	t.log.Debug("running", "tool", path, "args", args)

	var out bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ToolchainError{Tool: tool, Args: args, ExitCode: code, Output: out.String(), Err: err}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}
