package conformance

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/tinyrange/bfc/internal/codegen"
	"github.com/tinyrange/bfc/internal/toolchain"
)

// Target is a backend whose toolchain is installed and whose executables
// can be started on this host.
type Target struct {
	Arch      codegen.Architecture
	Backend   codegen.Backend
	Toolchain *toolchain.Toolchain

	// Launcher runs the executable, e.g. ["qemu-arm"]. Empty means native.
	Launcher []string
}

func (t Target) String() string {
	if len(t.Launcher) == 0 {
		return fmt.Sprintf("%s (native)", t.Arch)
	}
	return fmt.Sprintf("%s (%s)", t.Arch, strings.Join(t.Launcher, " "))
}

func (t Target) command(ctx context.Context, exe string) *exec.Cmd {
	if len(t.Launcher) == 0 {
		return exec.CommandContext(ctx, exe)
	}
	args := append(append([]string{}, t.Launcher[1:]...), exe)
	return exec.CommandContext(ctx, t.Launcher[0], args...)
}

// Discover returns a target for every registered backend that can be used
// here, and the reason for each one that cannot.
func Discover(opts toolchain.Options) ([]Target, map[codegen.Architecture]string) {
	var targets []Target
	skipped := make(map[codegen.Architecture]string)

	for _, arch := range codegen.Architectures() {
		backend, err := codegen.LookupBackend(arch)
		if err != nil {
			skipped[arch] = err.Error()
			continue
		}
		desc := backend.Descriptor()

		tc := toolchain.New(desc, opts)
		if probe := tc.Probe(); !probe.Available() {
			reason := probe.Assembler.String()
			if probe.Assembler.Err == nil {
				reason = probe.Linker.String()
			}
			skipped[arch] = reason
			continue
		}

		launcher, ok := launcherFor(desc)
		if !ok {
			skipped[arch] = fmt.Sprintf("not native and none of %s found", strings.Join(desc.Emulators, ", "))
			continue
		}
		targets = append(targets, Target{Arch: arch, Backend: backend, Toolchain: tc, Launcher: launcher})
	}
	return targets, skipped
}

func launcherFor(desc codegen.Descriptor) ([]string, bool) {
	if runtime.GOOS == "linux" && runtime.GOARCH == desc.GOARCH {
		return nil, true
	}
	for _, name := range desc.Emulators {
		if path, err := exec.LookPath(name); err == nil {
			return []string{path}, true
		}
	}
	return nil, false
}
