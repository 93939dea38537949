package codegen

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tinyrange/bfc/internal/asm"
	"github.com/tinyrange/bfc/internal/token"
)

type Architecture string

const (
	ArchitectureInvalid Architecture = "invalid"
	ArchitectureX86_64  Architecture = "x86_64"
	ArchitectureARMHF   Architecture = "armhf"
)

// ParseArchitecture accepts the canonical names plus the common aliases
// used by Go and by GNU triples.
func ParseArchitecture(name string) (Architecture, error) {
	switch strings.ToLower(name) {
	case "x86_64", "amd64", "x86-64":
		return ArchitectureX86_64, nil
	case "armhf", "arm", "armv7", "arm-hf":
		return ArchitectureARMHF, nil
	default:
		return ArchitectureInvalid, fmt.Errorf("unsupported architecture: %s", name)
	}
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[Architecture]Backend)
)

// RegisterBackend wires an architecture-specific backend into Generate. It
// panics when attempting to register the same architecture more than once so
// mistakes are caught during init.
func RegisterBackend(arch Architecture, backend Backend) {
	if arch == ArchitectureInvalid || arch == "" {
		panic("codegen: cannot register backend for invalid architecture")
	}
	if backend == nil {
		panic("codegen: backend must be non-nil")
	}

	backendsMu.Lock()
	defer backendsMu.Unlock()

	if _, exists := backends[arch]; exists {
		panic(fmt.Sprintf("codegen: backend for %s already registered", arch))
	}
	backends[arch] = backend
}

// LookupBackend returns the backend registered for arch.
func LookupBackend(arch Architecture) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	if backend, ok := backends[arch]; ok {
		return backend, nil
	}
	if arch == ArchitectureInvalid || arch == "" {
		return nil, fmt.Errorf("codegen: architecture must be specified")
	}
	return nil, fmt.Errorf("codegen: no backend registered for %q", arch)
}

// Architectures lists the registered architectures in name order.
func Architectures() []Architecture {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	archs := make([]Architecture, 0, len(backends))
	for arch := range backends {
		archs = append(archs, arch)
	}
	sort.Slice(archs, func(i, j int) bool { return archs[i] < archs[j] })
	return archs
}

// GenerateForArch runs Generate with the backend registered for arch.
func GenerateForArch(arch Architecture, tokens []token.Token, opts Options) (*asm.Buffer, error) {
	backend, err := LookupBackend(arch)
	if err != nil {
		return nil, err
	}
	return Generate(tokens, backend, opts)
}
