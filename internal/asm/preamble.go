package asm

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PreambleSuffix is appended to a toolchain prefix to name its preamble,
// for example "x86_64-linux-gnu-preamble.s".
const PreambleSuffix = "preamble.s"

//go:embed preamble/*.s
var preambles embed.FS

// PreambleName returns the resource name for prefix.
func PreambleName(prefix string) string {
	return prefix + PreambleSuffix
}

// LoadPreamble returns the boilerplate text for the toolchain prefix. When
// dir is non-empty the file is read from dir instead of the built-in set.
func LoadPreamble(prefix, dir string) (string, error) {
	name := PreambleName(prefix)

	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("read preamble %s: %w", name, err)
		}
		return string(data), nil
	}

	data, err := preambles.ReadFile("preamble/" + name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("asm: no preamble for prefix %q", prefix)
	} else if err != nil {
		return "", fmt.Errorf("read preamble %s: %w", name, err)
	}
	return string(data), nil
}

// Preambles lists the prefixes with a built-in preamble.
func Preambles() []string {
	entries, err := preambles.ReadDir("preamble")
	if err != nil {
		return nil
	}
	var prefixes []string
	for _, entry := range entries {
		name := entry.Name()
		if len(name) > len(PreambleSuffix) && name[len(name)-len(PreambleSuffix):] == PreambleSuffix {
			prefixes = append(prefixes, name[:len(name)-len(PreambleSuffix)])
		}
	}
	return prefixes
}
