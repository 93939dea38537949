package toolchain

import (
	"debug/elf"
	"fmt"
)

// Verify checks that path is an ELF executable for machine that the current
// user may run.
func Verify(path string, machine elf.Machine) error {
	f, err := elf.Open(path)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	defer f.Close()

	if f.Type != elf.ET_EXEC && f.Type != elf.ET_DYN {
		return fmt.Errorf("verify %s: ELF type %v is not executable", path, f.Type)
	}
	if f.Machine != machine {
		return fmt.Errorf("verify %s: machine %v, want %v", path, f.Machine, machine)
	}
	if err := checkExecutable(path); err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	return nil
}
