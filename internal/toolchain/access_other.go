//go:build !linux

package toolchain

import (
	"fmt"
	"os"
)

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("mode %v is not executable", info.Mode().Perm())
	}
	return nil
}
