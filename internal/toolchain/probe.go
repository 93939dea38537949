package toolchain

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// MinimumVersion is the oldest binutils release whose as accepts the
// generated ARM movw/movt and x86_64 movabsq forms together.
const MinimumVersion = "v2.26"

type ToolStatus struct {
	Name    string
	Path    string
	Version string // canonical semver, empty when unknown
	Err     error
}

// Supported reports whether the tool was found with a known version no
// older than MinimumVersion.
func (s ToolStatus) Supported() bool {
	return s.Err == nil && s.Version != "" && semver.Compare(s.Version, MinimumVersion) >= 0
}

func (s ToolStatus) String() string {
	switch {
	case s.Err != nil:
		return fmt.Sprintf("%s: %v", s.Name, s.Err)
	case s.Version == "":
		return fmt.Sprintf("%s: %s (unknown version)", s.Name, s.Path)
	case !s.Supported():
		return fmt.Sprintf("%s: %s %s (older than %s)", s.Name, s.Path, s.Version, MinimumVersion)
	default:
		return fmt.Sprintf("%s: %s %s", s.Name, s.Path, s.Version)
	}
}

type ProbeResult struct {
	Assembler ToolStatus
	Linker    ToolStatus
}

func (r ProbeResult) Available() bool {
	return r.Assembler.Err == nil && r.Linker.Err == nil
}

// Probe locates the assembler and linker and asks each for its version.
func (t *Toolchain) Probe() ProbeResult {
	return ProbeResult{
		Assembler: probeTool(t.Tool("as")),
		Linker:    probeTool(t.Tool("ld")),
	}
}

func probeTool(name string) ToolStatus {
	status := ToolStatus{Name: name}
	path, err := exec.LookPath(name)
	if err != nil {
		status.Err = err
		return status
	}
	status.Path = path

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		status.Err = fmt.Errorf("%s --version: %w", name, err)
		return status
	}
	status.Version = ParseVersion(out)
	return status
}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the release from the first line of GNU --version
// output, e.g. "GNU assembler (GNU Binutils for Debian) 2.40" gives "v2.40".
// Snapshot releases such as 2.38.50.20220615 reduce to major.minor.
func ParseVersion(output []byte) string {
	line, _, _ := bytes.Cut(output, []byte("\n"))
	sc := bufio.NewScanner(bytes.NewReader(line))
	sc.Split(bufio.ScanWords)

	var last string
	for sc.Scan() {
		if m := versionPattern.FindStringSubmatch(sc.Text()); m != nil && strings.HasPrefix(sc.Text(), m[0]) {
			last = m[0]
		}
	}
	if last == "" {
		return ""
	}
	v := semver.Canonical("v" + last)
	if v == "" {
		return ""
	}
	return semver.MajorMinor(v)
}
