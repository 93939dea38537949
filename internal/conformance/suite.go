package conformance

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeout = 10 * time.Second

// Suite is one YAML file of programs.
type Suite struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Timeout     Duration `yaml:"timeout"`
	Cases       []Case   `yaml:"cases"`

	Path string `yaml:"-"`
}

type Case struct {
	Name        string      `yaml:"name"`
	Source      string      `yaml:"source"`
	Stdin       string      `yaml:"stdin"`
	TapeSize    int         `yaml:"tape_size"`
	BoundsCheck *bool       `yaml:"bounds_check"`
	Skip        bool        `yaml:"skip"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation describes a finished run. Stdout is compared exactly; StdoutHex
// takes precedence for output that is not valid text.
type Expectation struct {
	ExitCode       int    `yaml:"exit_code"`
	Stdout         string `yaml:"stdout"`
	StdoutHex      string `yaml:"stdout_hex"`
	StderrContains string `yaml:"stderr_contains"`
}

func (e Expectation) StdoutBytes() ([]byte, error) {
	if e.StdoutHex == "" {
		return []byte(e.Stdout), nil
	}
	return hex.DecodeString(e.StdoutHex)
}

func (c Case) boundsCheck() bool {
	return c.BoundsCheck == nil || *c.BoundsCheck
}

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// LoadSuite reads and checks a suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing suite file %s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	if s.Timeout == 0 {
		s.Timeout = Duration(defaultTimeout)
	}

	seen := make(map[string]bool)
	for i, c := range s.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("%s: case %d has no name", path, i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%s: duplicate case %q", path, c.Name)
		}
		seen[c.Name] = true
		if _, err := c.Expect.StdoutBytes(); err != nil {
			return nil, fmt.Errorf("%s: case %q: stdout_hex: %w", path, c.Name, err)
		}
	}
	return &s, nil
}

// LoadDir loads every *.yaml file in dir, ordered by file name.
func LoadDir(dir string) ([]*Suite, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no suite files in %s", dir)
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		s, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}
