// Package conformance compiles YAML-described programs for every usable
// backend, runs them and checks their behaviour against the expectation and
// against each other.
package conformance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/tinyrange/bfc/internal/codegen"
	"github.com/tinyrange/bfc/internal/token"
)

type Runner struct {
	Targets []Target

	// WorkDir receives the executables. A temporary directory is used when
	// empty.
	WorkDir string

	// OnResult is called after every (case, target) run.
	OnResult func(CaseResult)

	Logger *slog.Logger
}

type CaseResult struct {
	Suite string
	Case  string
	Arch  codegen.Architecture

	Skipped   bool
	Completed bool // the program ran to exit, pass or fail
	Passed    bool
	Error     string
	ExitCode  int
	Stdout    []byte
	Stderr    []byte
	Duration  time.Duration
}

// Mismatch records a case whose backends disagreed.
type Mismatch struct {
	Suite  string
	Case   string
	Detail string
}

type Results struct {
	Cases      []CaseResult
	Mismatches []Mismatch
	Total      int
	Passed     int
	Failed     int
	Skipped    int
	Duration   time.Duration
}

func (r *Results) OK() bool {
	return r.Failed == 0 && len(r.Mismatches) == 0
}

// Runs returns how many (case, target) pairs Run will execute.
func (r *Runner) Runs(suites []*Suite) int {
	n := 0
	for _, s := range suites {
		n += len(s.Cases) * len(r.Targets)
	}
	return n
}

// Run executes every case of every suite on every target.
func (r *Runner) Run(ctx context.Context, suites []*Suite) (*Results, error) {
	if len(r.Targets) == 0 {
		return nil, fmt.Errorf("no usable targets")
	}
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	workDir := r.WorkDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "bfc-conformance-*")
		if err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
		defer os.RemoveAll(dir)
		workDir = dir
	}

	start := time.Now()
	results := &Results{}
	for _, s := range suites {
		for _, c := range s.Cases {
			for _, tgt := range r.Targets {
				if ctx.Err() != nil {
					return results, ctx.Err()
				}
				res := r.runCase(ctx, workDir, s, c, tgt)
				log.Debug("conformance run", "suite", s.Name, "case", c.Name, "arch", tgt.Arch, "passed", res.Passed)

				results.Cases = append(results.Cases, res)
				results.Total++
				switch {
				case res.Skipped:
					results.Skipped++
				case res.Passed:
					results.Passed++
				default:
					results.Failed++
				}
				if r.OnResult != nil {
					r.OnResult(res)
				}
			}
		}
	}

	results.Mismatches = compareBackends(results.Cases)
	results.Duration = time.Since(start)
	return results, nil
}

func (r *Runner) runCase(ctx context.Context, workDir string, s *Suite, c Case, tgt Target) (res CaseResult) {
	start := time.Now()
	res = CaseResult{Suite: s.Name, Case: c.Name, Arch: tgt.Arch}
	defer func() { res.Duration = time.Since(start) }()

	if c.Skip {
		res.Skipped = true
		return res
	}

	exe, err := Build(tgt, c, filepath.Join(workDir, executableName(s, c, tgt)))
	if err != nil {
		res.Error = err.Error()
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout.Duration())
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := tgt.command(ctx, exe)
	cmd.Stdin = strings.NewReader(c.Stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
	case ctx.Err() != nil:
		res.Error = fmt.Sprintf("timed out after %s", s.Timeout.Duration())
		return res
	default:
		res.Error = fmt.Sprintf("run: %v", err)
		return res
	}
	res.Completed = true

	if msg := check(c.Expect, res); msg != "" {
		res.Error = msg
		return res
	}
	res.Passed = true
	return res
}

// Build compiles one case for tgt and returns the executable path.
func Build(tgt Target, c Case, output string) (string, error) {
	tokens, err := token.Parse([]byte(c.Source))
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	buf, err := codegen.Generate(tokens, tgt.Backend, codegen.Options{
		TapeSize:    c.TapeSize,
		BoundsCheck: c.boundsCheck(),
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	exe, err := tgt.Toolchain.Compile(buf, output)
	if err != nil {
		return "", fmt.Errorf("compile: %w", err)
	}
	return exe, nil
}

func check(want Expectation, res CaseResult) string {
	if res.ExitCode != want.ExitCode {
		return fmt.Sprintf("exit code %d, want %d", res.ExitCode, want.ExitCode)
	}
	stdout, _ := want.StdoutBytes()
	if !bytes.Equal(res.Stdout, stdout) {
		return fmt.Sprintf("stdout %s, want %s", describe(res.Stdout), describe(stdout))
	}
	if want.StderrContains != "" && !bytes.Contains(res.Stderr, []byte(want.StderrContains)) {
		return fmt.Sprintf("stderr %s does not contain %q", describe(res.Stderr), want.StderrContains)
	}
	return ""
}

// compareBackends checks that every target produced the same output and
// exit status for each case it ran to completion.
func compareBackends(cases []CaseResult) []Mismatch {
	ran := lo.Filter(cases, func(c CaseResult, _ int) bool { return c.Completed })
	groups := lo.GroupBy(ran, func(c CaseResult) string { return c.Suite + "\x00" + c.Case })

	var mismatches []Mismatch
	for _, key := range lo.Uniq(lo.Map(ran, func(c CaseResult, _ int) string { return c.Suite + "\x00" + c.Case })) {
		group := groups[key]
		first := group[0]
		for _, other := range group[1:] {
			var detail string
			switch {
			case other.ExitCode != first.ExitCode:
				detail = fmt.Sprintf("%s exited %d, %s exited %d", first.Arch, first.ExitCode, other.Arch, other.ExitCode)
			case !bytes.Equal(other.Stdout, first.Stdout):
				detail = fmt.Sprintf("%s wrote %s, %s wrote %s", first.Arch, describe(first.Stdout), other.Arch, describe(other.Stdout))
			default:
				continue
			}
			mismatches = append(mismatches, Mismatch{Suite: first.Suite, Case: first.Case, Detail: detail})
		}
	}
	return mismatches
}

func executableName(s *Suite, c Case, tgt Target) string {
	clean := func(name string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
				return r
			}
			return '_'
		}, name)
	}
	return fmt.Sprintf("%s-%s-%s", clean(strings.TrimSuffix(s.Name, ".yaml")), clean(c.Name), tgt.Arch)
}
