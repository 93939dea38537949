// Command bfc-conformance compiles the conformance programs for every
// backend with a usable toolchain and checks what they print.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/tinyrange/bfc/internal/codegen"
	_ "github.com/tinyrange/bfc/internal/codegen/amd64"
	_ "github.com/tinyrange/bfc/internal/codegen/arm"
	"github.com/tinyrange/bfc/internal/conformance"
	"github.com/tinyrange/bfc/internal/toolchain"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	atexit.Register(cancel)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
		cancel()
	}()

	ok, err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bfc-conformance: %v\n", err)
		atexit.Exit(1)
	}
	if !ok {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(ctx context.Context) (bool, error) {
	dir := flag.String("dir", "internal/conformance/testdata", "Directory of suite files")
	keep := flag.String("keep", "", "Leave the executables in `dir` instead of a temporary directory")
	archFilter := flag.String("arch", "", "Only run this architecture")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	suites, err := conformance.LoadDir(*dir)
	if err != nil {
		return false, err
	}

	targets, skipped := conformance.Discover(toolchain.Options{})
	if *archFilter != "" {
		want, err := codegen.ParseArchitecture(*archFilter)
		if err != nil {
			return false, err
		}
		var kept []conformance.Target
		for _, t := range targets {
			if t.Arch == want {
				kept = append(kept, t)
			}
		}
		targets = kept
	}

	archs := make([]string, 0, len(skipped))
	for arch := range skipped {
		archs = append(archs, string(arch))
	}
	sort.Strings(archs)
	for _, arch := range archs {
		slog.Warn("Skipping architecture", "arch", arch, "reason", skipped[codegen.Architecture(arch)])
	}
	for _, t := range targets {
		slog.Info("Target", "target", t.String())
	}

	runner := &conformance.Runner{Targets: targets, WorkDir: *keep}
	if *keep != "" {
		if err := os.MkdirAll(*keep, 0o755); err != nil {
			return false, err
		}
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar := progressbar.NewOptions(runner.Runs(suites),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("running"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		runner.OnResult = func(res conformance.CaseResult) {
			bar.Describe(fmt.Sprintf("%s/%s", res.Suite, res.Case))
			_ = bar.Add(1)
		}
	}

	res, err := runner.Run(ctx, suites)
	if err != nil {
		return false, err
	}
	conformance.WriteReport(os.Stdout, res)
	return res.OK(), nil
}
