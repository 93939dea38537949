// Command bfc compiles a tape language program to a native x86_64 or ARM
// hard-float GNU/Linux executable.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tebeka/atexit"

	"github.com/tinyrange/bfc/internal/codegen"
	_ "github.com/tinyrange/bfc/internal/codegen/amd64"
	_ "github.com/tinyrange/bfc/internal/codegen/arm"
	"github.com/tinyrange/bfc/internal/config"
	"github.com/tinyrange/bfc/internal/timeslice"
	"github.com/tinyrange/bfc/internal/token"
	"github.com/tinyrange/bfc/internal/toolchain"
)

var (
	tsRead     = timeslice.RegisterKind("read")
	tsParse    = timeslice.RegisterKind("parse")
	tsGenerate = timeslice.RegisterKind("generate")
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		atexit.Exit(130)
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bfc: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run() error {
	arch := flag.String("arch", "", "Target architecture (x86_64, armhf)")
	output := flag.String("o", "", "Output file (default: out, or out.s with -S; - for stdout with -S)")
	asmOnly := flag.Bool("S", false, "Write assembly instead of invoking the assembler and linker")
	configPath := flag.String("config", "", "Configuration file (default: ./"+config.Filename+" if present)")
	tapeSize := flag.Int("tape-size", 0, "Number of tape cells")
	boundsCheck := flag.Bool("bounds-check", true, "Trap pointer moves that leave the tape")
	keep := flag.Bool("keep", false, "Keep intermediate assembly and object files")
	debug := flag.Bool("debug", false, "Enable debug logging")
	probe := flag.Bool("probe", false, "Report the toolchain for every architecture and exit")
	initConfig := flag.String("init-config", "", "Write a configuration template to `path` and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <program.b | ->\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s -o hello hello.b\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -arch armhf -S -o - hello.b\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -probe\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *initConfig != "" {
		return config.WriteTemplate(*initConfig, config.Default())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	outputSet := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "arch":
			cfg.Arch = *arch
		case "o":
			cfg.Output = *output
			outputSet = true
		case "tape-size":
			cfg.TapeSize = *tapeSize
		case "bounds-check":
			cfg.BoundsCheck = boundsCheck
		case "keep":
			cfg.Toolchain.KeepIntermediates = *keep
		case "debug":
			if *debug {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *probe {
		return runProbe(os.Stdout, cfg)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		return fmt.Errorf("exactly one program required")
	}

	target, err := cfg.Architecture()
	if err != nil {
		return err
	}
	backend, err := codegen.LookupBackend(target)
	if err != nil {
		return err
	}

	rec := timeslice.NewRecorder()
	defer func() { slog.Debug("Timings", "phases", rec) }()

	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	rec.Record(tsRead)
	tokens, err := token.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	rec.Record(tsParse)
	buf, err := codegen.Generate(tokens, backend, cfg.CodegenOptions())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	rec.Record(tsGenerate)

	if *asmOnly {
		path := cfg.Output
		if !outputSet {
			path = "out.s"
		}
		return writeAssembly(path, buf)
	}

	opts := cfg.ToolchainOptions()
	opts.Timings = rec
	opts.Track = func(dir string) func() {
		id := atexit.Register(func() { os.RemoveAll(dir) })
		return func() { _ = id.Cancel() }
	}
	exe, err := toolchain.New(backend.Descriptor(), opts).Compile(buf, cfg.Output)
	if err != nil {
		return err
	}

	slog.Info("Compiled", "arch", target, "tokens", len(tokens), "output", exe)
	return nil
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeAssembly(path string, buf io.WriterTo) error {
	if path == "-" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func runProbe(w io.Writer, cfg config.Config) error {
	ok := true
	for _, arch := range codegen.Architectures() {
		backend, err := codegen.LookupBackend(arch)
		if err != nil {
			return err
		}
		tc := toolchain.New(backend.Descriptor(), cfg.ToolchainOptions())
		res := tc.Probe()

		fmt.Fprintf(w, "%s (prefix %s):\n", arch, strconv.Quote(tc.Prefix()))
		fmt.Fprintf(w, "  %s\n", res.Assembler)
		fmt.Fprintf(w, "  %s\n", res.Linker)
		if !res.Assembler.Supported() || !res.Linker.Supported() {
			ok = false
		}
	}
	if !ok {
		return fmt.Errorf("some toolchains are missing or too old")
	}
	return nil
}
