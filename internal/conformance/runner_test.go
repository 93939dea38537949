package conformance

import (
	"bytes"
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tinyrange/bfc/internal/codegen"
	"github.com/tinyrange/bfc/internal/toolchain"
)

var _ = Describe("Checking results", func() {
	It("should compare exit code, stdout and stderr", func() {
		want := Expectation{ExitCode: 2, StdoutHex: "ff", StderrContains: "out of range"}

		Expect(check(want, CaseResult{ExitCode: 2, Stdout: []byte{0xff}, Stderr: []byte("bfc: tape pointer out of range\n")})).To(BeEmpty())
		Expect(check(want, CaseResult{ExitCode: 0, Stdout: []byte{0xff}})).To(ContainSubstring("exit code 0"))
		Expect(check(want, CaseResult{ExitCode: 2, Stdout: []byte("A")})).To(ContainSubstring("stdout"))
		Expect(check(want, CaseResult{ExitCode: 2, Stdout: []byte{0xff}})).To(ContainSubstring("stderr"))
	})

	It("should describe output for reports", func() {
		Expect(describe(nil)).To(Equal("(empty)"))
		Expect(describe([]byte("\x1b[31mred\x1b[0m"))).To(Equal(`"red"`))
		Expect(describe([]byte{0xff, 0x00})).To(Equal("ff00"))
		Expect(describe(bytes.Repeat([]byte("a"), 100))).To(HaveLen(len(`""`) + maxShown + len("…") - 1))
	})
})

var _ = Describe("Cross-backend comparison", func() {
	result := func(arch codegen.Architecture, code int, out string) CaseResult {
		return CaseResult{Suite: "s", Case: "c", Arch: arch, Completed: true, ExitCode: code, Stdout: []byte(out)}
	}

	It("should accept agreeing backends", func() {
		Expect(compareBackends([]CaseResult{
			result(codegen.ArchitectureX86_64, 0, "hi"),
			result(codegen.ArchitectureARMHF, 0, "hi"),
		})).To(BeEmpty())
	})

	It("should report differing output", func() {
		m := compareBackends([]CaseResult{
			result(codegen.ArchitectureX86_64, 0, "hi"),
			result(codegen.ArchitectureARMHF, 0, "ho"),
		})
		Expect(m).To(HaveLen(1))
		Expect(m[0].Detail).To(ContainSubstring("armhf wrote"))
	})

	It("should report differing exit codes", func() {
		m := compareBackends([]CaseResult{
			result(codegen.ArchitectureX86_64, 0, ""),
			result(codegen.ArchitectureARMHF, 2, ""),
		})
		Expect(m).To(HaveLen(1))
		Expect(m[0].Detail).To(ContainSubstring("exited 2"))
	})

	It("should ignore runs that never completed", func() {
		broken := result(codegen.ArchitectureARMHF, 0, "")
		broken.Completed = false
		Expect(compareBackends([]CaseResult{result(codegen.ArchitectureX86_64, 0, "x"), broken})).To(BeEmpty())
	})
})

var _ = Describe("Running programs", func() {
	var targets []Target

	BeforeEach(func() {
		var skipped map[codegen.Architecture]string
		targets, skipped = Discover(toolchain.Options{})
		for arch, reason := range skipped {
			GinkgoWriter.Printf("%s unavailable: %s\n", arch, reason)
		}
		if len(targets) == 0 {
			Skip("no assembler, linker and runner available for any backend")
		}
	})

	It("should pass the bundled programs on every target", func() {
		suites, err := LoadDir("testdata")
		Expect(err).NotTo(HaveOccurred())

		runs := 0
		runner := &Runner{
			Targets:  targets,
			WorkDir:  GinkgoT().TempDir(),
			OnResult: func(CaseResult) { runs++ },
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		res, err := runner.Run(ctx, suites)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(Equal(runner.Runs(suites)))

		var report bytes.Buffer
		WriteReport(&report, res)
		Expect(res.OK()).To(BeTrue(), report.String())
	})
})
