package conformance

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const maxShown = 60

// describe renders program output for a one-line report. Text is quoted with
// escape sequences removed; anything else is shown as hex.
func describe(b []byte) string {
	if len(b) == 0 {
		return "(empty)"
	}
	if !utf8.Valid(b) {
		if len(b) > maxShown/2 {
			return fmt.Sprintf("%x… (%d bytes)", b[:maxShown/2], len(b))
		}
		return fmt.Sprintf("%x", b)
	}
	return strconv.Quote(ansi.Truncate(ansi.Strip(string(b)), maxShown, "…"))
}

// WriteReport prints failures, backend mismatches and a summary line.
func WriteReport(w io.Writer, res *Results) {
	for _, c := range res.Cases {
		switch {
		case c.Skipped:
			fmt.Fprintf(w, "[SKIP] %s/%s on %s\n", c.Suite, c.Case, c.Arch)
		case !c.Passed:
			fmt.Fprintf(w, "[FAIL] %s/%s on %s: %s\n", c.Suite, c.Case, c.Arch, c.Error)
			if len(c.Stderr) > 0 {
				fmt.Fprintf(w, "       stderr: %s\n", describe(c.Stderr))
			}
		}
	}
	for _, m := range res.Mismatches {
		fmt.Fprintf(w, "[DIFF] %s/%s: %s\n", m.Suite, m.Case, m.Detail)
	}

	status := "PASS"
	if !res.OK() {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s: %d runs, %d passed, %d failed, %d skipped, %d mismatches (%s)\n",
		status, res.Total, res.Passed, res.Failed, res.Skipped, len(res.Mismatches), res.Duration.Round(1e6))
}
