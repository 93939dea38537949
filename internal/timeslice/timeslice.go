// Package timeslice accumulates wall time per named compilation phase.
package timeslice

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Kind uint32

const InvalidKind = Kind(0)

var kinds = []string{"invalid"}

// RegisterKind names a phase. Not safe for concurrent use; call it from
// package-level var declarations.
func RegisterKind(name string) Kind {
	kinds = append(kinds, name)
	return Kind(len(kinds) - 1)
}

func (k Kind) String() string {
	if int(k) < len(kinds) {
		return kinds[k]
	}
	return fmt.Sprintf("kind(%d)", uint32(k))
}

// Recorder sums durations per kind in first-recorded order. A nil Recorder
// discards everything. It is not thread safe.
type Recorder struct {
	last   time.Time
	order  []Kind
	totals map[Kind]time.Duration
	counts map[Kind]int
}

func NewRecorder() *Recorder {
	return &Recorder{
		last:   time.Now(),
		totals: make(map[Kind]time.Duration),
		counts: make(map[Kind]int),
	}
}

// Record charges the time since the previous Record (or NewRecorder) to k.
func (r *Recorder) Record(k Kind) {
	if r == nil {
		return
	}
	now := time.Now()
	r.Add(k, now.Sub(r.last))
	r.last = now
}

func (r *Recorder) Add(k Kind, d time.Duration) {
	if r == nil {
		return
	}
	if _, ok := r.totals[k]; !ok {
		r.order = append(r.order, k)
	}
	r.totals[k] += d
	r.counts[k]++
}

func (r *Recorder) Duration(k Kind) time.Duration {
	if r == nil {
		return 0
	}
	return r.totals[k]
}

func (r *Recorder) Count(k Kind) int {
	if r == nil {
		return 0
	}
	return r.counts[k]
}

func (r *Recorder) Total() time.Duration {
	var total time.Duration
	if r == nil {
		return total
	}
	for _, d := range r.totals {
		total += d
	}
	return total
}

// LogValue groups the phases for slog.
func (r *Recorder) LogValue() slog.Value {
	if r == nil {
		return slog.GroupValue()
	}
	attrs := make([]slog.Attr, 0, len(r.order))
	for _, k := range r.order {
		attrs = append(attrs, slog.Duration(k.String(), r.totals[k]))
	}
	return slog.GroupValue(attrs...)
}

func (r *Recorder) String() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.order))
	for _, k := range r.order {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.totals[k].Round(time.Microsecond)))
	}
	return strings.Join(parts, " ")
}
