// Package batch splits the sample axis of a waveform into spans and runs the
// per-span stage sequentially, concatenating the partial waveforms in order.
package batch

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
)

// Span is the half-open sample range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of samples in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String formats the span as [start, end).
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Split partitions [0, n) into consecutive spans of size samples; the last
// span may be shorter. A non-positive size yields a single span.
func Split(n, size int) []Span {
	if n <= 0 {
		return nil
	}
	if size <= 0 || size >= n {
		return []Span{{Start: 0, End: n}}
	}

	spans := make([]Span, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		spans = append(spans, Span{Start: start, End: min(start+size, n)})
	}
	return spans
}

// Stage produces the partial waveform of span s, the i-th span of the call,
// and reports how many modes it kept.
type Stage func(i int, s Span) (waveform []complex128, kept int, err error)

// Stat records the outcome of one span.
type Stat struct {
	Span      Span
	Samples   int
	ModesKept int
}

// Run executes stage over spans strictly in ascending order and concatenates
// the outputs through b. The first error aborts the run; no partial waveform
// is returned.
func Run(b array.Backend, spans []Span, stage Stage, progress Progress) ([]complex128, []Stat, error) {
	if progress == nil {
		progress = Nop{}
	}

	parts := make([][]complex128, 0, len(spans))
	stats := make([]Stat, 0, len(spans))

	progress.Begin(len(spans))
	defer progress.End()

	for i, s := range spans {
		out, kept, err := stage(i, s)
		if err != nil {
			return nil, nil, fmt.Errorf("batch %d %v: %w", i, s, err)
		}
		parts = append(parts, out)
		stats = append(stats, Stat{Span: s, Samples: len(out), ModesKept: kept})
		progress.Advance(i, s)
	}

	return b.Concat(parts...), stats, nil
}
