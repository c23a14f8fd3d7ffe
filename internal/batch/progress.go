package batch

import (
	"time"

	"go.uber.org/zap"
)

// Progress observes a batched run. It is a side channel and never affects
// the numerical result.
type Progress interface {
	Begin(total int)
	Advance(i int, s Span)
	End()
}

// Nop discards progress events.
type Nop struct{}

func (Nop) Begin(int)         {}
func (Nop) Advance(int, Span) {}
func (Nop) End()              {}

// LogProgress reports each finished span on a zap logger.
type LogProgress struct {
	logger *zap.Logger
	total  int
	start  time.Time
}

// NewLogProgress creates a progress reporter writing to logger.
func NewLogProgress(logger *zap.Logger) *LogProgress {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogProgress{logger: logger}
}

// Begin implements Progress.
func (p *LogProgress) Begin(total int) {
	p.total = total
	p.start = time.Now()
	p.logger.Info("waveform batches started", zap.Int("batches", total))
}

// Advance implements Progress.
func (p *LogProgress) Advance(i int, s Span) {
	p.logger.Info("waveform batch done",
		zap.Int("batch", i+1),
		zap.Int("of", p.total),
		zap.Int("start", s.Start),
		zap.Int("end", s.End),
	)
}

// End implements Progress.
func (p *LogProgress) End() {
	p.logger.Info("waveform batches finished",
		zap.Int("batches", p.total),
		zap.Duration("elapsed", time.Since(p.start)),
	)
}
