// Package benchbar wraps progressbar so the benchmark workloads can
// report progress with a two-method surface.
package benchbar

import (
	"github.com/schollz/progressbar/v3"
)

type bar struct {
	pb *progressbar.ProgressBar
}

// NewBar starts a progress bar for maxItems items, rendered with the
// given description.
func NewBar(description string, maxItems int) *bar {
	pb := progressbar.Default(int64(maxItems), description)
	_ = pb.Set(0)

	return &bar{pb: pb}
}

func (b *bar) Inc() {
	_ = b.pb.Add(1)
}

func (b *bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
