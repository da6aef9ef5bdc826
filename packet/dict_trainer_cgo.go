//go:build cgo

package packet

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/flowlens/tplog/errs"
)

// GozstdTrainer trains a zstd dictionary via gozstd's cgo-backed
// zdict bindings.
type GozstdTrainer struct{}

// Train builds a dictionary of approximately targetSize bytes from
// samples. gozstd.BuildDict panics on pathological inputs (too few
// samples, all-identical samples); Train recovers and reports
// errs.ErrTrainingFailed instead, so the caller can fall back to plain
// compression.
func (GozstdTrainer) Train(samples [][]byte, targetSize int) (dict []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			dict = nil
			err = fmt.Errorf("%w: %v", errs.ErrTrainingFailed, r)
		}
	}()

	if len(samples) < 2 || targetSize <= 0 {
		return nil, fmt.Errorf("%w: insufficient samples", errs.ErrTrainingFailed)
	}

	d := gozstd.BuildDict(samples, targetSize)
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: empty dictionary", errs.ErrTrainingFailed)
	}

	return d, nil
}

var errTrainingExhausted = errs.ErrTrainingFailed
