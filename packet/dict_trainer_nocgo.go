//go:build !cgo

package packet

import "github.com/flowlens/tplog/errs"

// GozstdTrainer is unavailable in pure-Go builds (gozstd requires cgo).
// Train always reports errs.ErrTrainingFailed so encoders fall back to
// plain per-packet compression.
type GozstdTrainer struct{}

// Train reports errs.ErrTrainingFailed unconditionally.
func (GozstdTrainer) Train([][]byte, int) ([]byte, error) {
	return nil, errs.ErrTrainingFailed
}

var errTrainingExhausted = errs.ErrTrainingFailed
