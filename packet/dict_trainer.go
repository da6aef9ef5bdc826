package packet

// DictTrainer trains a shared compression dictionary from a set of sample
// payloads, used to build the TPF2 shared-dict variant.
type DictTrainer interface {
	Train(samples [][]byte, targetSize int) ([]byte, error)
}

// trainDictWithRetry trains a dictionary, halving targetSize on failure
// down to a 1 KiB floor before giving up, per the spec's retry policy for
// shared-dictionary training on small or low-diversity sample sets.
func trainDictWithRetry(trainer DictTrainer, samples [][]byte, targetSize int) ([]byte, error) {
	const floor = 1024

	size := targetSize

	var lastErr error

	for size >= floor {
		dict, err := trainer.Train(samples, size)
		if err == nil && len(dict) > 0 {
			return dict, nil
		}

		lastErr = err
		size /= 2
	}

	if lastErr == nil {
		lastErr = errTrainingExhausted
	}

	return nil, lastErr
}
