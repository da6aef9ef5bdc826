package commands

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/section"
)

func parseMagic(mode string) ([4]byte, error) {
	switch mode {
	case "archival":
		return section.MagicArchival, nil
	case "query":
		return section.MagicQuery, nil
	case "dict":
		return section.MagicDictionary, nil
	default:
		return [4]byte{}, fmt.Errorf("%w: unknown --mode %q (want archival, query, or dict)", errs.ErrBadArgument, mode)
	}
}

func readLines(path string, max int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", errs.ErrIO, path, err)
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())

		if max > 0 && len(lines) >= max {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", errs.ErrIO, path, err)
	}

	return lines, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", errs.ErrIO, path, err)
	}

	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errs.ErrIO, path, err)
	}

	return nil
}

// exitCodeFor maps a core-package error to one of tplog's exit codes by
// classifying against the errs sentinels; anything unrecognized falls
// back to the generic bad-arguments code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrIO), errors.Is(err, errs.ErrCorrupt),
		errors.Is(err, errs.ErrMalformed), errors.Is(err, errs.ErrTruncated),
		errors.Is(err, errs.ErrCompressor):
		return exitCorruptOrIO
	case errors.Is(err, errs.ErrBadArgument):
		return exitBadArgs
	default:
		return exitBadArgs
	}
}

func fail(cmd failLogger, err error) int {
	slog.Error(err.Error())
	cmd.PrintErrln(err)

	return exitCodeFor(err)
}

// failLogger is the subset of *cobra.Command used by fail, kept narrow so
// it's trivial to satisfy from tests.
type failLogger interface {
	PrintErrln(i ...interface{})
}
