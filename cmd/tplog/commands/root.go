package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes, per the archive format's CLI contract: 0 on success (and,
// for query, at least one hit); 1 when query succeeds but finds nothing;
// 2 for bad arguments; 3 when a blob can't be read or fails a corruption
// check.
const (
	exitOK          = 0
	exitNoMatches   = 1
	exitBadArgs     = 2
	exitCorruptOrIO = 3
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "tplog",
	Short: "Templated packet-framed log codec",
	Long: `tplog mines line templates from raw logs, encodes them into a compact
packet-framed archive with embedded Bloom-filter keyword indexes, and
supports both full decode and sublinear keyword query over the result.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cobra.OnInitialize(setupLogging)

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(templatesCmd)
}

// Execute runs the command tree and returns the process exit code. Each
// subcommand reports its own exit code via setExit rather than relying
// on cobra's generic error-to-exit-1 mapping, since the archive format
// distinguishes "bad arguments" from "corrupt input" from "succeeded
// with zero matches."
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return exitBadArgs
	}

	return exitCode
}

// exitCode is set by a subcommand's RunE before it returns, since cobra's
// RunE only reports success/failure, not which of tplog's four exit
// codes applies.
var exitCode = exitOK

func setExit(code int) {
	exitCode = code
}

func setupLogging() {
	level := slog.LevelInfo

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
