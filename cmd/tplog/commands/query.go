package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/query"
	"github.com/flowlens/tplog/tplog"
)

var queryFlags struct {
	inputPath string
	tplPath   string
	text      string
	limit     int
	any       bool
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search an archive's packets for a keyword query without full decode",
	RunE:  runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&queryFlags.inputPath, "input", "", "path to the encoded blob (required)")
	f.StringVar(&queryFlags.tplPath, "tpl", "", "template CSV override; defaults to the table embedded in the blob")
	f.StringVar(&queryFlags.text, "q", "", "query text (required)")
	f.IntVar(&queryFlags.limit, "limit", 50, "max hits to return; 0 or less uses the default of 50")
	f.BoolVar(&queryFlags.any, "any", false, "match any query term instead of requiring all")

	_ = queryCmd.MarkFlagRequired("input")
	_ = queryCmd.MarkFlagRequired("q")
}

func runQuery(cmd *cobra.Command, _ []string) error {
	blob, err := readFile(queryFlags.inputPath)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	idx, err := tplog.Open(blob, 0)
	if err != nil {
		setExit(fail(cmd, fmt.Errorf("%w: %v", errs.ErrCorrupt, err)))
		return nil
	}

	bank, err := loadDecodeBank(idx.Header.TplCSV)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	hits, err := tplog.Query(idx, bank, queryFlags.text, query.Options{
		Limit:      queryFlags.limit,
		RequireAll: !queryFlags.any,
	})
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	for _, h := range hits {
		cmd.Printf("event=%d %s\n", h.EventID, h.Text)
	}

	if len(hits) == 0 {
		setExit(exitNoMatches)
		return nil
	}

	setExit(exitOK)

	return nil
}
