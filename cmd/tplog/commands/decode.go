package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplog"
)

var decodeFlags struct {
	inputPath string
	tplPath   string
	outPath   string
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a packet-framed archive back to text",
	RunE:  runDecode,
}

func init() {
	f := decodeCmd.Flags()
	f.StringVar(&decodeFlags.inputPath, "input", "", "path to the encoded blob (required)")
	f.StringVar(&decodeFlags.tplPath, "tpl", "", "template CSV override; defaults to the table embedded in the blob")
	f.StringVar(&decodeFlags.outPath, "out", "", "output text path (required)")

	_ = decodeCmd.MarkFlagRequired("input")
	_ = decodeCmd.MarkFlagRequired("out")
}

func runDecode(cmd *cobra.Command, _ []string) error {
	blob, err := readFile(decodeFlags.inputPath)
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

	lines, err := tplog.Decode(idx, bank)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}

	if err := writeFile(decodeFlags.outPath, []byte(sb.String())); err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	cmd.Printf("decoded %d lines into %s\n", len(lines), decodeFlags.outPath)
	setExit(exitOK)

	return nil
}

func loadDecodeBank(embeddedCSV []byte) (*template.Bank, error) {
	if decodeFlags.tplPath != "" {
		data, err := readFile(decodeFlags.tplPath)
		if err != nil {
			return nil, err
		}

		return template.LoadFromText(string(data))
	}

	if len(embeddedCSV) == 0 {
		return nil, fmt.Errorf("%w: blob has no embedded template table and --tpl was not given", errs.ErrBadArgument)
	}

	return template.LoadFromText(string(embeddedCSV))
}
