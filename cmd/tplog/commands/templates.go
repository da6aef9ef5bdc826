package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplindex"
)

var templatesFlags struct {
	tplPath   string
	inputPath string
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates in a template table or an archive's embedded table",
	RunE:  runTemplates,
}

func init() {
	f := templatesCmd.Flags()
	f.StringVar(&templatesFlags.tplPath, "tpl", "", "path to a template CSV table")
	f.StringVar(&templatesFlags.inputPath, "input", "", "path to an encoded blob, read instead of --tpl")
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	csv, err := templatesSource()
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	bank, err := template.LoadFromText(csv)
	if err != nil {
		setExit(fail(cmd, fmt.Errorf("%w: %v", errs.ErrMalformed, err)))
		return nil
	}

	for _, tpl := range bank.All() {
		cmd.Printf("%d\t%d wildcards\t%s\n", tpl.EventID, tpl.WildcardCount(), tpl.Pattern)
	}

	cmd.Printf("%d templates\n", bank.Len())
	setExit(exitOK)

	return nil
}

func templatesSource() (string, error) {
	switch {
	case templatesFlags.inputPath != "":
		blob, err := readFile(templatesFlags.inputPath)
		if err != nil {
			return "", err
		}

		idx, err := tplindex.Build(blob, 0)
		if err != nil {
			return "", fmt.Errorf("%w: %v", errs.ErrCorrupt, err)
		}

		if len(idx.Header.TplCSV) == 0 {
			return "", fmt.Errorf("%w: blob has no embedded template table", errs.ErrBadArgument)
		}

		return string(idx.Header.TplCSV), nil

	case templatesFlags.tplPath != "":
		data, err := readFile(templatesFlags.tplPath)
		if err != nil {
			return "", err
		}

		return string(data), nil

	default:
		return "", fmt.Errorf("%w: one of --tpl or --input is required", errs.ErrBadArgument)
	}
}
