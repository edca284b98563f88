package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/pkg/persist"
)

const (
	diffCmdUse   = "diff <file-a> <file-b>"
	diffCmdShort = "Compare two timeline files"
	diffArgCount = 2
)

// NewDiffCommand creates the diff subcommand. Both files are decoded to
// their canonical JSON form first, so equivalent timelines stored in
// different formats compare as identical.
func NewDiffCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   diffCmdUse,
		Short: diffCmdShort,
		Args:  cobra.ExactArgs(diffArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			cc, err := newCmdContext(configPath, verbose)
			if err != nil {
				return err
			}

			return runDiff(cc, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&configPath, configFlag, "", "path to config file")
	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "verbose output")

	return cmd
}

func runDiff(cc *cmdContext, pathA, pathB string) error {
	color.NoColor = !cc.cfg.Display.Color //nolint:reassign // intentional override of library global

	textA, err := canonicalText(pathA)
	if err != nil {
		return err
	}

	textB, err := canonicalText(pathB)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(textA, textB, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		color.New(color.FgGreen).Fprintln(os.Stdout, "Timelines are identical")

		return nil
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			color.New(color.FgGreen).Fprint(os.Stdout, d.Text)
		case diffmatchpatch.DiffDelete:
			color.New(color.FgRed).Fprint(os.Stdout, d.Text)
		case diffmatchpatch.DiffEqual:
			fmt.Fprint(os.Stdout, d.Text)
		}
	}

	fmt.Fprintln(os.Stdout)

	return nil
}

// canonicalText loads a timeline and re-encodes it as pretty JSON so the
// diff works on a stable representation.
func canonicalText(path string) (string, error) {
	tl, err := persist.LoadTimeline(path)
	if err != nil {
		return "", err
	}

	doc, err := persist.EncodeTimeline(tl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	err = persist.NewJSONCodec().Encode(&buf, doc)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
