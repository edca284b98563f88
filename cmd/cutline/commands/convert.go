package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/pkg/persist"
)

const (
	convertCmdUse   = "convert <input-file> <output-file>"
	convertCmdShort = "Convert a timeline between file formats"
	convertArgCount = 2
)

// NewConvertCommand creates the convert subcommand. Input and output
// formats are chosen by file extension (.otio, .yaml, .otlz).
func NewConvertCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   convertCmdUse,
		Short: convertCmdShort,
		Args:  cobra.ExactArgs(convertArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			cc, err := newCmdContext(configPath, verbose)
			if err != nil {
				return err
			}

			return runConvert(cc, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&configPath, configFlag, "", "path to config file")
	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "verbose output")

	return cmd
}

func runConvert(cc *cmdContext, inputPath, outputPath string) error {
	tl, err := persist.LoadTimeline(inputPath)
	if err != nil {
		return err
	}

	err = persist.SaveTimeline(outputPath, tl)
	if err != nil {
		return err
	}

	cc.logger.Info("timeline converted", "input", inputPath, "output", outputPath)

	return nil
}
