package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/pkg/persist"
)

const (
	validateCmdUse   = "validate <timeline-file>"
	validateCmdShort = "Validate a timeline file against the document schema"
	validateArgCount = 1
)

// ErrValidationFailed is returned when the document violates the schema.
var ErrValidationFailed = errors.New("validation failed")

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   validateCmdUse,
		Short: validateCmdShort,
		Args:  cobra.ExactArgs(validateArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			cc, err := newCmdContext(configPath, verbose)
			if err != nil {
				return err
			}

			return runValidate(cc, args[0])
		},
	}

	cmd.Flags().StringVar(&configPath, configFlag, "", "path to config file")
	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "verbose output")

	return cmd
}

func runValidate(cc *cmdContext, path string) error {
	color.NoColor = !cc.cfg.Display.Color //nolint:reassign // intentional override of library global

	doc, err := persist.LoadDocument(path)
	if err != nil {
		return err
	}

	validateErr := persist.ValidateDocument(doc)
	if validateErr == nil {
		color.New(color.FgGreen).Fprintf(os.Stdout, "Timeline is valid (%s)\n", path)

		return nil
	}

	color.New(color.FgRed).Fprintf(os.Stdout, "Timeline validation failed (%s)\n", path)
	fmt.Fprintf(os.Stdout, "  %v\n", validateErr)

	return ErrValidationFailed
}
