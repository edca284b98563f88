package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/pkg/persist"
	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

const (
	inspectCmdUse   = "inspect <timeline-file>"
	inspectCmdShort = "Print the structure and placements of a timeline"
	inspectArgCount = 1
)

// NewInspectCommand creates the inspect subcommand.
func NewInspectCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   inspectCmdUse,
		Short: inspectCmdShort,
		Args:  cobra.ExactArgs(inspectArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			cc, err := newCmdContext(configPath, verbose)
			if err != nil {
				return err
			}

			return runInspect(cc, args[0])
		},
	}

	cmd.Flags().StringVar(&configPath, configFlag, "", "path to config file")
	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "verbose output")

	return cmd
}

func runInspect(cc *cmdContext, path string) error {
	color.NoColor = !cc.cfg.Display.Color //nolint:reassign // intentional override of library global

	tl, err := persist.LoadTimeline(path)
	if err != nil {
		return err
	}

	cc.logger.Info("timeline loaded", "path", path, "name", tl.Name())

	printHeader(cc, path, tl)

	for _, child := range tl.Tracks().Children() {
		track, ok := child.(*timeline.Track)
		if !ok {
			continue
		}

		printErr := printTrack(cc, track)
		if printErr != nil {
			return printErr
		}
	}

	return nil
}

func printHeader(cc *cmdContext, path string, tl *timeline.Timeline) {
	color.New(color.FgCyan, color.Bold).Fprintf(os.Stdout, "Timeline: %s\n", tl.Name())

	if info, statErr := os.Stat(path); statErr == nil {
		fmt.Fprintf(os.Stdout, "File: %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	}

	if start := tl.GlobalStartTime(); start != nil {
		fmt.Fprintf(os.Stdout, "Global start: %s\n", cc.formatTime(*start))
	}

	duration, err := tl.Duration()
	if err == nil {
		fmt.Fprintf(os.Stdout, "Duration: %s\n", cc.formatTime(duration))
	}

	fmt.Fprintln(os.Stdout)
}

func printTrack(cc *cmdContext, track *timeline.Track) error {
	color.New(color.FgGreen).Fprintf(os.Stdout, "Track %q (%s, %d children)\n", track.Name(), track.Kind(), track.Len())

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Kind", "Name", "Placement", "Trimmed", "Visible"})

	for i, child := range track.Children() {
		placement, err := track.RangeOfChildAtIndex(i)
		if err != nil {
			return fmt.Errorf("placement of child %d: %w", i, err)
		}

		trimmed := "-"

		trimmedRange, ok, err := track.TrimmedRangeOfChildAtIndex(i)
		if err != nil {
			return fmt.Errorf("trimmed placement of child %d: %w", i, err)
		}

		if ok {
			trimmed = cc.formatRange(trimmedRange)
		}

		tbl.AppendRow(table.Row{
			i,
			kindOf(child),
			child.Name(),
			cc.formatRange(placement),
			trimmed,
			child.Visible(),
		})
	}

	fmt.Fprintf(os.Stdout, "%s\n\n", tbl.Render())

	return nil
}

// kindOf names a composable's concrete kind for display.
func kindOf(c timeline.Composable) string {
	switch c.(type) {
	case *timeline.Clip:
		return "Clip"
	case *timeline.Gap:
		return "Gap"
	case *timeline.Transition:
		return "Transition"
	case *timeline.Track:
		return "Track"
	case *timeline.Stack:
		return "Stack"
	default:
		return fmt.Sprintf("%T", c)
	}
}
