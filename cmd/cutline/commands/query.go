package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/pkg/persist"
	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

const (
	queryCmdUse   = "query <timeline-file>"
	queryCmdShort = "Resolve elements at a time or within a range"
	queryArgCount = 1

	queryAtFlag      = "at"
	queryRangeFlag   = "range"
	queryShallowFlag = "shallow"
)

// ErrNoQuerySelector is returned when neither --at nor --range is given.
var ErrNoQuerySelector = errors.New("one of --at or --range is required")

// NewQueryCommand creates the query subcommand.
func NewQueryCommand() *cobra.Command {
	var (
		configPath string
		atArg      string
		rangeArg   string
		shallow    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   queryCmdUse,
		Short: queryCmdShort,
		Args:  cobra.ExactArgs(queryArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			cc, err := newCmdContext(configPath, verbose)
			if err != nil {
				return err
			}

			return runQuery(cc, args[0], atArg, rangeArg, shallow)
		},
	}

	cmd.Flags().StringVar(&configPath, configFlag, "", "path to config file")
	cmd.Flags().StringVar(&atArg, queryAtFlag, "", "frame to resolve (default rate)")
	cmd.Flags().StringVar(&rangeArg, queryRangeFlag, "", "start:duration range to resolve (default rate)")
	cmd.Flags().BoolVar(&shallow, queryShallowFlag, false, "do not descend into nested compositions")
	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "verbose output")

	return cmd
}

func runQuery(cc *cmdContext, path, atArg, rangeArg string, shallow bool) error {
	if atArg == "" && rangeArg == "" {
		return ErrNoQuerySelector
	}

	tl, err := persist.LoadTimeline(path)
	if err != nil {
		return err
	}

	if atArg != "" {
		return queryAt(cc, tl, atArg, shallow)
	}

	return queryRange(cc, tl, rangeArg, shallow)
}

func queryAt(cc *cmdContext, tl *timeline.Timeline, atArg string, shallow bool) error {
	at, err := cc.parseTime(atArg)
	if err != nil {
		return err
	}

	for _, child := range tl.Tracks().Children() {
		track, ok := child.(*timeline.Track)
		if !ok {
			continue
		}

		trackTime, timeErr := tl.Tracks().TransformedTime(at, track)
		if timeErr != nil {
			return timeErr
		}

		hit, hitErr := track.ChildAtTime(trackTime, shallow)
		if hitErr != nil {
			return hitErr
		}

		if hit == nil {
			fmt.Fprintf(os.Stdout, "%s: no element at %s\n", track.Name(), cc.formatTime(at))

			continue
		}

		fmt.Fprintf(os.Stdout, "%s: %s %q\n", track.Name(), kindOf(hit), hit.Name())
	}

	return nil
}

func queryRange(cc *cmdContext, tl *timeline.Timeline, rangeArg string, shallow bool) error {
	searchRange, err := cc.parseRange(rangeArg)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Track", "Kind", "Name"})

	for _, child := range tl.Tracks().Children() {
		track, ok := child.(*timeline.Track)
		if !ok {
			continue
		}

		trackRange, rangeErr := tl.Tracks().TransformedTimeRange(searchRange, track)
		if rangeErr != nil {
			return rangeErr
		}

		hits, hitErr := track.ChildrenInRange(trackRange, shallow)
		if hitErr != nil {
			return hitErr
		}

		for _, hit := range hits {
			tbl.AppendRow(table.Row{track.Name(), kindOf(hit), hit.Name()})
		}
	}

	fmt.Fprintf(os.Stdout, "%s\n", tbl.Render())

	return nil
}
