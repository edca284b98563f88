package commands

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/pkg/persist"
	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

const (
	chartCmdUse      = "chart <timeline-file>"
	chartCmdShort    = "Render a timeline layout as an HTML chart"
	chartArgCount    = 1
	chartOutputFlag  = "output"
	chartOutputShort = "o"
	chartOutputUsage = "output HTML file"
	chartStackName   = "layout"
)

// NewChartCommand creates the chart subcommand.
func NewChartCommand() *cobra.Command {
	var (
		configPath string
		outputPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   chartCmdUse,
		Short: chartCmdShort,
		Args:  cobra.ExactArgs(chartArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			cc, err := newCmdContext(configPath, verbose)
			if err != nil {
				return err
			}

			return runChart(cc, args[0], outputPath)
		},
	}

	cmd.Flags().StringVar(&configPath, configFlag, "", "path to config file")
	cmd.Flags().StringVarP(&outputPath, chartOutputFlag, chartOutputShort, "timeline.html", chartOutputUsage)
	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "verbose output")

	return cmd
}

func runChart(cc *cmdContext, path, outputPath string) error {
	tl, err := persist.LoadTimeline(path)
	if err != nil {
		return err
	}

	bar, err := buildLayoutChart(tl)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	renderErr := bar.Render(f)
	if renderErr != nil {
		return fmt.Errorf("render chart: %w", renderErr)
	}

	cc.logger.Info("chart written", "output", outputPath)

	return nil
}

// buildLayoutChart draws each track as a stacked horizontal sequence of
// its children's durations.
func buildLayoutChart(tl *timeline.Timeline) (*charts.Bar, error) {
	tracks := make([]*timeline.Track, 0, tl.Tracks().Len())
	trackNames := make([]string, 0, tl.Tracks().Len())
	maxChildren := 0

	for _, child := range tl.Tracks().Children() {
		track, ok := child.(*timeline.Track)
		if !ok {
			continue
		}

		tracks = append(tracks, track)
		trackNames = append(trackNames, fmt.Sprintf("%s (%s)", track.Name(), track.Kind()))

		if track.Len() > maxChildren {
			maxChildren = track.Len()
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Timeline: " + tl.Name()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(trackNames)

	for slot := 0; slot < maxChildren; slot++ {
		data := make([]opts.BarData, len(tracks))

		for i, track := range tracks {
			if slot >= track.Len() || track.Children()[slot].Overlapping() {
				data[i] = opts.BarData{Value: 0}

				continue
			}

			child := track.Children()[slot]

			duration, err := child.Duration()
			if err != nil {
				return nil, fmt.Errorf("duration of %q: %w", child.Name(), err)
			}

			data[i] = opts.BarData{Name: child.Name(), Value: duration.Value()}
		}

		bar.AddSeries(fmt.Sprintf("slot %d", slot), data,
			charts.WithBarChartOpts(opts.BarChart{Stack: chartStackName}))
	}

	return bar, nil
}
