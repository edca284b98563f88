package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/cutline/pkg/config"
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

const (
	configFlag  = "config"
	verboseFlag = "verbose"
)

// cmdContext bundles the loaded configuration and logger every subcommand
// needs.
type cmdContext struct {
	cfg    *config.Config
	logger *slog.Logger
}

// newCmdContext loads configuration from the given path (or the default
// search locations when empty) and sets up logging. Verbose drops the log
// level to debug regardless of configuration.
func newCmdContext(configPath string, verbose bool) (*cmdContext, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	return &cmdContext{cfg: cfg, logger: newLogger(cfg.Logging)}, nil
}

// formatTime renders a rational time per the configured display format.
func (cc *cmdContext) formatTime(t opentime.RationalTime) string {
	switch cc.cfg.Display.TimeFormat {
	case config.TimeFormatSeconds:
		return strconv.FormatFloat(t.Value()/t.Rate(), 'f', 3, 64) + "s"
	case config.TimeFormatRational:
		return t.String()
	default:
		return strconv.FormatFloat(t.Value(), 'f', -1, 64)
	}
}

// formatRange renders a time range as "start..end" in the configured format.
func (cc *cmdContext) formatRange(r opentime.TimeRange) string {
	return cc.formatTime(r.StartTime()) + ".." + cc.formatTime(r.EndTimeExclusive())
}

// parseTime parses a frame count at the configured default rate.
func (cc *cmdContext) parseTime(s string) (opentime.RationalTime, error) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return opentime.RationalTime{}, fmt.Errorf("parse time %q: %w", s, err)
	}

	return opentime.New(value, cc.cfg.Edit.DefaultRate), nil
}

// parseRange parses a "start:duration" pair of frame counts at the
// configured default rate.
func (cc *cmdContext) parseRange(s string) (opentime.TimeRange, error) {
	start, duration, found := strings.Cut(s, ":")
	if !found {
		return opentime.TimeRange{}, fmt.Errorf("parse range %q: want start:duration", s)
	}

	startTime, err := cc.parseTime(start)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	durationTime, err := cc.parseTime(duration)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	return opentime.NewRange(startTime, durationTime), nil
}
