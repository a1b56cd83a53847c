package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dtnitsch/wordfreq/internal/common"
	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/chart"
	"github.com/dtnitsch/wordfreq/pkg/detector"
	"github.com/dtnitsch/wordfreq/pkg/fetcher"
	"github.com/dtnitsch/wordfreq/pkg/pipeline"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Command returns the analyze subcommand.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Fetch a text and chart its most frequent words",
		ArgsUsage: "[url]",
		Flags:     Flags(),
		Action:    AnalyzeAction,
	}
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML file with default settings",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Value:   models.DefaultWorkers,
			Usage:   "Number of parallel map workers (also the target chunk count)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Value:   models.DefaultTopN,
			Usage:   "Number of words to show",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   string(models.FormatChart),
			Usage:   "Output format: chart, json or yaml",
		},
		&cli.StringFlag{
			Name:  "extract",
			Value: string(models.ExtractRaw),
			Usage: "HTML handling: raw (count the body as fetched), auto (strip HTML responses) or html",
		},
		&cli.BoolFlag{
			Name:  "detect-language",
			Usage: "Report the detected language of the text",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: models.DefaultTimeout,
			Usage: "HTTP request timeout",
		},
		&cli.IntFlag{
			Name:  "width",
			Value: models.DefaultWidth,
			Usage: "Width of the longest chart bar",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log errors",
		},
	}
}

func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := resolveConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	var renderer chart.Renderer = chart.Discard
	if cfg.Format == models.FormatChart {
		renderer = chart.NewBarChart(c.App.Writer, fmt.Sprintf("Top %d words by frequency", cfg.TopN), cfg.Width)
	}

	p := pipeline.New(fetcher.NewFetcher(fetcher.WithTimeout(cfg.Timeout)), renderer, logger)
	if cfg.DetectLanguage {
		p.Detector = detector.New()
	}

	report, err := p.Run(c.Context, cfg.URL, pipeline.Options{
		Workers:        cfg.Workers,
		TopN:           cfg.TopN,
		Extract:        cfg.Extract,
		DetectLanguage: cfg.DetectLanguage,
	})
	if err != nil {
		if errors.Is(err, fetcher.ErrFetch) {
			return cli.Exit(fmt.Sprintf("Error: could not fetch input text: %v", err), 2)
		}
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}

	if err := writeReport(c.App.Writer, cfg.Format, report); err != nil {
		logger.Error("failed to write report", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	return nil
}

// resolveConfig layers the config file, explicitly set flags and the
// positional URL, in that order.
func resolveConfig(c *cli.Context) (models.Config, error) {
	cfg := models.DefaultConfig()
	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("top") {
		cfg.TopN = c.Int("top")
	}
	if c.IsSet("format") {
		cfg.Format = models.OutputFormat(strings.ToLower(c.String("format")))
	}
	if c.IsSet("extract") {
		cfg.Extract = models.ExtractMode(strings.ToLower(c.String("extract")))
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.NArg() > 0 {
		cfg.URL = c.Args().First()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	normalized, err := common.NormalizeURL(cfg.URL)
	if err != nil {
		return cfg, err
	}
	cfg.URL = normalized
	return cfg, nil
}

func writeReport(w io.Writer, format models.OutputFormat, report *pipeline.Report) error {
	var outputData []byte
	var marshalErr error

	switch format {
	case models.FormatJSON:
		outputData, marshalErr = json.MarshalIndent(report, "", "  ")
	case models.FormatYAML:
		outputData, marshalErr = yaml.Marshal(report)
	default:
		// Chart output is drawn by the renderer during the run
		if report.Language != nil {
			_, err := fmt.Fprintf(w, "\nLanguage: %s (%s, confidence %.2f)\n", report.Language.Language, report.Language.ISOCode, report.Language.Confidence)
			return err
		}
		return nil
	}

	if marshalErr != nil {
		return fmt.Errorf("failed to marshal report: %w", marshalErr)
	}
	_, err := fmt.Fprintln(w, string(outputData))
	return err
}
