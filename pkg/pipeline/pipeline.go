package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/analytics"
	"github.com/dtnitsch/wordfreq/pkg/chart"
	"github.com/dtnitsch/wordfreq/pkg/detector"
	"github.com/dtnitsch/wordfreq/pkg/fetcher"
	"github.com/dtnitsch/wordfreq/pkg/mapreduce"
	"github.com/dtnitsch/wordfreq/pkg/parser"
)

// Fetcher retrieves the source document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Document, error)
}

// TextExtractor turns an HTML body into plain text.
type TextExtractor interface {
	PlainText(rawURL string, html []byte) (string, error)
}

// LanguageDetector guesses the language of the counted text.
type LanguageDetector interface {
	Detect(text string) (detector.Result, bool)
}

// Stages are the map-reduce steps of a run.
type Stages struct {
	Partition func(text string, numChunks int) []string
	Map       func(ctx context.Context, chunks []string, workers int) ([]*analytics.FrequencyTable, error)
	Reduce    func(tables []*analytics.FrequencyTable) *analytics.FrequencyTable
}

func DefaultStages() Stages {
	return Stages{
		Partition: mapreduce.Partition,
		Map:       mapreduce.MapChunks,
		Reduce:    mapreduce.Reduce,
	}
}

// Options tune a single run.
type Options struct {
	Workers        int
	TopN           int
	Extract        models.ExtractMode
	DetectLanguage bool
}

// Report summarises a completed run.
type Report struct {
	URL              string                `json:"url" yaml:"url"`
	Chunks           int                   `json:"chunks" yaml:"chunks"`
	Workers          int                   `json:"workers" yaml:"workers"`
	TotalWords       int                   `json:"total_words" yaml:"total_words"`
	DistinctWords    int                   `json:"distinct_words" yaml:"distinct_words"`
	TopWords         []mapreduce.WordCount `json:"top_words" yaml:"top_words"`
	Language         *detector.Result      `json:"language,omitempty" yaml:"language,omitempty"`
	TotalTimeSeconds float64               `json:"total_time_seconds" yaml:"total_time_seconds"`
}

type Pipeline struct {
	Fetcher   Fetcher
	Renderer  chart.Renderer
	Extractor TextExtractor
	Detector  LanguageDetector
	Stages    Stages
	Logger    *slog.Logger
}

// New returns a pipeline with the default map-reduce stages and HTML
// extractor. Detector stays nil until set.
func New(f Fetcher, r chart.Renderer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		Fetcher:   f,
		Renderer:  r,
		Extractor: &parser.Parser{},
		Stages:    DefaultStages(),
		Logger:    logger,
	}
}

// Run fetches url, counts its words and renders the top entries.
// A fetch failure aborts the run before any counting and is returned as is.
func (p *Pipeline) Run(ctx context.Context, url string, opts Options) (*Report, error) {
	startTime := time.Now()
	logger := p.Logger.With("url", url)

	if opts.Workers < 1 {
		opts.Workers = models.DefaultWorkers
	}

	logger.Info("Fetching source text")
	doc, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Error("Error fetching source text", "error", err)
		return nil, err
	}

	text, err := p.text(doc, opts.Extract)
	if err != nil {
		logger.Error("Error extracting text", "error", err)
		return nil, fmt.Errorf("failed to extract text from %s: %w", url, err)
	}

	chunks := p.Stages.Partition(text, opts.Workers)
	logger.Info("Starting MapReduce phase", "bytes", len(text), "chunks", len(chunks), "workers", opts.Workers)

	tables, err := p.Stages.Map(ctx, chunks, opts.Workers)
	if err != nil {
		logger.Error("Map phase failed", "error", err)
		return nil, fmt.Errorf("map phase: %w", err)
	}
	logger.Info("Map phase complete", "intermediate_tables", len(tables))

	global := p.Stages.Reduce(tables)
	logger.Info("Reduce phase complete", "distinct_words", global.Len(), "total_words", global.Total())

	top := mapreduce.TopN(global, opts.TopN)
	if err := p.Renderer.Render(top); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	report := &Report{
		URL:           url,
		Chunks:        len(chunks),
		Workers:       opts.Workers,
		TotalWords:    global.Total(),
		DistinctWords: global.Len(),
		TopWords:      top,
	}

	if opts.DetectLanguage && p.Detector != nil {
		if lang, ok := p.Detector.Detect(text); ok {
			report.Language = &lang
			logger.Info("Language detected", "language", lang.Language, "confidence", lang.Confidence)
		}
	}

	report.TotalTimeSeconds = time.Since(startTime).Seconds()
	logger.Info("Run finished", "top_keywords", mapreduce.FormatKeywords(top), "seconds", report.TotalTimeSeconds)
	return report, nil
}

// text returns the document body to count. The body is counted as fetched
// unless mode asks for HTML extraction; the empty mode means raw.
func (p *Pipeline) text(doc *fetcher.Document, mode models.ExtractMode) (string, error) {
	switch mode {
	case models.ExtractHTML:
	case models.ExtractAuto:
		if !doc.IsHTML() {
			return doc.Text(), nil
		}
	default:
		return doc.Text(), nil
	}
	if p.Extractor == nil {
		return doc.Text(), nil
	}
	return p.Extractor.PlainText(doc.URL, doc.Body)
}

// AnalyzeWords runs the default pipeline against url and draws the chart on
// stdout.
func AnalyzeWords(ctx context.Context, url string, workers, topN int) (*Report, error) {
	renderer := chart.NewBarChart(os.Stdout, fmt.Sprintf("Top %d words by frequency", topN), chart.DefaultWidth)
	p := New(fetcher.NewFetcher(), renderer, nil)
	return p.Run(ctx, url, Options{Workers: workers, TopN: topN, Extract: models.ExtractRaw})
}
