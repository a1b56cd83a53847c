package detector

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// sampleRunes bounds how much of a document is fed to the detector.
const sampleRunes = 4096

// Result is the detected language of a text.
type Result struct {
	Language   string  `json:"language" yaml:"language"`     // English name, e.g. "English"
	ISOCode    string  `json:"iso_code" yaml:"iso_code"`     // ISO 639-1, e.g. "en"
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0-1
}

// Detector guesses the natural language of a document.
// The underlying models are loaded on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{}
}

func (d *Detector) build() {
	d.detector = lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithLowAccuracyMode().
		Build()
}

// Detect returns the most likely language of text, or false when no language
// could be determined.
func (d *Detector) Detect(text string) (Result, bool) {
	sample := strings.TrimSpace(truncate(text, sampleRunes))
	if sample == "" {
		return Result{}, false
	}

	d.once.Do(d.build)

	language, exists := d.detector.DetectLanguageOf(sample)
	if !exists {
		return Result{}, false
	}

	return Result{
		Language:   language.String(),
		ISOCode:    strings.ToLower(language.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(sample, language),
	}, true
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}
