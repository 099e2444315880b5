package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
)

// previewRunes is how much of each file the analysis keeps as a preview.
const previewRunes = 300

// tokenEncoding is the tiktoken encoding used for token estimates. Not
// Llama's own tokenizer, but close enough to size a fine-tuning run.
const tokenEncoding = "cl100k_base"

// FileStats describes one corpus file.
type FileStats struct {
	Name             string  `json:"name"`
	SizeBytes        int64   `json:"size_bytes"`
	Characters       int     `json:"characters"`
	Words            int     `json:"words"`
	ArabicWords      int     `json:"arabic_words"`
	ArabicPercentage float64 `json:"arabic_percentage"`
	Lines            int     `json:"lines"`
	Tokens           int     `json:"tokens,omitempty"`
	Preview          string  `json:"preview"`
}

// Analysis summarizes a text corpus before training-data generation.
type Analysis struct {
	TotalFiles       int         `json:"total_files"`
	Files            []FileStats `json:"files"`
	TotalCharacters  int         `json:"total_characters"`
	TotalWords       int         `json:"total_words"`
	TotalArabicWords int         `json:"total_arabic_words"`
	TotalLines       int         `json:"total_lines"`
	TotalTokens      int         `json:"total_tokens,omitempty"`
	Languages        []string    `json:"languages_detected"`
	ArabicPercentage float64     `json:"arabic_percentage"`
}

// Analyzer inspects corpus directories.
type Analyzer struct {
	// CountTokens adds token estimates to the analysis. Costs a pass
	// through every file with the tokenizer.
	CountTokens bool

	log logger.Logger
}

// NewAnalyzer returns an Analyzer. Token counting is off unless
// countTokens is set.
func NewAnalyzer(countTokens bool, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Noop()
	}
	return &Analyzer{CountTokens: countTokens, log: log}
}

// AnalyzeDir analyzes every .txt and .md file directly inside dir.
func (a *Analyzer) AnalyzeDir(dir string) (*Analysis, error) {
	files, err := CorpusFiles(dir)
	if err != nil {
		return nil, err
	}

	var encoder *tiktoken.Tiktoken
	if a.CountTokens {
		encoder, err = tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrDataset,
				"Failed to load the tokenizer",
				"Token counting needs network access on first use to fetch the encoding")
		}
	}

	analysis := &Analysis{TotalFiles: len(files)}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			a.log.Warn("skipping %s: %v", path, err)
			continue
		}
		content := string(data)

		stats := FileStats{
			Name:        filepath.Base(path),
			SizeBytes:   int64(len(data)),
			Characters:  utf8.RuneCountInString(content),
			Words:       len(strings.Fields(content)),
			ArabicWords: CountArabicWords(content),
			Lines:       countLines(content),
			Preview:     preview(content),
		}
		if stats.Words > 0 {
			stats.ArabicPercentage = float64(stats.ArabicWords) / float64(stats.Words) * 100
		}
		if encoder != nil {
			stats.Tokens = len(encoder.Encode(content, nil, nil))
			analysis.TotalTokens += stats.Tokens
		}

		analysis.Files = append(analysis.Files, stats)
		analysis.TotalCharacters += stats.Characters
		analysis.TotalWords += stats.Words
		analysis.TotalArabicWords += stats.ArabicWords
		analysis.TotalLines += stats.Lines
	}

	if analysis.TotalArabicWords > 0 {
		analysis.Languages = append(analysis.Languages, "Arabic")
	}
	if analysis.TotalWords > analysis.TotalArabicWords {
		analysis.Languages = append(analysis.Languages, "Other")
	}
	if analysis.TotalWords > 0 {
		analysis.ArabicPercentage = float64(analysis.TotalArabicWords) / float64(analysis.TotalWords) * 100
	}

	return analysis, nil
}

// CorpusFiles lists the .txt and .md files directly inside dir, sorted
// by name.
func CorpusFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.txt", "*.md"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrDataset,
				"Failed to scan "+dir,
				"Check the directory path")
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errors.New(errors.ErrDataset,
			"No text files found in "+dir,
			"Add .txt or .md files, or point the command at your corpus directory")
	}

	sort.Strings(files)
	return files, nil
}

// countLines counts lines the way a text editor would: a trailing
// newline doesn't start an extra line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

func preview(content string) string {
	if utf8.RuneCountInString(content) > previewRunes {
		return firstRunes(content, previewRunes) + "..."
	}
	return content
}
