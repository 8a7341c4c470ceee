// Package readability scores content with the Flesch reading-ease formula.
package readability

import (
	"math"
	"regexp"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/textextract"
)

// Status classifies a score against the configured band.
type Status string

const (
	StatusPass       Status = "pass"
	StatusTooComplex Status = "too_complex"
	StatusTooSimple  Status = "too_simple"
)

const (
	DefaultMinScore = 50
	DefaultMaxScore = 80
)

var (
	sentenceExpr   = regexp.MustCompile(`[^.!?]+[.!?]+`)
	silentEndExpr  = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingYExpr   = regexp.MustCompile(`^y`)
	vowelGroupExpr = regexp.MustCompile(`[aeiouy]{1,2}`)
	nonLetterExpr  = regexp.MustCompile(`[^a-z]`)
)

// Config is the acceptable score band.
type Config struct {
	MinScore float64 `json:"minScore" yaml:"minScore"`
	MaxScore float64 `json:"maxScore" yaml:"maxScore"`
}

// DefaultConfig returns the 50..80 band.
func DefaultConfig() Config {
	return Config{MinScore: DefaultMinScore, MaxScore: DefaultMaxScore}
}

// SectionScore is the per-section breakdown reported in per-section mode.
type SectionScore struct {
	ModuleID     string  `json:"moduleId"`
	SectionID    string  `json:"sectionId"`
	SectionTitle string  `json:"sectionTitle"`
	Score        float64 `json:"score"`
	WordCount    int     `json:"wordCount"`
	Status       Status  `json:"status"`
}

// Result is the readability verdict for a set of modules.
type Result struct {
	Score         float64        `json:"score"`
	WordCount     int            `json:"wordCount"`
	SentenceCount int            `json:"sentenceCount"`
	SyllableCount int            `json:"syllableCount"`
	Status        Status         `json:"status"`
	SectionScores []SectionScore `json:"sectionScores,omitempty"`
}

// Pass reports whether the score sits inside the band.
func (r Result) Pass() bool {
	return r.Status == StatusPass
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

// CountSentences counts terminated sentences; unterminated non-empty text is
// one sentence.
func CountSentences(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n := len(sentenceExpr.FindAllString(text, -1))
	if n == 0 {
		return 1
	}
	return n
}

// CountSyllables estimates the syllables of a single word.
func CountSyllables(word string) int {
	word = nonLetterExpr.ReplaceAllString(strings.ToLower(word), "")
	if word == "" {
		return 0
	}
	if len(word) <= 3 {
		return 1
	}
	word = silentEndExpr.ReplaceAllString(word, "")
	word = leadingYExpr.ReplaceAllString(word, "")
	groups := len(vowelGroupExpr.FindAllString(word, -1))
	if groups == 0 {
		return 1
	}
	return groups
}

// CountTextSyllables sums CountSyllables over every word of text.
func CountTextSyllables(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		total += CountSyllables(word)
	}
	return total
}

// FleschKincaid computes reading ease clamped to [0,100] and rounded to two
// decimals. Zero words or sentences yield 0.
func FleschKincaid(words, sentences, syllables int) float64 {
	if words <= 0 || sentences <= 0 {
		return 0
	}
	score := 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
	score = math.Max(0, math.Min(100, score))
	return math.Round(score*100) / 100
}

// Classify maps a score onto the configured band.
func Classify(score float64, cfg Config) Status {
	switch {
	case score < cfg.MinScore:
		return StatusTooComplex
	case score > cfg.MaxScore:
		return StatusTooSimple
	default:
		return StatusPass
	}
}

// ScoreText runs the full computation on a single string.
func ScoreText(text string, cfg Config) Result {
	words := CountWords(text)
	sentences := CountSentences(text)
	syllables := CountTextSyllables(text)
	score := FleschKincaid(words, sentences, syllables)
	return Result{
		Score:         score,
		WordCount:     words,
		SentenceCount: sentences,
		SyllableCount: syllables,
		Status:        Classify(score, cfg),
	}
}

// Analyze scores the combined text of all modules. With perSection set each
// section is scored on its own as well; the aggregate never averages them.
func Analyze(modules []domain.ContentModule, cfg Config, perSection bool) Result {
	texts := make([]string, 0, len(modules))
	for _, module := range modules {
		if text := textextract.ModuleText(module); text != "" {
			texts = append(texts, text)
		}
	}
	result := ScoreText(strings.Join(texts, " "), cfg)
	if !perSection {
		return result
	}

	for _, module := range modules {
		for _, section := range textextract.SectionTexts(module) {
			sectionResult := ScoreText(section.Text, cfg)
			result.SectionScores = append(result.SectionScores, SectionScore{
				ModuleID:     module.ID,
				SectionID:    section.SectionID,
				SectionTitle: section.SectionTitle,
				Score:        sectionResult.Score,
				WordCount:    sectionResult.WordCount,
				Status:       sectionResult.Status,
			})
		}
	}
	return result
}
