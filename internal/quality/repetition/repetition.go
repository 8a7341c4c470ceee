// Package repetition finds phrases repeated across modules and stock
// AI-sounding phrases.
package repetition

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/textextract"
)

const (
	DefaultMinPhraseLength = 3
	DefaultMaxPhraseLength = 8
	DefaultThreshold       = 3
)

var (
	punctExpr           = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	punctKeepApostrophe = regexp.MustCompile(`[^\p{L}\p{N}\s']+`)
	curlyApostrophes    = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")
)

// Config controls n-gram lengths and the reporting threshold.
type Config struct {
	MinPhraseLength int `json:"minPhraseLength" yaml:"minPhraseLength"`
	MaxPhraseLength int `json:"maxPhraseLength" yaml:"maxPhraseLength"`
	Threshold       int `json:"threshold" yaml:"threshold"`
}

// DefaultConfig returns 3..8 word phrases reported at three occurrences.
func DefaultConfig() Config {
	return Config{
		MinPhraseLength: DefaultMinPhraseLength,
		MaxPhraseLength: DefaultMaxPhraseLength,
		Threshold:       DefaultThreshold,
	}
}

func (c Config) normalized() Config {
	if c.MinPhraseLength < 1 {
		c.MinPhraseLength = DefaultMinPhraseLength
	}
	if c.MaxPhraseLength < c.MinPhraseLength {
		c.MaxPhraseLength = c.MinPhraseLength
	}
	if c.Threshold < 1 {
		c.Threshold = DefaultThreshold
	}
	return c
}

// RepeatedPhrase is a phrase with every place it occurred.
type RepeatedPhrase struct {
	Phrase     string                `json:"phrase"`
	Count      int                   `json:"count"`
	Locations  []domain.TextLocation `json:"locations"`
	IsAIPhrase bool                  `json:"isAIPhrase"`
}

// Result is the repetition verdict. Pass is false when anything was found.
type Result struct {
	Pass            bool             `json:"pass"`
	RepeatedPhrases []RepeatedPhrase `json:"repeatedPhrases"`
	AIPhrases       []RepeatedPhrase `json:"aiPhrases"`
	UniquePhrases   int              `json:"uniquePhrases"`
}

// Normalize lowercases text and replaces punctuation with spaces.
func Normalize(text string) string {
	lower := cases.Lower(language.Und).String(text)
	return strings.Join(strings.Fields(punctExpr.ReplaceAllString(lower, " ")), " ")
}

// NormalizeKeepApostrophes is Normalize that preserves apostrophes so
// contractions stay intact.
func NormalizeKeepApostrophes(text string) string {
	lower := cases.Lower(language.Und).String(curlyApostrophes.Replace(text))
	return strings.Join(strings.Fields(punctKeepApostrophe.ReplaceAllString(lower, " ")), " ")
}

// IsSignificant reports whether at least half of the words (rounded up,
// minimum one) are outside the stopword list.
func IsSignificant(words []string) bool {
	required := (len(words) + 1) / 2
	if required < 1 {
		required = 1
	}
	content := 0
	for _, w := range words {
		if !commonWords[w] {
			content++
		}
	}
	return content >= required
}

// NGrams returns every significant n-gram of the given length.
func NGrams(words []string, n int) []string {
	if n <= 0 || n > len(words) {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		gram := words[i : i+n]
		if !IsSignificant(gram) {
			continue
		}
		out = append(out, strings.Join(gram, " "))
	}
	return out
}

// Detect scans every module together so phrases reused across modules are
// counted as one.
func Detect(modules []domain.ContentModule, cfg Config) Result {
	cfg = cfg.normalized()

	occurrences := map[string][]domain.TextLocation{}
	var order []string
	var fragments []textextract.Fragment
	for _, module := range modules {
		fragments = append(fragments, textextract.Fragments(module)...)
	}

	for _, fragment := range fragments {
		words := strings.Fields(Normalize(fragment.Text))
		for n := cfg.MinPhraseLength; n <= cfg.MaxPhraseLength; n++ {
			for _, gram := range NGrams(words, n) {
				if _, seen := occurrences[gram]; !seen {
					order = append(order, gram)
				}
				occurrences[gram] = append(occurrences[gram], fragment.Location)
			}
		}
	}

	result := Result{UniquePhrases: len(order)}
	for _, phrase := range order {
		locations := occurrences[phrase]
		if len(locations) < cfg.Threshold {
			continue
		}
		result.RepeatedPhrases = append(result.RepeatedPhrases, RepeatedPhrase{
			Phrase:    phrase,
			Count:     len(locations),
			Locations: locations,
		})
	}
	sort.SliceStable(result.RepeatedPhrases, func(i, j int) bool {
		a, b := result.RepeatedPhrases[i], result.RepeatedPhrases[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return len(strings.Fields(a.Phrase)) > len(strings.Fields(b.Phrase))
	})

	result.AIPhrases = detectAIPhrases(fragments)
	result.Pass = len(result.RepeatedPhrases) == 0 && len(result.AIPhrases) == 0
	return result
}

// FindAIPhrases returns the stock phrases present in a single text.
func FindAIPhrases(text string) []string {
	normalized := NormalizeKeepApostrophes(text)
	var found []string
	for _, phrase := range aiPhrases {
		if countPhrase(normalized, NormalizeKeepApostrophes(phrase)) > 0 {
			found = append(found, phrase)
		}
	}
	return found
}

func detectAIPhrases(fragments []textextract.Fragment) []RepeatedPhrase {
	normalized := make([]string, len(fragments))
	for i, fragment := range fragments {
		normalized[i] = NormalizeKeepApostrophes(fragment.Text)
	}

	var out []RepeatedPhrase
	for _, phrase := range aiPhrases {
		needle := NormalizeKeepApostrophes(phrase)
		hit := RepeatedPhrase{Phrase: phrase, IsAIPhrase: true}
		for i, text := range normalized {
			for n := countPhrase(text, needle); n > 0; n-- {
				hit.Locations = append(hit.Locations, fragments[i].Location)
			}
		}
		if len(hit.Locations) == 0 {
			continue
		}
		hit.Count = len(hit.Locations)
		out = append(out, hit)
	}
	return out
}

// countPhrase counts whole-word occurrences of needle in normalized text.
func countPhrase(text, needle string) int {
	if needle == "" || text == "" {
		return 0
	}
	haystack := " " + text + " "
	target := " " + needle + " "
	count := 0
	for i := 0; i <= len(haystack)-len(target); {
		idx := strings.Index(haystack[i:], target)
		if idx < 0 {
			break
		}
		count++
		// the trailing space may open the next match
		i += idx + len(target) - 1
	}
	return count
}
