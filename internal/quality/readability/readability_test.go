package readability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 3, CountWords(" one  two\nthree "))

	assert.Equal(t, 0, CountSentences(""))
	assert.Equal(t, 1, CountSentences("Hello world"))
	assert.Equal(t, 2, CountSentences("Hello world. How are you?"))
	assert.Equal(t, 1, CountSentences("Wait!!! "))

	assert.Equal(t, 0, CountSyllables(""))
	assert.Equal(t, 1, CountSyllables("a"))
	assert.Equal(t, 1, CountSyllables("cat"))
	assert.Equal(t, 1, CountSyllables("fast."))
	assert.Equal(t, 1, CountSyllables("jumped"))
	assert.Equal(t, 2, CountSyllables("happy"))
	assert.Equal(t, 0, CountSyllables("1998"))
}

func TestFleschKincaidGuards(t *testing.T) {
	t.Parallel()

	for _, x := range []int{0, 1, 50, 1000} {
		assert.Equal(t, 0.0, FleschKincaid(0, 3, x))
		assert.Equal(t, 0.0, FleschKincaid(12, 0, x))
	}
}

func TestFleschKincaidClamped(t *testing.T) {
	t.Parallel()

	for words := 1; words < 60; words += 7 {
		for sentences := 1; sentences < 10; sentences++ {
			for syllables := 0; syllables < 200; syllables += 13 {
				score := FleschKincaid(words, sentences, syllables)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	}
}

func TestScoreTextExtremes(t *testing.T) {
	t.Parallel()

	simple := ScoreText("The cat ran fast.", DefaultConfig())
	assert.Greater(t, simple.Score, 90.0)
	assert.Equal(t, StatusTooSimple, simple.Status)

	complexText := "Comprehensive organizational transformation initiatives necessitate extraordinarily " +
		"sophisticated interdepartmental communication infrastructure, particularly regarding " +
		"multinational telecommunications conglomerates operating internationally."
	hard := ScoreText(complexText, DefaultConfig())
	assert.Less(t, hard.Score, 30.0)
	assert.Equal(t, StatusTooComplex, hard.Status)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, StatusTooComplex, Classify(49.99, cfg))
	assert.Equal(t, StatusPass, Classify(50, cfg))
	assert.Equal(t, StatusPass, Classify(80, cfg))
	assert.Equal(t, StatusTooSimple, Classify(80.01, cfg))
}

func TestAnalyzePerSection(t *testing.T) {
	t.Parallel()

	module := domain.ContentModule{
		ID: "m1",
		Sections: []domain.Section{
			{ID: "easy", Title: "Easy", Blocks: []domain.ContentBlock{
				{ID: "b1", Type: domain.BlockText, Content: "The cat ran fast. The dog sat down."},
			}},
			{ID: "hard", Title: "Hard", Blocks: []domain.ContentBlock{
				{ID: "b2", Type: domain.BlockText, Content: "Interdepartmental telecommunications infrastructure necessitates extraordinarily comprehensive organizational reconfiguration."},
			}},
		},
	}

	result := Analyze([]domain.ContentModule{module}, DefaultConfig(), true)
	require.Len(t, result.SectionScores, 2)
	assert.Equal(t, StatusTooSimple, result.SectionScores[0].Status)
	assert.Equal(t, StatusTooComplex, result.SectionScores[1].Status)

	whole := ScoreText("The cat ran fast. The dog sat down. Interdepartmental telecommunications infrastructure necessitates extraordinarily comprehensive organizational reconfiguration.", DefaultConfig())
	assert.Equal(t, whole.Score, result.Score)
	assert.Equal(t, 3, result.SentenceCount)

	withoutSections := Analyze([]domain.ContentModule{module}, DefaultConfig(), false)
	assert.Empty(t, withoutSections.SectionScores)
	assert.Equal(t, result.Score, withoutSections.Score)
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	result := Analyze(nil, DefaultConfig(), false)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.WordCount)
	assert.Equal(t, StatusTooComplex, result.Status)
}
