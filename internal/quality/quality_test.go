package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/quality/readability"
)

func singleTextModule(id, text string) domain.ContentModule {
	return domain.ContentModule{
		ID:    id,
		Title: "Module " + id,
		Sections: []domain.Section{{
			ID:     "s1",
			Title:  "Overview",
			Blocks: []domain.ContentBlock{{ID: "b1", Type: domain.BlockText, Content: text}},
		}},
	}
}

func TestCheckAIPhraseIsHardFailure(t *testing.T) {
	t.Parallel()

	result := Check([]domain.ContentModule{singleTextModule("m1", "In conclusion, let's dive in.")}, DefaultOptions())

	assert.False(t, result.Overall.Pass)
	assert.Equal(t, StatusFail, result.Overall.Checks.Repetition)
	assert.False(t, result.Overall.FlaggedForReview)
	assert.Equal(t, "FAIL", result.Verdict())
	assert.Len(t, result.Repetition.AIPhrases, 2)
}

func TestCheckFactsFlagForReview(t *testing.T) {
	t.Parallel()

	text := "Google was founded in 1998 by Larry Page and Sergey Brin. " +
		"The company builds search, advertising and cloud products for businesses around the world."
	result := Check([]domain.ContentModule{singleTextModule("company-google", text)}, DefaultOptions())

	require.Equal(t, readability.StatusPass, result.Readability.Status)
	assert.True(t, result.Overall.Pass)
	assert.True(t, result.Overall.FlaggedForReview)
	assert.Equal(t, StatusPass, result.Overall.Checks.Repetition)
	assert.Equal(t, StatusPass, result.Overall.Checks.Readability)
	assert.Equal(t, StatusReviewNeeded, result.Overall.Checks.Facts)
	assert.Positive(t, result.FactCount())
	assert.Equal(t, "PASS (review needed)", result.Verdict())
}

func TestCheckReadabilityIsSoft(t *testing.T) {
	t.Parallel()

	result := Check([]domain.ContentModule{singleTextModule("m1", "The cat ran fast. The dog sat down.")}, DefaultOptions())

	assert.Equal(t, StatusFail, result.Overall.Checks.Readability)
	assert.Equal(t, StatusPass, result.Overall.Checks.Facts)
	assert.True(t, result.Overall.Pass)
	assert.True(t, result.Overall.FlaggedForReview)
}

func TestCheckCleanPass(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Readability = readability.Config{MinScore: 0, MaxScore: 100}
	result := Check([]domain.ContentModule{singleTextModule("m1", "The cat ran fast. The dog sat down.")}, opts)

	assert.True(t, result.Overall.Pass)
	assert.False(t, result.Overall.FlaggedForReview)
	assert.Equal(t, "PASS", result.Verdict())
	assert.Equal(t, []string{"m1"}, result.ModuleIDs)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	result := Check([]domain.ContentModule{singleTextModule("m1", "In conclusion, Google was founded in 1998.")}, DefaultOptions())
	out := Summary(result)

	assert.Contains(t, out, "Quality check: FAIL")
	assert.Contains(t, out, `AI phrase "in conclusion" x1 at m1/s1/b1`)
	assert.Contains(t, out, "[founding_year] 1998 (m1/s1/b1)")
}
