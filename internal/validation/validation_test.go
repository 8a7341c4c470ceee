package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

func validModule() domain.ContentModule {
	return domain.ContentModule{
		ID:    "company-google",
		Slug:  "company-google",
		Type:  domain.ModuleCompany,
		Title: "Google",
		Sections: []domain.Section{
			{
				ID:    "overview",
				Title: "Overview",
				Blocks: []domain.ContentBlock{
					{ID: "h1", Type: domain.BlockHeader, Content: "About Google", Level: 2},
					{ID: "t1", Type: domain.BlockText, Content: "Google hires software engineers across many teams."},
				},
			},
			{
				ID:    "practice",
				Title: "Practice",
				Blocks: []domain.ContentBlock{
					{
						ID:       "q1",
						Type:     domain.BlockQuiz,
						Question: "What matters most?",
						Options: []domain.QuizOption{
							{ID: "a", Text: "Clear reasoning", IsCorrect: true},
							{ID: "b", Text: "Speed alone"},
						},
					},
					{
						ID:    "c1",
						Type:  domain.BlockChecklist,
						Title: "Before the interview",
						Items: []domain.ChecklistItem{{ID: "i1", Text: "Review data structures"}},
					},
					{ID: "d1", Type: domain.BlockDivider},
				},
			},
		},
	}
}

func TestValidateAcceptsWellFormedModule(t *testing.T) {
	t.Parallel()

	result := Validate(validModule(), Options{Company: "google", Role: "software-engineer"})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(m *domain.ContentModule)
		want   string
	}{
		{
			name:   "missing id",
			mutate: func(m *domain.ContentModule) { m.ID = " " },
			want:   "module id missing",
		},
		{
			name:   "path traversal id",
			mutate: func(m *domain.ContentModule) { m.ID = "../escaped" },
			want:   `module id "../escaped" must be a lowercase slug`,
		},
		{
			name:   "uppercase id",
			mutate: func(m *domain.ContentModule) { m.ID = "Company-Google" },
			want:   "must be a lowercase slug",
		},
		{
			name:   "missing title",
			mutate: func(m *domain.ContentModule) { m.Title = "" },
			want:   "module title missing",
		},
		{
			name:   "no sections",
			mutate: func(m *domain.ContentModule) { m.Sections = nil },
			want:   "module has no sections",
		},
		{
			name:   "duplicate section",
			mutate: func(m *domain.ContentModule) { m.Sections[1].ID = "overview" },
			want:   `duplicate section id "overview"`,
		},
		{
			name:   "duplicate block",
			mutate: func(m *domain.ContentModule) { m.Sections[1].Blocks[0].ID = "t1" },
			want:   `duplicate block id "t1"`,
		},
		{
			name:   "unknown type",
			mutate: func(m *domain.ContentModule) { m.Sections[0].Blocks[1].Type = "carousel" },
			want:   `unknown type "carousel"`,
		},
		{
			name: "two correct answers",
			mutate: func(m *domain.ContentModule) {
				m.Sections[1].Blocks[0].Options[1].IsCorrect = true
			},
			want: "quiz needs exactly 1 correct option (got 2)",
		},
		{
			name: "single option",
			mutate: func(m *domain.ContentModule) {
				m.Sections[1].Blocks[0].Options = m.Sections[1].Blocks[0].Options[:1]
			},
			want: "quiz needs at least 2 options (got 1)",
		},
		{
			name:   "empty checklist",
			mutate: func(m *domain.ContentModule) { m.Sections[1].Blocks[1].Items = nil },
			want:   "checklist has no items",
		},
		{
			name:   "empty text",
			mutate: func(m *domain.ContentModule) { m.Sections[0].Blocks[1].Content = "  " },
			want:   "text content missing",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := validModule()
			tt.mutate(&m)
			result := Validate(m, Options{})
			require.False(t, result.Valid)
			assert.True(t, containsSubstring(result.Errors, tt.want), "errors: %v", result.Errors)
		})
	}
}

func TestValidateMultiSelectAllowsSeveralCorrect(t *testing.T) {
	t.Parallel()

	m := validModule()
	quiz := &m.Sections[1].Blocks[0]
	quiz.MultiSelect = true
	quiz.Options[1].IsCorrect = true

	assert.True(t, Validate(m, Options{}).Valid)
}

func TestValidateWarningsKeepModuleValid(t *testing.T) {
	t.Parallel()

	m := validModule()
	m.Sections[0].Blocks[1].Content = "In conclusion, interviews are long. " + strings.Repeat("word ", 20)

	result := Validate(m, Options{Company: "meta", Role: "data-scientist", MaxWords: 10})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.True(t, containsSubstring(result.Warnings, `contains AI phrase "in conclusion"`))
	assert.True(t, containsSubstring(result.Warnings, "exceeds 10"))
	assert.True(t, containsSubstring(result.Warnings, `company "Meta" not mentioned`))
	assert.True(t, containsSubstring(result.Warnings, `role "Data Scientist" not mentioned`))
}

func containsSubstring(list []string, want string) bool {
	for _, s := range list {
		if strings.Contains(s, want) {
			return true
		}
	}
	return false
}
