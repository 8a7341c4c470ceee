package generator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

const TemplateName = "template"

// Template builds modules from fixed copy. It needs no network access and
// backs dry runs and demos.
type Template struct{}

var _ ports.Generator = Template{}

// NewTemplate returns the offline generator.
func NewTemplate() Template {
	return Template{}
}

// Name implements ports.Generator.
func (Template) Name() string { return TemplateName }

// DisplayName turns a slug such as "software-engineer" into "Software Engineer".
func DisplayName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

func companyName(item domain.WorkItem) string {
	if item.CompanyName != "" {
		return item.CompanyName
	}
	return DisplayName(item.CompanySlug)
}

// GenerateCompanyModule implements ports.Generator.
func (Template) GenerateCompanyModule(ctx context.Context, item domain.WorkItem) (domain.ContentModule, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContentModule{}, err
	}
	if item.CompanySlug == "" {
		return domain.ContentModule{}, fmt.Errorf("company slug is required")
	}
	name := companyName(item)
	id := "company-" + item.CompanySlug

	return domain.ContentModule{
		ID:          id,
		Slug:        id,
		Type:        domain.ModuleCompany,
		Title:       name + " Interview Guide",
		Description: "How " + name + " runs its interviews and how to prepare.",
		CompanySlug: item.CompanySlug,
		Sections: []domain.Section{
			{
				ID:    "overview",
				Title: "Overview",
				Blocks: []domain.ContentBlock{
					{ID: "overview-header", Type: domain.BlockHeader, Content: "About " + name, Level: 2},
					{ID: "overview-text", Type: domain.BlockText, Content: name +
						" hires engineers, analysts and designers for teams across many product areas." +
						" Interviewers want clear thinking and honest answers."},
				},
			},
			{
				ID:    "process",
				Title: "Interview Process",
				Blocks: []domain.ContentBlock{
					{ID: "process-text", Type: domain.BlockText, Content: "Most candidates start with a short recruiter call." +
						" A technical screen follows, then a final loop with several conversations." +
						" Each stage checks a different skill. Plan your prep one stage at a time."},
					{ID: "process-tip", Type: domain.BlockTip, Content: "Write down two stories about projects you led before the first call."},
					{ID: "process-divider", Type: domain.BlockDivider},
				},
			},
			{
				ID:    "practice",
				Title: "Practice",
				Blocks: []domain.ContentBlock{
					{
						ID:       "practice-quiz",
						Type:     domain.BlockQuiz,
						Question: "What do interviewers at " + name + " value most in an answer?",
						Options: []domain.QuizOption{
							{ID: "a", Text: "A clear line of reasoning", IsCorrect: true},
							{ID: "b", Text: "A memorized solution"},
							{ID: "c", Text: "The fastest possible reply"},
						},
						Explanation: "Reasoning shows how you work when the problem is new.",
					},
					{
						ID:    "practice-checklist",
						Type:  domain.BlockChecklist,
						Title: "Before your interview",
						Items: []domain.ChecklistItem{
							{ID: "news", Text: "Research recent news about " + name, Required: true},
							{ID: "speak", Text: "Practice speaking while you solve problems"},
							{ID: "questions", Text: "Prepare questions for each interviewer"},
						},
					},
				},
			},
		},
	}, nil
}

var templateQuestions = []struct {
	question string
	answer   string
}{
	{
		question: "Tell me about a time you disagreed with a teammate.",
		answer: "Pick a real conflict, explain both views and describe how the group reached a decision." +
			" End with what changed afterwards.",
	},
	{
		question: "Why do you want to work here as a %s?",
		answer: "Connect your past work to the product you would join." +
			" Name one problem you would like to help solve in your first year.",
	},
	{
		question: "Walk me through a hard bug you fixed.",
		answer: "Describe the symptoms, the steps you took to narrow the cause and the fix." +
			" Mention how you made sure it did not come back.",
	},
}

// GenerateQAModule implements ports.Generator.
func (Template) GenerateQAModule(ctx context.Context, item domain.WorkItem) (domain.ContentModule, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContentModule{}, err
	}
	if item.CompanySlug == "" || item.RoleSlug == "" {
		return domain.ContentModule{}, fmt.Errorf("company and role slugs are required")
	}
	name := companyName(item)
	role := DisplayName(item.RoleSlug)
	id := "qa-" + item.CompanySlug + "-" + item.RoleSlug

	blocks := []domain.ContentBlock{{
		ID:      "intro",
		Type:    domain.BlockText,
		Content: "Questions a " + role + " candidate at " + name + " should expect, with notes on how to answer them.",
	}}
	for i, q := range templateQuestions {
		question := q.question
		if strings.Contains(question, "%s") {
			question = fmt.Sprintf(question, role)
		}
		blocks = append(blocks,
			domain.ContentBlock{ID: fmt.Sprintf("q%d", i+1), Type: domain.BlockHeader, Content: question, Level: 3},
			domain.ContentBlock{ID: fmt.Sprintf("a%d", i+1), Type: domain.BlockText, Content: q.answer},
		)
	}

	return domain.ContentModule{
		ID:          id,
		Slug:        id,
		Type:        domain.ModuleQA,
		Title:       name + " " + role + " Interview Questions",
		CompanySlug: item.CompanySlug,
		RoleSlug:    item.RoleSlug,
		IsPremium:   true,
		Order:       1,
		Sections:    []domain.Section{{ID: "questions", Title: "Common Questions", Blocks: blocks}},
	}, nil
}
