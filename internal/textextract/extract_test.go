package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

func TestBlockText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block domain.ContentBlock
		want  string
	}{
		{
			name:  "text",
			block: domain.ContentBlock{Type: domain.BlockText, Content: "  Plain text.  "},
			want:  "Plain text.",
		},
		{
			name:  "header",
			block: domain.ContentBlock{Type: domain.BlockHeader, Content: "Overview"},
			want:  "Overview",
		},
		{
			name: "quiz",
			block: domain.ContentBlock{
				Type:        domain.BlockQuiz,
				Question:    "Which one?",
				Options:     []domain.QuizOption{{ID: "a", Text: "First"}, {ID: "b", Text: "Second"}},
				Explanation: "Because.",
			},
			want: "Which one? First Second Because.",
		},
		{
			name: "checklist",
			block: domain.ContentBlock{
				Type:  domain.BlockChecklist,
				Title: "Prep",
				Items: []domain.ChecklistItem{{ID: "1", Text: "Sleep"}, {ID: "2", Text: "Eat"}},
			},
			want: "Prep Sleep Eat",
		},
		{
			name:  "media",
			block: domain.ContentBlock{Type: domain.BlockMedia, Title: "Office", Caption: "Campus view", Alt: "photo"},
			want:  "Office Campus view photo",
		},
		{
			name:  "html content",
			block: domain.ContentBlock{Type: domain.BlockTip, Content: "<p>Use the <strong>STAR</strong> method.</p>"},
			want:  "Use the STAR method.",
		},
		{
			name:  "markdown kept",
			block: domain.ContentBlock{Type: domain.BlockText, Content: "**CEO:** Sundar Pichai"},
			want:  "**CEO:** Sundar Pichai",
		},
		{
			name:  "divider",
			block: domain.ContentBlock{Type: domain.BlockDivider, Content: "ignored"},
			want:  "",
		},
		{
			name:  "unknown",
			block: domain.ContentBlock{Type: "carousel", Content: "ignored"},
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BlockText(tt.block))
		})
	}
}

func sampleModule() domain.ContentModule {
	return domain.ContentModule{
		ID: "m1",
		Sections: []domain.Section{
			{ID: "s1", Title: "One", Blocks: []domain.ContentBlock{
				{ID: "b1", Type: domain.BlockText, Content: "First block."},
				{ID: "b2", Type: domain.BlockDivider},
			}},
			{ID: "s2", Title: "Two", Blocks: []domain.ContentBlock{
				{ID: "b3", Type: domain.BlockTip, Content: "Second block."},
			}},
		},
	}
}

func TestModuleText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "First block. Second block.", ModuleText(sampleModule()))
}

func TestSectionTexts(t *testing.T) {
	t.Parallel()

	sections := SectionTexts(sampleModule())
	require.Len(t, sections, 2)
	assert.Equal(t, SectionText{SectionID: "s1", SectionTitle: "One", Text: "First block."}, sections[0])
	assert.Equal(t, "Second block.", sections[1].Text)
}

func TestFragmentsSkipEmptyBlocks(t *testing.T) {
	t.Parallel()

	fragments := Fragments(sampleModule())
	require.Len(t, fragments, 2)
	assert.Equal(t, domain.TextLocation{ModuleID: "m1", SectionID: "s2", BlockID: "b3", BlockType: domain.BlockTip}, fragments[1].Location)
}
