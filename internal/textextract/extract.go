// Package textextract flattens content modules into analysable plain text.
package textextract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

// Fragment is the text of a single block together with its origin.
type Fragment struct {
	Text     string
	Location domain.TextLocation
}

// SectionText is the concatenated text of one section.
type SectionText struct {
	SectionID    string
	SectionTitle string
	Text         string
}

// BlockText returns the analysable text of a block. Decorative and unknown
// block types yield an empty string.
func BlockText(block domain.ContentBlock) string {
	var parts []string
	switch block.Type {
	case domain.BlockText, domain.BlockHeader, domain.BlockQuote, domain.BlockTip, domain.BlockWarning:
		parts = append(parts, block.Content)
	case domain.BlockQuiz:
		parts = append(parts, block.Question)
		for _, opt := range block.Options {
			parts = append(parts, opt.Text)
		}
		parts = append(parts, block.Explanation)
	case domain.BlockChecklist:
		parts = append(parts, block.Title)
		for _, item := range block.Items {
			parts = append(parts, item.Text)
		}
	case domain.BlockMedia:
		parts = append(parts, block.Title, block.Caption, block.Alt)
	default:
		return ""
	}
	return joinNonEmpty(parts, " ")
}

// ModuleText concatenates every block of the module into one string.
func ModuleText(module domain.ContentModule) string {
	var parts []string
	for _, section := range module.Sections {
		for _, block := range section.Blocks {
			parts = append(parts, BlockText(block))
		}
	}
	return joinNonEmpty(parts, " ")
}

// SectionTexts returns one entry per section, in module order.
func SectionTexts(module domain.ContentModule) []SectionText {
	out := make([]SectionText, 0, len(module.Sections))
	for _, section := range module.Sections {
		var parts []string
		for _, block := range section.Blocks {
			parts = append(parts, BlockText(block))
		}
		out = append(out, SectionText{
			SectionID:    section.ID,
			SectionTitle: section.Title,
			Text:         joinNonEmpty(parts, " "),
		})
	}
	return out
}

// Fragments returns the non-empty block texts of a module with locations.
func Fragments(module domain.ContentModule) []Fragment {
	var out []Fragment
	for _, section := range module.Sections {
		for _, block := range section.Blocks {
			text := BlockText(block)
			if text == "" {
				continue
			}
			out = append(out, Fragment{
				Text: text,
				Location: domain.TextLocation{
					ModuleID:  module.ID,
					SectionID: section.ID,
					BlockID:   block.ID,
					BlockType: block.Type,
				},
			})
		}
	}
	return out
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = stripMarkup(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, sep)
}

// stripMarkup reduces inline HTML to its text content. Plain text and
// Markdown pass through untouched.
func stripMarkup(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
