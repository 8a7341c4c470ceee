// Package validation checks the structure of generated modules. Problems are
// returned as data; callers decide whether to block on them.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/quality/readability"
	"github.com/dave/jobwiz-sub002/internal/quality/repetition"
	"github.com/dave/jobwiz-sub002/internal/textextract"
)

const DefaultMaxWords = 4000

// Module ids double as file names, so they are restricted to lowercase slugs.
var moduleIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Options tunes the warning checks.
type Options struct {
	Company  string
	Role     string
	MaxWords int
}

// Result separates blocking errors from advisory warnings. Warnings never
// make a module invalid.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks ids, block shapes and content, and warns about stock
// phrasing, length and missing company or role mentions.
func Validate(module domain.ContentModule, opts Options) Result {
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultMaxWords
	}

	var errs, warnings []string
	switch {
	case strings.TrimSpace(module.ID) == "":
		errs = append(errs, "module id missing")
	case !moduleIDPattern.MatchString(module.ID):
		errs = append(errs, fmt.Sprintf("module id %q must be a lowercase slug", module.ID))
	}
	if strings.TrimSpace(module.Title) == "" {
		errs = append(errs, "module title missing")
	}
	if len(module.Sections) == 0 {
		errs = append(errs, "module has no sections")
	}

	sectionIDs := map[string]bool{}
	blockIDs := map[string]bool{}
	for si, section := range module.Sections {
		switch {
		case section.ID == "":
			errs = append(errs, fmt.Sprintf("section[%d] id missing", si))
		case sectionIDs[section.ID]:
			errs = append(errs, fmt.Sprintf("duplicate section id %q", section.ID))
		}
		sectionIDs[section.ID] = true

		if len(section.Blocks) == 0 {
			warnings = append(warnings, fmt.Sprintf("section %q has no blocks", section.ID))
		}
		for bi, block := range section.Blocks {
			where := fmt.Sprintf("section %q block[%d]", section.ID, bi)
			switch {
			case block.ID == "":
				errs = append(errs, where+" id missing")
			case blockIDs[block.ID]:
				errs = append(errs, fmt.Sprintf("duplicate block id %q", block.ID))
			}
			blockIDs[block.ID] = true
			errs = append(errs, validateBlock(where, block)...)
		}
	}

	text := textextract.ModuleText(module)
	for _, phrase := range repetition.FindAIPhrases(text) {
		warnings = append(warnings, fmt.Sprintf("contains AI phrase %q", phrase))
	}
	if words := readability.CountWords(text); words > opts.MaxWords {
		warnings = append(warnings, fmt.Sprintf("word count %d exceeds %d", words, opts.MaxWords))
	}
	if w := mentionWarning(text, "company", opts.Company); w != "" {
		warnings = append(warnings, w)
	}
	if w := mentionWarning(text, "role", opts.Role); w != "" {
		warnings = append(warnings, w)
	}

	return Result{
		Valid:    len(errs) == 0,
		Errors:   nonNil(errs),
		Warnings: nonNil(warnings),
	}
}

func validateBlock(where string, block domain.ContentBlock) []string {
	var errs []string
	if !domain.KnownBlockTypes[block.Type] {
		return append(errs, fmt.Sprintf("%s unknown type %q", where, block.Type))
	}

	switch block.Type {
	case domain.BlockText, domain.BlockHeader, domain.BlockQuote, domain.BlockTip, domain.BlockWarning:
		if strings.TrimSpace(block.Content) == "" {
			errs = append(errs, fmt.Sprintf("%s %s content missing", where, block.Type))
		}
	case domain.BlockQuiz:
		if strings.TrimSpace(block.Question) == "" {
			errs = append(errs, where+" quiz question missing")
		}
		if len(block.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s quiz needs at least 2 options (got %d)", where, len(block.Options)))
		}
		correct := 0
		for _, opt := range block.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if block.MultiSelect && correct < 1 {
			errs = append(errs, where+" quiz needs at least 1 correct option")
		}
		if !block.MultiSelect && correct != 1 {
			errs = append(errs, fmt.Sprintf("%s quiz needs exactly 1 correct option (got %d)", where, correct))
		}
	case domain.BlockChecklist:
		if len(block.Items) == 0 {
			errs = append(errs, where+" checklist has no items")
		}
	case domain.BlockMedia:
		if strings.TrimSpace(block.URL) == "" {
			errs = append(errs, where+" media url missing")
		}
	}
	return errs
}

func mentionWarning(text, what, slug string) string {
	if slug == "" {
		return ""
	}
	fold := cases.Fold()
	haystack := fold.String(text)
	for _, candidate := range []string{slug, strings.ReplaceAll(slug, "-", " ")} {
		if strings.Contains(haystack, fold.String(candidate)) {
			return ""
		}
	}
	title := cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	return fmt.Sprintf("%s %q not mentioned in content", what, title)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
