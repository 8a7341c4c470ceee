package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotModule marks well-formed JSON that is not a content module.
var ErrNotModule = errors.New("not a content module")

// BlockType enumerates the block kinds a module section may contain.
type BlockType string

const (
	BlockText      BlockType = "text"
	BlockHeader    BlockType = "header"
	BlockQuote     BlockType = "quote"
	BlockTip       BlockType = "tip"
	BlockWarning   BlockType = "warning"
	BlockQuiz      BlockType = "quiz"
	BlockChecklist BlockType = "checklist"
	BlockMedia     BlockType = "media"
	BlockDivider   BlockType = "divider"
	BlockSpacer    BlockType = "spacer"
)

// KnownBlockTypes lists every block type the product renders.
var KnownBlockTypes = map[BlockType]bool{
	BlockText:      true,
	BlockHeader:    true,
	BlockQuote:     true,
	BlockTip:       true,
	BlockWarning:   true,
	BlockQuiz:      true,
	BlockChecklist: true,
	BlockMedia:     true,
	BlockDivider:   true,
	BlockSpacer:    true,
}

// ModuleType describes what a module is about.
type ModuleType string

const (
	ModuleCompany     ModuleType = "company"
	ModuleRole        ModuleType = "role"
	ModuleCompanyRole ModuleType = "company-role"
	ModuleQA          ModuleType = "qa"
)

// QuizOption is a single answer of a quiz block.
type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// ChecklistItem is a single entry of a checklist block.
type ChecklistItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Required bool   `json:"required,omitempty"`
}

// ContentBlock is the flattened union of all block shapes; Type selects
// which fields are meaningful.
type ContentBlock struct {
	ID   string    `json:"id"`
	Type BlockType `json:"type"`

	// text, header, quote, tip, warning
	Content string `json:"content,omitempty"`
	Author  string `json:"author,omitempty"`
	Level   int    `json:"level,omitempty"`

	// quiz
	Question    string       `json:"question,omitempty"`
	Options     []QuizOption `json:"options,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	MultiSelect bool         `json:"multiSelect,omitempty"`

	// checklist, media
	Title string          `json:"title,omitempty"`
	Items []ChecklistItem `json:"items,omitempty"`

	// media
	MediaType string `json:"mediaType,omitempty"`
	URL       string `json:"url,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// Section groups ordered blocks under a title.
type Section struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Blocks []ContentBlock `json:"blocks"`
}

// ContentModule is a generated unit of educational content.
type ContentModule struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Type        ModuleType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CompanySlug string     `json:"companySlug,omitempty"`
	RoleSlug    string     `json:"roleSlug,omitempty"`
	IsPremium   bool       `json:"isPremium"`
	Order       int        `json:"order"`
	Sections    []Section  `json:"sections"`
}

// TextLocation points back to the block a piece of text came from.
type TextLocation struct {
	ModuleID  string    `json:"moduleId"`
	SectionID string    `json:"sectionId"`
	BlockID   string    `json:"blockId"`
	BlockType BlockType `json:"blockType"`
}

// String renders the location as module/section/block.
func (l TextLocation) String() string {
	return fmt.Sprintf("%s/%s/%s", l.ModuleID, l.SectionID, l.BlockID)
}

// BlockCount returns the number of blocks across all sections.
func (m ContentModule) BlockCount() int {
	total := 0
	for _, s := range m.Sections {
		total += len(s.Blocks)
	}
	return total
}

// DecodeModule parses raw JSON into a module. Input that parses but lacks a
// string id or an array sections field yields ErrNotModule.
func DecodeModule(raw []byte) (ContentModule, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var anyValue any
		if jsonErr := json.Unmarshal(raw, &anyValue); jsonErr == nil {
			// valid JSON, just not an object
			return ContentModule{}, ErrNotModule
		}
		return ContentModule{}, fmt.Errorf("decode module json: %w", err)
	}

	var id string
	if rawID, ok := fields["id"]; !ok || json.Unmarshal(rawID, &id) != nil || id == "" {
		return ContentModule{}, ErrNotModule
	}
	sections, ok := fields["sections"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(sections), []byte("[")) {
		return ContentModule{}, ErrNotModule
	}

	var module ContentModule
	if err := json.Unmarshal(raw, &module); err != nil {
		return ContentModule{}, fmt.Errorf("decode module %s: %w", id, err)
	}
	return module, nil
}
