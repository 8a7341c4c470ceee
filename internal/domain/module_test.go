package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModule(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"id": "company-google",
		"slug": "company-google",
		"type": "company",
		"title": "Google",
		"isPremium": false,
		"order": 1,
		"sections": [
			{"id": "s1", "title": "Intro", "blocks": [
				{"id": "b1", "type": "text", "content": "Hello."},
				{"id": "b2", "type": "quiz", "question": "Q?", "options": [{"id": "a", "text": "A", "isCorrect": true}]}
			]}
		]
	}`)

	module, err := DecodeModule(raw)
	require.NoError(t, err)
	assert.Equal(t, "company-google", module.ID)
	assert.Equal(t, ModuleCompany, module.Type)
	require.Len(t, module.Sections, 1)
	assert.Equal(t, 2, module.BlockCount())
	assert.True(t, module.Sections[0].Blocks[1].Options[0].IsCorrect)
}

func TestDecodeModuleRejectsNonModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing id", raw: `{"sections": []}`},
		{name: "empty id", raw: `{"id": "", "sections": []}`},
		{name: "sections not array", raw: `{"id": "x", "sections": {}}`},
		{name: "missing sections", raw: `{"id": "x"}`},
		{name: "array document", raw: `[1, 2, 3]`},
		{name: "search volume file", raw: `{"companies": [], "priority_list": []}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeModule([]byte(tt.raw))
			assert.True(t, errors.Is(err, ErrNotModule), "got %v", err)
		})
	}
}

func TestDecodeModuleMalformed(t *testing.T) {
	t.Parallel()

	_, err := DecodeModule([]byte(`{"id": "x", "sections": [`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotModule))
}

func TestUnitKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "google", UnitKey("google", ""))
	assert.Equal(t, "google/swe", UnitKey("google", "swe"))
	assert.Equal(t, "google/swe", CompletionRecord{CompanySlug: "google", RoleSlug: "swe"}.Key())
}
