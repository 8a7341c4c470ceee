package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/domain"
)

const moduleReply = "```json\n" + `{"id":"company-google","slug":"company-google","type":"company","title":"Google","isPremium":false,"order":0,
"sections":[{"id":"s1","title":"Overview","blocks":[{"id":"b1","type":"text","content":"Google hires engineers."}]}]}` + "\n```"

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "gpt-test", payload["model"])

		if status != http.StatusOK {
			http.Error(w, "quota exceeded", status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}}},
		})
	}))
}

func newTestGenerator(endpoint string) *ChatGPTGenerator {
	return NewChatGPTGenerator(config.ChatGPTConfig{Endpoint: endpoint, Model: "gpt-test", APIKey: "secret"})
}

func TestGenerateCompanyModule(t *testing.T) {
	t.Parallel()

	srv := chatServer(t, http.StatusOK, moduleReply)
	defer srv.Close()

	module, err := newTestGenerator(srv.URL).GenerateCompanyModule(context.Background(), domain.WorkItem{CompanySlug: "google"})
	require.NoError(t, err)
	assert.Equal(t, "company-google", module.ID)
	assert.Equal(t, "google", module.CompanySlug)
	require.Len(t, module.Sections, 1)
}

func TestGenerateQAModuleSetsSlugs(t *testing.T) {
	t.Parallel()

	srv := chatServer(t, http.StatusOK, moduleReply)
	defer srv.Close()

	module, err := newTestGenerator(srv.URL).GenerateQAModule(context.Background(), domain.WorkItem{CompanySlug: "google", RoleSlug: "swe"})
	require.NoError(t, err)
	assert.Equal(t, "swe", module.RoleSlug)
	assert.Equal(t, "qa-google-swe", module.ID)
	assert.Equal(t, "qa-google-swe", module.Slug)
}

func TestGenerateOverridesReplyID(t *testing.T) {
	t.Parallel()

	reply := strings.Replace(moduleReply, `"id":"company-google","slug":"company-google"`, `"id":"../escaped","slug":"../escaped"`, 1)
	require.NotEqual(t, moduleReply, reply)

	srv := chatServer(t, http.StatusOK, reply)
	defer srv.Close()

	module, err := newTestGenerator(srv.URL).GenerateCompanyModule(context.Background(), domain.WorkItem{CompanySlug: "google"})
	require.NoError(t, err)
	assert.Equal(t, "company-google", module.ID)
	assert.Equal(t, "company-google", module.Slug)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	srv := chatServer(t, http.StatusTooManyRequests, "")
	defer srv.Close()
	_, err := newTestGenerator(srv.URL).GenerateCompanyModule(context.Background(), domain.WorkItem{CompanySlug: "google"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	notModule := chatServer(t, http.StatusOK, `{"answer": "no"}`)
	defer notModule.Close()
	_, err = newTestGenerator(notModule.URL).GenerateCompanyModule(context.Background(), domain.WorkItem{CompanySlug: "google"})
	require.ErrorIs(t, err, domain.ErrNotModule)

	_, err = NewChatGPTGenerator(config.ChatGPTConfig{}).GenerateCompanyModule(context.Background(), domain.WorkItem{CompanySlug: "google"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misconfigured")
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(` {"a":1} `))
}
