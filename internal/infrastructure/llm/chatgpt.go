package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

const GeneratorName = "chatgpt"

// ChatGPTGenerator implements ports.Generator backed by OpenAI-compatible APIs.
type ChatGPTGenerator struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.Generator = (*ChatGPTGenerator)(nil)

// NewChatGPTGenerator builds a client from configuration.
func NewChatGPTGenerator(cfg config.ChatGPTConfig) *ChatGPTGenerator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &ChatGPTGenerator{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements ports.Generator.
func (c *ChatGPTGenerator) Name() string { return GeneratorName }

// GenerateCompanyModule asks the model for a company overview module.
func (c *ChatGPTGenerator) GenerateCompanyModule(ctx context.Context, item domain.WorkItem) (domain.ContentModule, error) {
	id := "company-" + item.CompanySlug
	prompt := fmt.Sprintf(
		"Write a company interview guide module for %s (slug %q). Use id %q and type %q.",
		displayCompany(item), item.CompanySlug, id, domain.ModuleCompany)
	module, err := c.generate(ctx, prompt)
	if err != nil {
		return domain.ContentModule{}, err
	}
	// The reply's own id is never trusted; it names the stored file.
	module.ID = id
	module.Slug = id
	module.CompanySlug = item.CompanySlug
	return module, nil
}

// GenerateQAModule asks the model for role-specific interview questions.
func (c *ChatGPTGenerator) GenerateQAModule(ctx context.Context, item domain.WorkItem) (domain.ContentModule, error) {
	id := "qa-" + item.CompanySlug + "-" + item.RoleSlug
	prompt := fmt.Sprintf(
		"Write an interview questions module for the %s role at %s. Use id %q and type %q.",
		item.RoleSlug, displayCompany(item), id, domain.ModuleQA)
	module, err := c.generate(ctx, prompt)
	if err != nil {
		return domain.ContentModule{}, err
	}
	module.ID = id
	module.Slug = id
	module.CompanySlug = item.CompanySlug
	module.RoleSlug = item.RoleSlug
	return module, nil
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatGPTGenerator) generate(ctx context.Context, prompt string) (domain.ContentModule, error) {
	if c == nil {
		return domain.ContentModule{}, fmt.Errorf("chatgpt client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return domain.ContentModule{}, fmt.Errorf("chatgpt client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.systemPrompt)},
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
	})
	if err != nil {
		return domain.ContentModule{}, fmt.Errorf("marshal chatgpt payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.ContentModule{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ContentModule{}, fmt.Errorf("send prompt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.ContentModule{}, fmt.Errorf("chatgpt error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ContentModule{}, fmt.Errorf("decode chatgpt response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return domain.ContentModule{}, fmt.Errorf("chatgpt returned no choices")
	}

	content := stripFences(decoded.Choices[0].Message.Content)
	module, err := domain.DecodeModule([]byte(content))
	if err != nil {
		return domain.ContentModule{}, fmt.Errorf("chatgpt reply: %w", err)
	}
	return module, nil
}

func displayCompany(item domain.WorkItem) string {
	if item.CompanyName != "" {
		return item.CompanyName
	}
	return item.CompanySlug
}

// stripFences removes a ```json ... ``` wrapper some models add.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You write interview preparation content. Reply with a single JSON object shaped as " +
			`{"id","slug","type","title","description","isPremium","order","sections":[{"id","title","blocks":[{"id","type",...}]}]}` +
			". Block types: text, header, quote, tip, warning, quiz, checklist, media. Avoid filler phrases."
	}
	return prompt
}
