package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// openAIClient implements the Client interface for the OpenAI API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4-turbo-preview"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     baseURL,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// ExtractCriteria sends an extraction request to OpenAI and parses the
// returned JSON object into a CriteriaResponse.
func (c *openAIClient) ExtractCriteria(ctx context.Context, description string) (CriteriaResponse, error) {
	prompt := fmt.Sprintf(`Extract gift-finding criteria from the following description.
Return a JSON object with these fields: age (integer or null), gender
("male", "female" or null), max_price (number or null), interests (list of
strings), occasion (string or null), relationship (string or null).

Description: %s`, description)

	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a helpful assistant that extracts gift criteria from text. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }.",
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return CriteriaResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return CriteriaResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CriteriaResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CriteriaResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return CriteriaResponse{}, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return CriteriaResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return CriteriaResponse{}, fmt.Errorf("no completion choices returned")
	}

	return parseCriteria(response.Choices[0].Message.Content)
}

// parseCriteria extracts the criteria fields from the model's reply.
func parseCriteria(content string) (CriteriaResponse, error) {
	content = cleanMarkdownWrapper(content)

	var criteria CriteriaResponse
	if err := json.Unmarshal([]byte(content), &criteria); err != nil {
		return CriteriaResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	switch criteria.Gender {
	case "", "male", "female":
	default:
		return CriteriaResponse{}, fmt.Errorf("invalid gender in response: %q", criteria.Gender)
	}

	if criteria.Age != nil && *criteria.Age < 0 {
		return CriteriaResponse{}, fmt.Errorf("negative age in response: %d", *criteria.Age)
	}
	if criteria.MaxPrice != nil && *criteria.MaxPrice < 0 {
		return CriteriaResponse{}, fmt.Errorf("negative max_price in response: %f", *criteria.MaxPrice)
	}

	return criteria, nil
}

// cleanMarkdownWrapper strips a ```json fence the model sometimes wraps
// around the payload despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Created int64 `json:"created"`
}
