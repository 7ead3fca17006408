package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultHFBaseURL = "https://api-inference.huggingface.co/models"
	DefaultHFModel   = "Qwen/Qwen2.5-0.5B-Instruct"
)

// HuggingFaceClient клиент Inference API, промпт в формате ChatML
type HuggingFaceClient struct {
	baseURL string
	model   string
	token   string
	client  *http.Client
}

func NewHuggingFaceClient(baseURL, model, token string, timeout time.Duration) *HuggingFaceClient {
	if baseURL == "" {
		baseURL = DefaultHFBaseURL
	}
	if model == "" {
		model = DefaultHFModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HuggingFaceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func (c *HuggingFaceClient) Name() string {
	return "huggingface"
}

func (c *HuggingFaceClient) Explain(ctx context.Context, ec Context) (string, error) {
	if ec.Result == nil {
		return "", fmt.Errorf("%w: empty simulation result", ErrExplanationUnavailable)
	}

	body, err := json.Marshal(hfRequest{
		Inputs: chatML(systemPrompt, buildUserPrompt(ec)),
		Parameters: hfParameters{
			MaxNewTokens:   250,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: huggingface: %v", ErrExplanationUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: huggingface: read body: %v", ErrExplanationUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return "", &StatusError{Provider: c.Name(), Code: resp.StatusCode, Body: msg}
	}

	// обычно приходит [{"generated_text": "..."}], при ошибке модели {"error": "..."}
	var generations []hfGeneration
	if err := json.Unmarshal(raw, &generations); err == nil {
		if len(generations) == 0 {
			return "", fmt.Errorf("%w: huggingface: empty response", ErrExplanationUnavailable)
		}
		text := strings.TrimSpace(generations[0].GeneratedText)
		if text == "" {
			return "", fmt.Errorf("%w: huggingface: empty response", ErrExplanationUnavailable)
		}
		return text, nil
	}

	var apiErr hfError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
		return "", fmt.Errorf("%w: huggingface: %s", ErrExplanationUnavailable, apiErr.Error)
	}
	return "", fmt.Errorf("%w: huggingface: unexpected response format", ErrExplanationUnavailable)
}
