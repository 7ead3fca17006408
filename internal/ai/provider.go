package ai

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOllama      = "ollama"
	ProviderHuggingFace = "huggingface"
	ProviderTemplate    = "template"
)

type ProviderConfig struct {
	Provider    string // пусто = выбрать автоматически
	OllamaURL   string
	OllamaModel string
	HFBaseURL   string
	HFToken     string
	HFModel     string
	Timeout     time.Duration // на один запрос
}

// NewExplainer выбирает провайдера: явно заданный, иначе huggingface при наличии токена, иначе шаблон
func NewExplainer(cfg ProviderConfig) (Explainer, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		if cfg.HFToken != "" {
			name = ProviderHuggingFace
		} else {
			name = ProviderTemplate
		}
	}

	switch name {
	case ProviderOllama:
		if cfg.OllamaURL == "" {
			return nil, fmt.Errorf("ollama provider requires OLLAMA_URL")
		}
		return NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.Timeout), nil
	case ProviderHuggingFace:
		if cfg.HFToken == "" {
			return nil, fmt.Errorf("huggingface provider requires HF_TOKEN")
		}
		return NewHuggingFaceClient(cfg.HFBaseURL, cfg.HFModel, cfg.HFToken, cfg.Timeout), nil
	case ProviderTemplate, "mock":
		return NewTemplateExplainer(), nil
	}
	return nil, fmt.Errorf("unknown explanation provider %q", cfg.Provider)
}
