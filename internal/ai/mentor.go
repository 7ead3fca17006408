package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

type MentorConfig struct {
	MockMode  bool          // только шаблоны, сеть не трогаем
	Retries   uint64        // повторы после первой попытки
	RetryBase time.Duration // начальная пауза экспоненциального backoff
	Timeout   time.Duration // на все попытки вместе
}

// Mentor фасад слоя объяснений: основной провайдер с повторами, при любой ошибке шаблон
type Mentor struct {
	primary  Explainer
	fallback *TemplateExplainer
	cfg      MentorConfig
	logger   *slog.Logger
}

func NewMentor(primary Explainer, cfg MentorConfig, logger *slog.Logger) *Mentor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if _, isTemplate := primary.(*TemplateExplainer); isTemplate {
		primary = nil
	}
	return &Mentor{
		primary:  primary,
		fallback: NewTemplateExplainer(),
		cfg:      cfg,
		logger:   logger,
	}
}

// Provider имя провайдера, который будет спрошен первым
func (m *Mentor) Provider() string {
	if m.cfg.MockMode || m.primary == nil {
		return m.fallback.Name()
	}
	return m.primary.Name()
}

// Explain всегда возвращает текст и имя провайдера, который его дал
func (m *Mentor) Explain(ctx context.Context, c Context) (string, string) {
	if c.Result == nil {
		return "", m.fallback.Name()
	}
	if m.cfg.MockMode || m.primary == nil {
		return m.fallback.Render(c), m.fallback.Name()
	}

	text, err := m.explainWithRetry(ctx, c)
	if err == nil {
		return text, m.primary.Name()
	}

	m.logger.Warn("explanation provider failed, using template",
		"provider", m.primary.Name(),
		"verdict", c.Result.Verdict,
		"error", err,
	)
	return m.fallback.Render(c), m.fallback.Name()
}

func (m *Mentor) explainWithRetry(ctx context.Context, c Context) (string, error) {
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	backoff := retry.WithMaxRetries(m.cfg.Retries, retry.NewExponential(m.cfg.RetryBase))

	var text string
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		out, err := m.primary.Explain(ctx, c)
		if err != nil {
			if retryable(err) {
				m.logger.Debug("explanation attempt failed", "provider", m.primary.Name(), "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		text = strings.TrimSpace(out)
		if text == "" {
			return retry.RetryableError(fmt.Errorf("%w: %s: empty text", ErrExplanationUnavailable, m.primary.Name()))
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrExplanationUnavailable) {
			err = fmt.Errorf("%w: %v", ErrExplanationUnavailable, err)
		}
		return "", err
	}
	return text, nil
}

// retryable ответы 4xx (кроме 429) и отмена контекста не повторяются
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
