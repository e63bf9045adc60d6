// Package notify pushes cycle summaries to an external webhook.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"sshfs-monitor/internal/config"
	"sshfs-monitor/internal/model"
)

// payload is the JSON body posted after each reconciliation cycle.
type payload struct {
	Source     string              `json:"source"`      // 固定为 sshfs-monitor
	StartedAt  time.Time           `json:"started_at"`  // 周期开始
	FinishedAt time.Time           `json:"finished_at"` // 周期结束
	DurationMS int64               `json:"duration_ms"` // 周期耗时（毫秒）
	Summary    *model.CycleSummary `json:"summary"`     // 汇总
	Failures   []hostFailure       `json:"failures,omitempty"`
}

// hostFailure describes one host that did not end the cycle mounted.
type hostFailure struct {
	Address string `json:"address"`
	Action  string `json:"action"`
	Error   string `json:"error,omitempty"`
}

// Webhook posts cycle summaries to a configured URL.
type Webhook struct {
	url        string
	httpClient *resty.Client
	logger     zerolog.Logger
}

// NewWebhook creates a webhook notifier from config.
func NewWebhook(cfg *config.NotifyConfig, logger zerolog.Logger) *Webhook {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	retry := cfg.Retry
	if retry.MaxRetries == 0 && retry.BaseDelay == 0 {
		retry = config.RetryConfig{MaxRetries: 3, BaseDelay: 1 * time.Second}
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(retry.MaxRetries).
		SetRetryWaitTime(retry.BaseDelay).
		SetRetryMaxWaitTime(retry.BaseDelay * 8). // Max wait time for exponential backoff
		AddRetryCondition(retryCondition)

	return &Webhook{
		url:        cfg.WebhookURL,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "webhook").Logger(),
	}
}

// retryCondition determines whether a request should be retried.
// Only retry on timeout, 5xx errors, or connection failures.
// Do not retry on 4xx errors.
func retryCondition(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp != nil && resp.StatusCode() >= 500 {
		return true
	}
	return false
}

// NotifyCycle posts the cycle report summary. A delivery failure is returned
// to the caller for logging but never affects reconciliation.
func (w *Webhook) NotifyCycle(ctx context.Context, report *model.CycleReport) error {
	body := payload{
		Source:     "sshfs-monitor",
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		DurationMS: report.Duration.Milliseconds(),
		Summary:    report.Summary,
	}

	for _, host := range report.Hosts {
		if host == nil || host.Mounted() {
			continue
		}
		body.Failures = append(body.Failures, hostFailure{
			Address: host.Entry.Address,
			Action:  string(host.Action),
			Error:   host.Error,
		})
	}

	resp, err := w.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(w.url)
	if err != nil {
		w.logger.Warn().Err(err).Msg("failed to deliver cycle summary")
		return fmt.Errorf("failed to deliver cycle summary: %w", err)
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		w.logger.Warn().Int("status_code", resp.StatusCode()).Msg("webhook returned non-2xx status")
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	w.logger.Debug().Int("status_code", resp.StatusCode()).Msg("cycle summary delivered")
	return nil
}
