package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshfs-monitor/internal/config"
	"sshfs-monitor/internal/model"
)

// newTestReport builds a finalized report with one mounted and one failed host.
func newTestReport() *model.CycleReport {
	start := time.Now().Add(-3 * time.Second)
	report := model.NewCycleReport(start)
	report.Hosts = []*model.HostResult{
		{
			Entry:  model.HostEntry{Address: "10.0.0.1"},
			Probe:  model.ProbeOutcome{Reachable: true},
			Action: model.ActionMounted,
		},
		{
			Entry:  model.HostEntry{Address: "10.0.0.2"},
			Probe:  model.ProbeOutcome{Reachable: true},
			Action: model.ActionMountFailed,
			Error:  "failed to mount root@10.0.0.2:/root/: exit status 1",
		},
	}
	report.Finalize(time.Now())
	return report
}

func newTestWebhook(url string) *Webhook {
	cfg := &config.NotifyConfig{
		Enabled:    true,
		WebhookURL: url,
		Timeout:    5 * time.Second,
		Retry:      config.RetryConfig{MaxRetries: 0, BaseDelay: time.Millisecond},
	}
	return NewWebhook(cfg, zerolog.Nop())
}

func TestNotifyCycle_Success(t *testing.T) {
	var received payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := newTestWebhook(server.URL)
	err := webhook.NotifyCycle(context.Background(), newTestReport())

	require.NoError(t, err)
	assert.Equal(t, "sshfs-monitor", received.Source)
	require.NotNil(t, received.Summary)
	assert.Equal(t, 2, received.Summary.TotalHosts)
	assert.Equal(t, 1, received.Summary.MountFailures)

	// Only the failed host appears in the failure list
	require.Len(t, received.Failures, 1)
	assert.Equal(t, "10.0.0.2", received.Failures[0].Address)
	assert.Equal(t, string(model.ActionMountFailed), received.Failures[0].Action)
	assert.NotEmpty(t, received.Failures[0].Error)
}

func TestNotifyCycle_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	webhook := newTestWebhook(server.URL)
	err := webhook.NotifyCycle(context.Background(), newTestReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestNotifyCycle_RetriesOn5xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.NotifyConfig{
		Enabled:    true,
		WebhookURL: server.URL,
		Timeout:    5 * time.Second,
		Retry:      config.RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond},
	}
	webhook := NewWebhook(cfg, zerolog.Nop())

	err := webhook.NotifyCycle(context.Background(), newTestReport())

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestNotifyCycle_ConnectionFailure(t *testing.T) {
	// A server that is already closed refuses connections
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	webhook := newTestWebhook(server.URL)
	err := webhook.NotifyCycle(context.Background(), newTestReport())

	require.Error(t, err)
}

func TestRetryCondition(t *testing.T) {
	assert.True(t, retryCondition(nil, assert.AnError))
	assert.False(t, retryCondition(nil, nil))
}
