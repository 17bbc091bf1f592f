package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notification is the payload POSTed on every terminal job transition.
type Notification struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	FilePath string `json:"file_path,omitempty"`
}

// Notifier announces finished report jobs. Delivery is best effort and never
// affects the job record.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NopNotifier is used when no webhook is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, n Notification) {}

// WebhookNotifier delivers notifications over HTTP.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

var _ Notifier = (*WebhookNotifier)(nil)

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) {
	resp, err := w.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		Post(w.url)
	if err != nil {
		w.logger.Warn("Failed to deliver report webhook",
			zap.String("report_id", n.ReportID),
			zap.Error(err),
		)
		return
	}
	if resp.IsError() {
		w.logger.Warn("Report webhook returned an error status",
			zap.String("report_id", n.ReportID),
			zap.Int("status_code", resp.StatusCode()),
		)
		return
	}

	w.logger.Debug("Delivered report webhook",
		zap.String("report_id", n.ReportID),
		zap.String("status", n.Status),
	)
}
