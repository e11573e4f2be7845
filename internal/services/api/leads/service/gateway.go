package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"firstvibe/internal/core/leadform"
	perr "firstvibe/internal/platform/errors"
	pnet "firstvibe/internal/platform/net"
)

// Webhook posts each submission as JSON to a fixed URL
// any transport error or non 2xx status is a failed dispatch
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook returns a webhook gateway, timeout bounds the whole exchange
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{url: url, client: &http.Client{Timeout: timeout}}
}

// Submit implements leadform.Gateway
func (w *Webhook) Submit(ctx context.Context, s leadform.FullSubmission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, leadform.MsgUnknownFailure)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, leadform.MsgUnknownFailure)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := pnet.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, leadform.ErrServer.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return perr.Wrap(fmt.Errorf("webhook status %d", resp.StatusCode), perr.ErrorCodeUnavailable, leadform.ErrServer.Error())
	}
	return nil
}
