package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Notifier delivers a rendered message to a recipient address and reports
// the remote service's delivery status and timestamp.
type Notifier interface {
	Send(ctx context.Context, to, body string) (status string, sentTime time.Time, err error)
}

// EmailNotifier calls the external email API over HTTP.
type EmailNotifier struct {
	baseURL string
	client  *http.Client
}

func NewEmailNotifier(baseURL string, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type sendEmailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type sendEmailResponse struct {
	Status   string    `json:"status"`
	SentTime time.Time `json:"sentTime"`
}

func (n *EmailNotifier) Send(ctx context.Context, to, body string) (string, time.Time, error) {
	payload, err := json.Marshal(sendEmailRequest{Email: to, Message: body})
	if err != nil {
		return "", time.Time{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/send-email", bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", time.Time{}, fmt.Errorf("email service returned %d", resp.StatusCode)
	}

	var out sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", time.Time{}, fmt.Errorf("decode email service response: %w", err)
	}
	if out.SentTime.IsZero() {
		out.SentTime = time.Now()
	}
	return out.Status, out.SentTime, nil
}
