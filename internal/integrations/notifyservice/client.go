package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendEvent отправляет событие уведомления
func (c *Client) SendEvent(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// SendEventBestEffort отправляет событие и только логирует ошибку.
// Уведомления не должны ломать основной сценарий бронирования.
func (c *Client) SendEventBestEffort(ctx context.Context, event Event) {
	if err := c.SendEvent(ctx, event); err != nil {
		c.log.Error("NotifyService send failed for reservation_id=%d, event=%s: %v",
			event.ReservationID, event.Type, err)
		return
	}

	c.log.Info("Notification sent: reservation_id=%d, event=%s", event.ReservationID, event.Type)
}
