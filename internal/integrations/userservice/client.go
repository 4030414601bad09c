package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetResident получает профиль жителя по ID
func (c *Client) GetResident(ctx context.Context, userID int64) (*Resident, error) {
	url := fmt.Sprintf("%s/internal/residents/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrResidentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var resident Resident
	if err := json.NewDecoder(resp.Body).Decode(&resident); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &resident, nil
}

// GetResidentWithGracefulDegradation получает профиль жителя с graceful degradation.
// При недоступности UserService возвращает ErrServiceDegraded - бронь в этом случае
// создается без денормализованных данных о корпусе.
func (c *Client) GetResidentWithGracefulDegradation(ctx context.Context, userID int64) (*Resident, error) {
	c.log.Info("Fetching resident for user_id=%d", userID)

	resident, err := c.GetResident(ctx, userID)
	if err != nil {
		// Бизнес-ошибку "житель не найден" пробрасываем дальше
		if err == ErrResidentNotFound {
			c.log.Info("No resident found for user_id=%d", userID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched resident for user_id=%d, building=%s", userID, resident.Building)
	return resident, nil
}
