package guestservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент справочника гостей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника гостей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetGuest получает карточку гостя
func (c *Client) GetGuest(ctx context.Context, guestID int64) (*Guest, error) {
	url := fmt.Sprintf("%s/internal/guests/%d", c.baseURL, guestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid guest ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrGuestNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var guest Guest
	if err := json.NewDecoder(resp.Body).Decode(&guest); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &guest, nil
}

// GetGuestWithGracefulDegradation получает гостя с graceful degradation.
// Неизвестный гость - ErrGuestNotFound; при недоступности справочника возвращается
// ErrServiceDegraded, и бронирование создаётся без денормализованного имени.
func (c *Client) GetGuestWithGracefulDegradation(ctx context.Context, guestID int64) (*Guest, error) {
	c.log.Info("Fetching guest id=%d", guestID)

	guest, err := c.GetGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			c.log.Info("Guest id=%d not found", guestID)
			return nil, err
		}

		c.log.Error("GuestService unavailable, applying graceful degradation for guest id=%d: %v", guestID, err)
		return nil, fmt.Errorf("%w: guest_id=%d, error=%v", ErrServiceDegraded, guestID, err)
	}

	c.log.Info("Successfully fetched guest id=%d", guestID)
	return guest, nil
}
