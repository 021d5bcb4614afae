package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService.
// Ядро отдаёт только события смены состояния; тексты писем и сообщений
// формирует сам NotifyService.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService.
// Пустой baseURL отключает отправку (события только логируются).
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled сообщает, настроена ли отправка уведомлений
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Send отправляет событие жизненного цикла в NotifyService.
// Вызывающий код рассматривает отправку как fire-and-forget: ошибка
// логируется и не откатывает уже закоммиченную операцию.
func (c *Client) Send(ctx context.Context, event domain.Event) error {
	if !c.Enabled() {
		c.log.Info("notifyservice disabled, skipping event %s for booking %s", event.Type, event.BookingReference)
		return nil
	}

	payload, err := json.Marshal(eventPayload{
		Type:             string(event.Type),
		BookingReference: event.BookingReference,
		UserID:           event.UserID,
		TourID:           event.TourID,
		TransactionID:    event.TransactionID,
		OccurredAt:       event.OccurredAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %w", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

type eventPayload struct {
	Type             string  `json:"type"`
	BookingReference string  `json:"bookingReference"`
	UserID           int64   `json:"userId"`
	TourID           int64   `json:"tourId"`
	TransactionID    *string `json:"transactionId,omitempty"`
	OccurredAt       string  `json:"occurredAt"`
}
