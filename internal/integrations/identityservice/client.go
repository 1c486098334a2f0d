package identityservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с IdentityService
// IdentityService внешний поставщик идентичности: отдаёт {email, name, role}
// текущего пользователя; роль admin открывает административные операции
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента IdentityService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по email
func (c *Client) GetUser(ctx context.Context, email string) (*User, error) {
	reqURL := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetUserWithGracefulDegradation получает пользователя с graceful degradation
// При недоступности IdentityService возвращает ErrServiceDegraded: вызывающая
// сторона решает, можно ли продолжить без подтверждённой роли
func (c *Client) GetUserWithGracefulDegradation(ctx context.Context, email string) (*User, error) {
	c.log.Info("Fetching identity for email=%s", email)

	user, err := c.GetUser(ctx, email)
	if err != nil {
		// Критичная бизнес-ошибка (пользователь не найден) пробрасывается дальше
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("No identity found for email=%s", email)
			return nil, err
		}

		// Для остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("IdentityService unavailable, applying graceful degradation for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: email=%s, error=%v", ErrServiceDegraded, email, err)
	}

	c.log.Info("Successfully fetched identity for email=%s, role=%s", email, user.Role)
	return user, nil
}
