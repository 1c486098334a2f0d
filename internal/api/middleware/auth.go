package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HeaderUserEmail заголовок, через который шлюз передает email пользователя
const HeaderUserEmail = "X-User-Email"

type contextKey string

const userEmailKey contextKey = "userEmail"

// Auth извлекает email пользователя из заголовка и кладет его в контекст
// Проверка подлинности выполняется на шлюзе, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderUserEmail))
		if email != "" {
			ctx := context.WithValue(r.Context(), userEmailKey, email)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserEmail возвращает email пользователя из контекста
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok && email != ""
}
