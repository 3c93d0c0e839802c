package googlecalendar

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CalendarScope права на чтение и запись событий
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// LoadServiceAccountKey возвращает JSON-ключ сервисного аккаунта
// Приоритет: ключ из переменной окружения (для облачного деплоя), затем файл (локальная разработка)
func LoadServiceAccountKey(inlineJSON, filePath string) ([]byte, error) {
	if key := strings.TrimSpace(inlineJSON); key != "" {
		return []byte(key), nil
	}

	if filePath == "" {
		return nil, fmt.Errorf("%w: neither GOOGLE_SERVICE_ACCOUNT_KEY nor a key file is configured", ErrInvalidCredentials)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key file %s: %v", ErrInvalidCredentials, filePath, err)
	}

	return data, nil
}

// NewServiceAccountHTTPClient создает HTTP-клиент, авторизованный JWT сервисного аккаунта
// Таймаут распространяется и на обмен токена, и на запросы к API
func NewServiceAccountHTTPClient(ctx context.Context, keyJSON []byte, timeout time.Duration) (*http.Client, error) {
	conf, err := google.JWTConfigFromJSON(keyJSON, CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	client := conf.Client(ctx)
	client.Timeout = timeout

	return client, nil
}
