package slotlock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReleaseFunc снимает захваченную блокировку
type ReleaseFunc func()

// Удаляем ключ только если он все еще принадлежит нам (мог истечь и быть захвачен заново)
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisLocker блокировка слотов между инстансами сервиса на Redis (SET NX PX)
// Сужает окно гонки между проверкой занятости и созданием события, но не устраняет его:
// источник истины остается внешний календарь
type RedisLocker struct {
	rdb    redis.Cmdable
	prefix string
	logger Logger
}

// NewRedisLocker создает блокировщик поверх клиента Redis
func NewRedisLocker(rdb redis.Cmdable, prefix string, logger Logger) *RedisLocker {
	if prefix == "" {
		prefix = "rageroom:slot"
	}
	return &RedisLocker{rdb: rdb, prefix: prefix, logger: logger}
}

// Acquire захватывает блокировку key на ttl
// ErrLocked - слот удерживается другим запросом, ErrUnavailable - Redis недоступен
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate token: %v", ErrUnavailable, err)
	}

	fullKey := l.prefix + ":" + key
	ok, err := l.rdb.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: key=%s", ErrLocked, key)
	}

	release := func() {
		// Запрос мог быть отменен клиентом, блокировку все равно снимаем
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.rdb, []string{fullKey}, token).Err(); err != nil && l.logger != nil {
			l.logger.Warn("SlotLock: failed to release key=%s: %v", fullKey, err)
		}
	}

	return release, nil
}

// NoopLocker используется, когда Redis не настроен
type NoopLocker struct{}

// Acquire всегда успешен
func (NoopLocker) Acquire(context.Context, string, time.Duration) (ReleaseFunc, error) {
	return func() {}, nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
