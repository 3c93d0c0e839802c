package middleware

import (
	"net/http"
	"time"
)

// AccessLogger интерфейс журнала запросов
type AccessLogger interface {
	Debug(format string, v ...interface{})
}

// AccessLog пишет строку на каждый запрос с request_id; ставится после RequestID
func AccessLog(logger AccessLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debug("%s %s - status=%d, duration=%s, request_id=%s",
				r.Method, r.URL.Path, status, time.Since(started).Round(time.Millisecond), RequestIDFromContext(r.Context()))
		})
	}
}
