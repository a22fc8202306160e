package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderCustomerID заголовок с идентификатором клиента (для черного списка)
	HeaderCustomerID = "X-Customer-ID"

	// HeaderRequestID заголовок с идентификатором запроса
	HeaderRequestID = "X-Request-ID"
)

type contextKey string

const (
	customerIDKey contextKey = "customer_id"
	requestIDKey  contextKey = "request_id"
)

// CustomerID переносит необязательный заголовок X-Customer-ID в контекст
func CustomerID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(HeaderCustomerID)); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), customerIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// CustomerIDFromContext возвращает ID клиента или пустую строку
func CustomerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(customerIDKey).(string)
	return id
}

// RequestID присваивает запросу идентификатор (берет из заголовка или генерирует)
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestIDFromContext возвращает идентификатор запроса
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
