package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/revenue-command-center/internal/metrics"
)

// Instrument registra contagem e duração das requisições de uma rota. O rótulo route
// é o padrão registrado no router, nunca o caminho com parâmetros.
func Instrument(m *metrics.Metrics, method, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(lrw.statusCode)).Inc()
		})
	}
}
