// Package metrics регистрирует счетчики Prometheus для операций
// аутентификации. Сами метрики отдаются через /metrics (promhttp).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts — попытки входа с меткой результата:
	// success, invalid_credentials, error.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Number of login attempts by result.",
	}, []string{"result"})

	// SessionsCreated — количество созданных сессий.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_sessions_created_total",
		Help: "Number of sessions created.",
	})

	// SessionsRevoked — количество отозванных сессий (logout).
	SessionsRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_sessions_revoked_total",
		Help: "Number of sessions revoked.",
	})
)
