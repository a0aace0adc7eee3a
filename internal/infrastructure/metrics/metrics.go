// Package metrics define y registra las métricas Prometheus de la API.
// Las variables se registran en el registry por defecto al importar el paquete (promauto).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bluevelvet"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal cuenta peticiones atendidas.
// Labels:
//   - method: verbo HTTP
//   - route: patrón de ruta registrado en Fiber (p. ej. "/api/categories/:id")
//   - status: código HTTP de la respuesta
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP atendidas.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration mide la latencia por ruta.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Dominio ───────────────────────────────────────────────────────────────────

// AuthAttemptsTotal cuenta registros y logins.
// Labels:
//   - operation: "register" | "login"
//   - result: "ok" o el código de error devuelto (p. ej. "INVALID_CREDENTIALS")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Intentos de registro y login por resultado.",
	},
	[]string{"operation", "result"},
)

// CategoryMutationsTotal cuenta mutaciones del catálogo.
// Labels:
//   - operation: "create" | "update" | "delete" | "reset"
//   - result: "ok" o el código de error
var CategoryMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_mutations_total",
		Help:      "Mutaciones del catálogo de categorías por resultado.",
	},
	[]string{"operation", "result"},
)

// CategoryExportsTotal cuenta exportaciones por formato.
var CategoryExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_exports_total",
		Help:      "Exportaciones de categorías generadas, por formato.",
	},
	[]string{"format"},
)
