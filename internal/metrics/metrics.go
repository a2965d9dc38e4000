// Package metrics registra as métricas Prometheus do serviço
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CohortSize          *prometheus.GaugeVec
	SourceFailuresTotal *prometheus.CounterVec
	ContractViolations  *prometheus.CounterVec

	PulseLatency  prometheus.Gauge
	PulseUnstable prometheus.Gauge
}

// New registra as métricas uma única vez no registry padrão.
//
// Métricas:
//   - revenue_http_requests_total{method,route,status}
//   - revenue_http_request_duration_seconds{method,route}
//   - revenue_cohort_size{cohort}
//   - revenue_source_failures_total{source,operation}
//   - revenue_contract_violations_total{source}
//   - revenue_pulse_latency_ms
//   - revenue_pulse_unstable
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "revenue_http_requests_total",
					Help: "Total de requisições HTTP atendidas",
				},
				[]string{"method", "route", "status"},
			),

			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "revenue_http_request_duration_seconds",
					Help:    "Duração das requisições HTTP em segundos",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~2s
				},
				[]string{"method", "route"},
			),

			CohortSize: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "revenue_cohort_size",
					Help: "Quantidade de clientes por coorte na última leitura do painel",
				},
				[]string{"cohort"},
			),

			SourceFailuresTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "revenue_source_failures_total",
					Help: "Falhas ao buscar dados na fonte configurada",
				},
				[]string{"source", "operation"},
			),

			ContractViolations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "revenue_contract_violations_total",
					Help: "Registros recebidos da fonte que violam o contrato de dados",
				},
				[]string{"source"},
			),

			PulseLatency: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "revenue_pulse_latency_ms",
					Help: "Última latência amostrada pelo monitor de pulso",
				},
			),

			PulseUnstable: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "revenue_pulse_unstable",
					Help: "1 quando a última amostra ultrapassou o limite de estabilidade",
				},
			),
		}
	})
	return globalMetrics
}
