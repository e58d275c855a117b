// Package metrics expõe as métricas Prometheus da sincronização de receita
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "revenue_sync"

type syncMetrics struct {
	runsTotal    *prometheus.CounterVec
	rowsWritten  *prometheus.CounterVec
	rowsSkipped  *prometheus.CounterVec
	clientsTotal *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *syncMetrics {
	return &syncMetrics{
		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total de execuções de sincronização por modo e resultado.",
		}, []string{"mode", "result"}),
		rowsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Total de linhas gravadas na tabela daily_revenue.",
		}, []string{"mode"}),
		rowsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Total de linhas da planilha ignoradas, por motivo.",
		}, []string{"reason"}),
		clientsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clients_total",
			Help:      "Clientes inseridos, renomeados ou com falha na reconciliação.",
		}, []string{"action"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Duração das execuções de sincronização.",
			Buckets:   []float64{1, 2, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"mode"}),
	}
})

func get() *syncMetrics {
	return metricsSingleton()
}

// ObserveRun registra o resultado ("success", "up_to_date" ou "error") e a duração de uma execução
func ObserveRun(mode, result string, elapsed time.Duration) {
	m := get()
	m.runsTotal.WithLabelValues(mode, result).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func AddRowsWritten(mode string, n int) {
	if n <= 0 {
		return
	}
	get().rowsWritten.WithLabelValues(mode).Add(float64(n))
}

func IncRowsSkipped(reason string) {
	get().rowsSkipped.WithLabelValues(reason).Inc()
}

func AddRowsSkipped(reason string, n int) {
	if n <= 0 {
		return
	}
	get().rowsSkipped.WithLabelValues(reason).Add(float64(n))
}

// AddClients registra clientes por ação: "inserted", "renamed" ou "failed"
func AddClients(action string, n int) {
	if n <= 0 {
		return
	}
	get().clientsTotal.WithLabelValues(action).Add(float64(n))
}
