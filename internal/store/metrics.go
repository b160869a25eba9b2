package store

import "github.com/prometheus/client_golang/prometheus"

var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "store_operations_total", Help: "Count of entity store operations"},
	[]string{"entity", "op", "result"},
)

func init() { prometheus.MustRegister(opsTotal) }

func observe(entity, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	opsTotal.WithLabelValues(entity, op, result).Inc()
}
