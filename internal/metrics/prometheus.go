package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type prometheusObserver struct {
	evaluations *prometheus.CounterVec
	lookupMiss  prometheus.Counter
}

var (
	evaluationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loyaltyflow_evaluations_total",
		Help: "Campaign type qualification decisions by type and outcome",
	}, []string{"campaign_type", "outcome"})
	lookupMissCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyaltyflow_lookup_miss_total",
		Help: "Lookups of unknown campaign types",
	})
)

func NewPrometheusObserver() EvaluationObserver {
	return &prometheusObserver{
		evaluations: evaluationCounter,
		lookupMiss:  lookupMissCounter,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (p *prometheusObserver) RecordEvaluation(campaignType string, outcome string) {
	p.evaluations.WithLabelValues(campaignType, outcome).Inc()
}

func (p *prometheusObserver) RecordLookupMiss() {
	p.lookupMiss.Inc()
}
