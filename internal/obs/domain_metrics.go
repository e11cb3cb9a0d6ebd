package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PromoApplyTotal counts promo code applications by outcome classification.
	PromoApplyTotal *prometheus.CounterVec
	// CartOpsTotal counts cart mutations by operation.
	CartOpsTotal *prometheus.CounterVec
	// CatalogQueryTotal counts pipeline runs by outcome (ok vs fallback).
	CatalogQueryTotal *prometheus.CounterVec
	// CheckoutTotal counts checkout attempts by result.
	CheckoutTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PromoApplyTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_apply_total",
			Help:      "Count of promo code applications by outcome.",
		}, []string{"outcome"}))
		CartOpsTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_ops_total",
			Help:      "Count of cart operations by type.",
		}, []string{"op"}))
		CatalogQueryTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_query_total",
			Help:      "Count of catalog pipeline runs by outcome.",
		}, []string{"outcome"}))
		CheckoutTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout attempts by result.",
		}, []string{"result"}))
	})
}
