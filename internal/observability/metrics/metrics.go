package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voucher"

// Result labels.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultValid    = "valid"
	ResultInvalid  = "invalid"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	claims             *prometheus.CounterVec
	redemptions        *prometheus.CounterVec
	scans              *prometheus.CounterVec
	tokenVerifications *prometheus.CounterVec
	tokensIssued       prometheus.Counter
	effectFailures     *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
}

func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_total",
			Help:      "Claim attempts by result.",
		}, []string{"result"}),
		redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redemptions_total",
			Help:      "Redemption attempts by result.",
		}, []string{"result"}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Recorded scans by source and type.",
		}, []string{"source", "type"}),
		tokenVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Token verifications by outcome.",
		}, []string{"result"}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Signed voucher tokens issued.",
		}),
		effectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "noncritical_effect_failures_total",
			Help:      "Failures of best-effort side effects by effect name.",
		}, []string{"effect"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Voucher cache lookups by outcome.",
		}, []string{"result"}),
	}

	registerer.MustRegister(
		m.claims,
		m.redemptions,
		m.scans,
		m.tokenVerifications,
		m.tokensIssued,
		m.effectFailures,
		m.cacheLookups,
	)
	return m
}

// NewNop returns metrics bound to a private registry, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveClaim(result string) {
	m.claims.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRedemption(result string) {
	m.redemptions.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveScan(source, scanType string) {
	m.scans.WithLabelValues(source, scanType).Inc()
}

func (m *Metrics) ObserveTokenVerification(valid bool) {
	if valid {
		m.tokenVerifications.WithLabelValues(ResultValid).Inc()
		return
	}
	m.tokenVerifications.WithLabelValues(ResultInvalid).Inc()
}

func (m *Metrics) AddTokensIssued(n int) {
	m.tokensIssued.Add(float64(n))
}

func (m *Metrics) ObserveEffectFailure(effect string) {
	m.effectFailures.WithLabelValues(effect).Inc()
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// EffectFailures exposes the counter for assertions.
func (m *Metrics) EffectFailures() *prometheus.CounterVec {
	return m.effectFailures
}

func (m *Metrics) Redemptions() *prometheus.CounterVec {
	return m.redemptions
}

func (m *Metrics) Claims() *prometheus.CounterVec {
	return m.claims
}

func (m *Metrics) TokensIssued() prometheus.Counter {
	return m.tokensIssued
}

func (m *Metrics) CacheLookups() *prometheus.CounterVec {
	return m.cacheLookups
}
