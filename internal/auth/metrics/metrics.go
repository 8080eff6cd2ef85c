// Package metrics collects and exposes Prometheus metrics for the auth
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts the things operators page on: sign-in outcomes, tokens
// issued and revoked, challenge emails, and deny-list lookups.
type Collector struct {
	signInSuccess  prometheus.Counter
	signInFail     *prometheus.CounterVec
	tokensIssued   *prometheus.CounterVec
	signOuts       prometheus.Counter
	challengesSent *prometheus.CounterVec
	revocationHits prometheus.Counter
	cacheErrors    prometheus.Counter
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signInSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sign_in_success_total",
			Help: "Successful sign-ins.",
		}),
		signInFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_sign_in_fail_total",
			Help: "Failed sign-ins by reason.",
		}, []string{"reason"}),
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Token pairs issued by flow (sign_in, refresh, oauth).",
		}, []string{"flow"}),
		signOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sign_outs_total",
			Help: "Completed sign-outs.",
		}),
		challengesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_challenges_sent_total",
			Help: "Challenge emails sent by purpose.",
		}, []string{"purpose"}),
		revocationHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_revocation_hits_total",
			Help: "Requests rejected because the token matched the deny-list.",
		}),
		cacheErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_cache_errors_total",
			Help: "Deny-list lookups that failed and were treated as revoked.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auth_http_request_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.signInSuccess,
		c.signInFail,
		c.tokensIssued,
		c.signOuts,
		c.challengesSent,
		c.revocationHits,
		c.cacheErrors,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

func (c *Collector) RecordSignInSuccess() { c.signInSuccess.Inc() }

func (c *Collector) RecordSignInFailure(reason string) {
	c.signInFail.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordTokensIssued(flow string) {
	c.tokensIssued.WithLabelValues(flow).Inc()
}

func (c *Collector) RecordSignOut() { c.signOuts.Inc() }

func (c *Collector) RecordChallengeSent(purpose string) {
	c.challengesSent.WithLabelValues(purpose).Inc()
}

func (c *Collector) RecordRevocationHit() { c.revocationHits.Inc() }

func (c *Collector) RecordCacheError() { c.cacheErrors.Inc() }

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// Handler returns the Prometheus scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
