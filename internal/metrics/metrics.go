package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "platform_api_requests_total",
			Help:      "Platform API calls by resource, operation and outcome.",
		},
		[]string{"resource", "operation", "outcome"},
	)

	formSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "form_submissions_total",
			Help:      "Form submissions by form name and outcome.",
		},
		[]string{"form", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, formSubmissions)
	})
}

// IncAPIRequest increments the platform API call counter.
func IncAPIRequest(resource, operation, outcome string) {
	apiRequests.WithLabelValues(resource, operation, outcome).Inc()
}

// IncFormSubmission increments the form submission counter.
func IncFormSubmission(form, outcome string) {
	formSubmissions.WithLabelValues(form, outcome).Inc()
}
