package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devfolio", Name: "contact_submissions_total", Help: "Contact form submissions by outcome (accepted, validation_failed, email_rejected, persistence_failed)."},
		[]string{"outcome"},
	)
	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devfolio", Name: "notification_failures_total", Help: "Notification email sends that failed, by kind (operator, autoreply)."},
		[]string{"kind"},
	)
	ChatbotRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devfolio", Name: "chatbot_requests_total", Help: "Chatbot requests by outcome (answered, canned, fallback)."},
		[]string{"outcome"},
	)
	ChatbotModelFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devfolio", Name: "chatbot_model_fallbacks_total", Help: "Times a model was skipped because the provider reported it unavailable."},
		[]string{"model"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContactSubmissions)
	reg.MustRegister(NotificationFailures)
	reg.MustRegister(ChatbotRequests)
	reg.MustRegister(ChatbotModelFallbacks)
}
