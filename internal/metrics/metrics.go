package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireboard_errors_total",
			Help: "Total number of logged errors by type.",
		},
		[]string{"type"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hireboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hireboard_applications_submitted_total",
			Help: "Total number of submitted applications.",
		},
	)
	ApplicationStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireboard_application_status_changes_total",
			Help: "Application status updates by new status.",
		},
		[]string{"status"},
	)
	NotificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireboard_notifications_created_total",
			Help: "Persisted notifications by type.",
		},
		[]string{"type"},
	)
	EmailsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireboard_emails_dispatched_total",
			Help: "Emails handed to the dispatcher by template and result.",
		},
		[]string{"template", "result"},
	)
	InterviewRemindersSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hireboard_interview_reminders_sent_total",
			Help: "Total number of interview reminders emitted.",
		},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ApplicationsSubmitted)
		prometheus.MustRegister(ApplicationStatusChanges)
		prometheus.MustRegister(NotificationsCreated)
		prometheus.MustRegister(EmailsDispatched)
		prometheus.MustRegister(InterviewRemindersSent)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
