package metrics

import "time"

// Send kinds used as the EmailSendDuration label.
const (
	KindReport = "report"
	KindRetry  = "retry"
	KindTest   = "test"
)

// EmailSent records a delivery accepted by the SMTP server.
func EmailSent(kind string, duration time.Duration) {
	EmailSendsTotal.WithLabelValues("sent").Inc()
	EmailSendDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// EmailFailed records a delivery the SMTP server or network rejected.
func EmailFailed(kind string, duration time.Duration) {
	EmailSendsTotal.WithLabelValues("failed").Inc()
	EmailSendDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// ReportDispatched counts one processed send request.
func ReportDispatched() {
	ReportsDispatched.Inc()
}

// ConfigTested records the outcome of an SMTP configuration test.
func ConfigTested(ok bool) {
	result := "failed"
	if ok {
		result = "success"
	}
	EmailConfigTests.WithLabelValues(result).Inc()
}
