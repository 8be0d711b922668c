package metrics

import (
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricsNamespace = "qaagent"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	suiteExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_executions_total",
		Help:      "Total number of orchestrated suite runs",
	}, []string{
		"test_type",
	})

	testsRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "tests_run_total",
		Help:      "Total number of tests executed",
	}, []string{
		"test_type",
	})

	testsByStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "tests_by_status_total",
		Help:      "Tests executed, partitioned by final status",
	}, []string{
		"test_type",
		"status",
	})

	suiteDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration_seconds",
		Help:      "Wall-clock duration of the most recent suite run",
	}, []string{
		"test_type",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	RecordError(label + "." + errToLabel(err))
}

// RecordSuite emits the counters and gauges for one completed suite run.
func RecordSuite(testType string, total, passed, failed, skipped, errored int, duration time.Duration) {
	suiteExecutionsTotal.WithLabelValues(testType).Inc()
	testsRunTotal.WithLabelValues(testType).Add(float64(total))
	testsByStatus.WithLabelValues(testType, "passed").Add(float64(passed))
	testsByStatus.WithLabelValues(testType, "failed").Add(float64(failed))
	testsByStatus.WithLabelValues(testType, "skipped").Add(float64(skipped))
	testsByStatus.WithLabelValues(testType, "error").Add(float64(errored))
	suiteDuration.WithLabelValues(testType).Set(duration.Seconds())
}
