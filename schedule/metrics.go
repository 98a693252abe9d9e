package schedule

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK             = "ok"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
)

var (
	fetchCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_fetch_total",
		Help: "Number of schedule page fetches by direction and outcome",
	}, []string{"direction", "outcome"})
	skippedSegments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_segments_skipped_total",
		Help: "Number of schedule segments dropped because of missing or broken markup",
	}, []string{"direction"})
	fetchDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "schedule_fetch_seconds",
		Help: "Time spent downloading a schedule page",
	}, []string{"direction"})
)

func init() {
	prometheus.MustRegister(fetchCount, skippedSegments, fetchDuration)
}
