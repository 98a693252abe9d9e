package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var requestDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
	Name: "http_request_seconds",
	Help: "Time spent serving HTTP requests",
}, []string{"route"})

func init() {
	prometheus.MustRegister(requestDuration)
}

// RequestMetrics observes how long each matched route takes
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
