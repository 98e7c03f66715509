package metrics

import "github.com/prometheus/client_golang/prometheus"

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

// 网关调用维度：按操作和结果分类，方便定位是哪类域名操作在报错
var GatewayRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "domain_gateway_requests_total",
		Help: "Total number of outbound Domain Gateway calls",
	},
	[]string{"operation", "outcome"},
)

var GatewayRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "domain_gateway_request_duration_seconds",
		Help:    "Duration of outbound Domain Gateway calls",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"},
)

var ThemeFallbacksTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "theme_fallbacks_total",
		Help: "Times an unknown/broken theme fell back to the default component set",
	},
)

// Register 注册所有采集器
func Register() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		HttpErrorsTotal,
		GatewayRequestsTotal,
		GatewayRequestDuration,
		ThemeFallbacksTotal,
	)
}
