package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the prometheus registry exposed on /api/metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Custom histogram buckets optimized for API response times ranging from milliseconds to 30+ seconds
	// Covers fast document-store round-trips as well as slow model inference calls
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Document Store Client Metrics
	StoreRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"collection", "operation", "status"},
	)

	StoreRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of document store operations",
		},
		[]string{"collection", "operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Media Storage Client Metrics
	MediaStorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	MediaStorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Generative Model Client Metrics
	GenAIRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genai_client_request_duration_seconds",
			Help:    "Generative model request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"flow", "status"},
	)

	GenAIRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_client_request_total",
			Help: "Total number of generative model requests",
		},
		[]string{"flow", "status"},
	)

	GenAIToolInvocations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_tool_invocations_total",
			Help: "Total number of tool callbacks invoked by the model",
		},
		[]string{"tool", "status"},
	)

	// Business Metrics
	MentorshipRequestsCreated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_mentorship_requests_created_total",
			Help: "Total number of mentorship requests created",
		},
		[]string{"status"},
	)

	MentorshipStatusUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_mentorship_status_updates_total",
			Help: "Total number of mentorship request status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	PostLikeToggles = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_post_like_toggles_total",
			Help: "Total number of post like toggles",
		},
		[]string{"action"}, // liked / unliked
	)

	CommentsAdded = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_comments_added_total",
			Help: "Total number of comments added",
		},
		[]string{"target"}, // post / discussion
	)

	ChatMessagesSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_chat_messages_sent_total",
			Help: "Total number of chat messages sent",
		},
		[]string{"status"},
	)

	AvatarUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_avatar_uploads_total",
			Help: "Total number of avatar uploads",
		},
		[]string{"status"},
	)

	AssistantQuestions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorconnect_assistant_questions_total",
			Help: "Total number of FAQ assistant questions",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
