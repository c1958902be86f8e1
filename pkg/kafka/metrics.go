package kafka

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	producerMsgsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fincompare",
			Subsystem: "kafka_producer",
			Name:      "messages_total",
			Help:      "Total messages published to Kafka",
		},
		[]string{"topic", "result"},
	)
	producerBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fincompare",
			Subsystem: "kafka_producer",
			Name:      "bytes_total",
			Help:      "Total payload bytes published",
		},
		[]string{"topic"},
	)
	producerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fincompare",
			Subsystem: "kafka_producer",
			Name:      "publish_seconds",
			Help:      "Publish latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic"},
	)

	consumerQueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fincompare",
			Subsystem: "kafka_consumer",
			Name:      "queue_depth",
			Help:      "Number of messages waiting in consumer queue",
		},
		[]string{"topic"},
	)
	consumerHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fincompare",
			Subsystem: "kafka_consumer",
			Name:      "messages_total",
			Help:      "Messages handled by result (ok, dlq, dropped)",
		},
		[]string{"topic", "result"},
	)
	consumerHandleLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fincompare",
			Subsystem: "kafka_consumer",
			Name:      "handle_seconds",
			Help:      "Handling time per message, retries included",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic"},
	)

	registerOnce sync.Once
)

// RegisterMetrics registers producer and consumer metrics on reg once.
// A nil reg uses the default registerer.
func RegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		reg.MustRegister(
			producerMsgsTotal, producerBytesTotal, producerLatency,
			consumerQueueDepth, consumerHandled, consumerHandleLatency,
		)
	})
}

func observePublish(topic string, bytes int, dur time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	producerMsgsTotal.WithLabelValues(topic, result).Inc()
	producerBytesTotal.WithLabelValues(topic).Add(float64(bytes))
	producerLatency.WithLabelValues(topic).Observe(dur.Seconds())
}
