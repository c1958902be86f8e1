package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	pkgkafka "FinCompare/pkg/kafka"
)

// SnapshotIngestHandler consumes snapshot batches and replaces the stored
// list for each batch's (symbol, period).
type SnapshotIngestHandler struct {
	topic   string
	store   drepo.SnapshotStore
	metrics drepo.Metrics
}

func NewSnapshotIngestHandler(topic string, store drepo.SnapshotStore, metrics drepo.Metrics) *SnapshotIngestHandler {
	return &SnapshotIngestHandler{topic: topic, store: store, metrics: metrics}
}

func (h *SnapshotIngestHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, period, snapshots:[...]}
func (h *SnapshotIngestHandler) Handle(ctx context.Context, b []byte) error {
	var batch models.SnapshotBatch
	if err := json.Unmarshal(b, &batch); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return fmt.Errorf("%w: decode snapshot batch: %v", pkgkafka.ErrPermanent, err)
	}
	symbol := strings.ToUpper(strings.TrimSpace(batch.Symbol))
	if symbol == "" {
		h.metrics.RecordError("consumer_invalid")
		return fmt.Errorf("%w: snapshot batch without symbol", pkgkafka.ErrPermanent)
	}
	period := drepo.NormalizePeriod(batch.Period)

	start := time.Now()
	err := h.store.Put(ctx, symbol, period, batch.Snapshots)
	h.metrics.RecordLatency("ingest_store", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return fmt.Errorf("store snapshots %s/%s: %w", symbol, period, err)
	}
	h.metrics.RecordFetch("kafka", "ok")
	return nil
}

var _ pkgkafka.MessageHandler = (*SnapshotIngestHandler)(nil)
