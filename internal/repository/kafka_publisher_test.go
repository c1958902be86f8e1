package repository

import (
	"context"
	"errors"
	"testing"

	"FinCompare/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMessage struct {
	topic string
	key   string
	value interface{}
}

type fakeProducer struct {
	sent   []recordedMessage
	err    error
	closed bool
}

func (f *fakeProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, recordedMessage{topic: topic, key: string(key), value: value})
	return nil
}

func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherPublishComparison(t *testing.T) {
	fp := &fakeProducer{}
	pub := NewKafkaPublisher(fp, "fincompare.comparisons")

	ev := &models.ComparisonEvent{ID: "e1", SymbolA: "AAPL", SymbolB: "MSFT", Period: "annual"}
	require.NoError(t, pub.PublishComparison(context.Background(), ev))
	require.Len(t, fp.sent, 1)
	assert.Equal(t, "fincompare.comparisons", fp.sent[0].topic)
	assert.Equal(t, "AAPL|MSFT", fp.sent[0].key)
	assert.Same(t, ev, fp.sent[0].value)

	require.NoError(t, pub.PublishComparison(context.Background(), nil))
	assert.Len(t, fp.sent, 1)

	require.NoError(t, pub.Close())
	assert.True(t, fp.closed)
}

func TestKafkaPublisherWrapsError(t *testing.T) {
	boom := errors.New("broker down")
	pub := NewKafkaPublisher(&fakeProducer{err: boom}, "t")

	err := pub.PublishComparison(context.Background(), &models.ComparisonEvent{ID: "e2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "e2")
}
