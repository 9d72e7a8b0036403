package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/events"
	"github.com/Ramsey-B/aster/pkg/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		brokers string
		want    []string
		enabled bool
	}{
		{name: "should split and trim brokers", brokers: "kafka-1:9092, kafka-2:9092", want: []string{"kafka-1:9092", "kafka-2:9092"}, enabled: true},
		{name: "should be disabled without brokers", brokers: "", want: nil, enabled: false},
		{name: "should drop empty entries", brokers: " ,kafka:9092,", want: []string{"kafka:9092"}, enabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ParseConfig(tt.brokers, "aster.events")

			assert.Equal(t, tt.want, cfg.Brokers)
			assert.Equal(t, tt.enabled, cfg.Enabled())
			assert.Equal(t, "aster.events", cfg.Topic)
		})
	}
}

func TestProducerEmit(t *testing.T) {
	t.Run("should publish the event keyed by record", func(t *testing.T) {
		writer := &fakeWriter{}
		producer := newProducer(writer, "aster.events", testLogger())

		err := producer.Emit(context.Background(), events.Event{
			Type:       events.RecordAsserted,
			RecordID:   "record-1",
			RecordType: models.RecordTypePerson,
		})
		require.NoError(t, err)

		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "record-1", string(msg.Key))

		var published events.Event
		require.NoError(t, json.Unmarshal(msg.Value, &published))
		assert.Equal(t, events.RecordAsserted, published.Type)
		assert.False(t, published.Timestamp.IsZero())

		assert.Contains(t, msg.Headers, kafka.Header{Key: "type", Value: []byte("record.asserted")})
	})

	t.Run("should key deletions by entry", func(t *testing.T) {
		writer := &fakeWriter{}
		producer := newProducer(writer, "aster.events", testLogger())

		err := producer.Emit(context.Background(), events.Event{Type: events.EntryDeleted, EntryID: "entry-1"})
		require.NoError(t, err)

		assert.Equal(t, "entry-1", string(writer.messages[0].Key))
	})

	t.Run("should return write failures", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("broker down")}
		producer := newProducer(writer, "aster.events", testLogger())

		err := producer.Emit(context.Background(), events.Event{Type: events.EntryCreated})
		assert.EqualError(t, err, "broker down")
	})

	t.Run("should close the writer", func(t *testing.T) {
		writer := &fakeWriter{}
		producer := newProducer(writer, "aster.events", testLogger())

		require.NoError(t, producer.Close())
		assert.True(t, writer.closed)
	})
}
