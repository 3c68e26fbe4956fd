package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	pkgkafka "StockPulse/pkg/kafka"
)

// tickMessage is the wire schema published by the tick producer.
type tickMessage struct {
	Symbol string  `json:"symbol"`
	T      int64   `json:"t"`
	C      float64 `json:"c"`
	V      float64 `json:"v"`
}

// eventTime tolerates producers sending milliseconds instead of seconds.
func (m *tickMessage) eventTime() time.Time {
	t := m.T
	if t > 1e11 {
		t /= 1000
	}
	return time.Unix(t, 0)
}

// KafkaTicksHandler drains the tick topic into ClickHouse.
type KafkaTicksHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
}

func NewKafkaTicksHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaTicksHandler {
	return &KafkaTicksHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaTicksHandler) Topic() string { return h.topic }

func (h *KafkaTicksHandler) Handle(ctx context.Context, b []byte) error {
	var m tickMessage
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return fmt.Errorf("decode tick: %w", err)
	}

	ev := m.eventTime()
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(ev).Seconds())

	tick := &models.Tick{
		Symbol:    m.Symbol,
		Timestamp: ev.Unix(),
		Price:     m.C,
		Volume:    m.V,
	}

	start := time.Now()
	err := h.storage.Store(ctx, tick)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}

	h.metrics.RecordMessageSent("clickhouse", m.Symbol)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaTicksHandler)(nil)
