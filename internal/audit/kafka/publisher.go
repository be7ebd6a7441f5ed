// Package kafka mirrors audit records to a topic for downstream ops
// tooling. The relational sink stays the source of truth; publishing here
// is asynchronous and best-effort.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"citizengw/internal/audit"
)

// Publisher produces audit records to a Kafka topic.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects to the brokers and ensures the topic exists.
func NewPublisher(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, err
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		// Already-exists is the steady state; anything else is reported by
		// the first produce.
		logger.WarnContext(ctx, "audit topic creation skipped", "topic", topic, "error", err)
	}

	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

type message struct {
	AuthLevel      string    `json:"authLevel"`
	Citizen        string    `json:"citizen,omitempty"`
	Email          string    `json:"email,omitempty"`
	OperationName  string    `json:"operationName"`
	PartitionKey   string    `json:"partitionKey"`
	RowKey         string    `json:"rowKey"`
	QueryParamType string    `json:"queryParamType,omitempty"`
	ClientIP       string    `json:"clientIp,omitempty"`
	UserAgent      string    `json:"userAgent,omitempty"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// Publish produces the record asynchronously. Delivery failures are logged
// and otherwise ignored.
func (p *Publisher) Publish(ctx context.Context, record audit.Record) {
	payload, err := json.Marshal(message{
		AuthLevel:      string(record.AuthLevel),
		Citizen:        record.Citizen.String(),
		Email:          record.Email,
		OperationName:  record.OperationName,
		PartitionKey:   record.PartitionKey,
		RowKey:         record.RowKey,
		QueryParamType: record.QueryParamType,
		ClientIP:       record.ClientIP,
		UserAgent:      record.UserAgent,
		RecordedAt:     record.RecordedAt,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "encode audit record", "error", err)
		return
	}

	p.client.Produce(ctx, &kgo.Record{
		Key:   []byte(record.PartitionKey),
		Value: payload,
	}, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.ErrorContext(ctx, "mirror audit record", "topic", p.topic, "error", err)
		}
	})
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		return err
	}
	p.client.Close()
	return nil
}
