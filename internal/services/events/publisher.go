// Package events publishes committed ledger entries to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"paywallet/internal/config"
	"paywallet/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// TransactionEvent is the message body published for every committed entry.
type TransactionEvent struct {
	ReferenceID string                 `json:"referenceId"`
	Type        models.TransactionType `json:"type"`
	WalletID    uint                   `json:"walletId"`
	SenderID    *uint                  `json:"senderId,omitempty"`
	ReceiverID  *uint                  `json:"receiverId,omitempty"`
	Amount      decimal.Decimal        `json:"amount"`
	Fee         decimal.Decimal        `json:"fee"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func NewTransactionEvent(tx *models.Transaction) TransactionEvent {
	return TransactionEvent{
		ReferenceID: tx.ReferenceID,
		Type:        tx.Type,
		WalletID:    tx.WalletID,
		SenderID:    tx.SenderID,
		ReceiverID:  tx.ReceiverID,
		Amount:      tx.Amount,
		Fee:         tx.Fee,
		CreatedAt:   tx.CreatedAt,
	}
}

type Publisher interface {
	PublishTransactions(ctx context.Context, entries ...*models.Transaction) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactions(context.Context, ...*models.Transaction) error { return nil }
func (NoopPublisher) Close() error                                                      { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		MaxAttempts:  10,
	}
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishTransactions writes one message per entry keyed by wallet id, so
// entries of the same wallet keep their order within a partition.
func (p *KafkaPublisher) PublishTransactions(ctx context.Context, entries ...*models.Transaction) error {
	msgs := make([]kafka.Message, 0, len(entries))
	for _, tx := range entries {
		if tx == nil {
			continue
		}
		body, err := json.Marshal(NewTransactionEvent(tx))
		if err != nil {
			return fmt.Errorf("failed to marshal transaction event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatUint(uint64(tx.WalletID), 10)),
			Value: body,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(tx.Type)},
			},
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
