package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"AstroTrade/internal/domain/models"
	domrepo "AstroTrade/internal/domain/repository"
	pkgkafka "AstroTrade/pkg/kafka"
	applogger "AstroTrade/pkg/logger"
)

type batchPublisher interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// MoonAlert is the message published for one moon opportunity.
type MoonAlert struct {
	BatchID     string                 `json:"batch_id"`
	Date        string                 `json:"date"`
	Hour        int                    `json:"hour"`
	Time        time.Time              `json:"time"`
	MoonSign    string                 `json:"moon_sign"`
	MoonDegree  float64                `json:"moon_degree"`
	Opportunity models.MoonOpportunity `json:"opportunity"`
	Text        string                 `json:"text"`
}

// KafkaAlertPublisher sends one message per moon opportunity keyed by stock.
type KafkaAlertPublisher struct {
	producer batchPublisher
	topic    string
	l        *applogger.Logger
}

func NewKafkaAlertPublisher(p *pkgkafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: p, topic: topic}
}

// SetLogger injects a structured logger.
func (k *KafkaAlertPublisher) SetLogger(l *applogger.Logger) { k.l = l }

// PublishMoonScan writes every opportunity of scan as one batch. An empty
// scan publishes nothing.
func (k *KafkaAlertPublisher) PublishMoonScan(ctx context.Context, scan *models.MoonScan) error {
	msgs := moonAlertMessages(scan, uuid.NewString())
	if len(msgs) == 0 {
		return nil
	}
	if err := k.producer.PublishBatch(ctx, k.topic, msgs); err != nil {
		k.l.Error("moon alerts publish failed",
			applogger.String("topic", k.topic),
			applogger.String("date", scan.Date),
			applogger.Int("messages", len(msgs)),
			applogger.Error(err))
		return fmt.Errorf("publish moon alerts: %w", err)
	}
	k.l.Info("moon alerts published",
		applogger.String("topic", k.topic),
		applogger.String("date", scan.Date),
		applogger.Int("messages", len(msgs)))
	return nil
}

func (k *KafkaAlertPublisher) Close() error {
	return k.producer.Close()
}

func moonAlertMessages(scan *models.MoonScan, batchID string) []pkgkafka.Message {
	if scan == nil {
		return nil
	}
	var out []pkgkafka.Message
	for _, h := range scan.Hours {
		for _, o := range h.Opportunities {
			alert := MoonAlert{
				BatchID:     batchID,
				Date:        scan.Date,
				Hour:        h.Hour,
				Time:        h.Time,
				MoonSign:    h.MoonSign,
				MoonDegree:  h.MoonDegree,
				Opportunity: o,
				Text: fmt.Sprintf("%02d:00 %s Moon %s %s %s (%.2f°) %s",
					h.Hour, o.Icon, o.Aspect, o.Stock, o.Planet, o.Deviation, o.Advice),
			}
			out = append(out, pkgkafka.Message{Key: []byte(o.Stock), Value: alert})
		}
	}
	return out
}

// NopAlertPublisher drops alerts when Kafka is disabled.
type NopAlertPublisher struct{}

func (NopAlertPublisher) PublishMoonScan(context.Context, *models.MoonScan) error { return nil }
func (NopAlertPublisher) Close() error                                           { return nil }

var (
	_ domrepo.AlertPublisher = (*KafkaAlertPublisher)(nil)
	_ domrepo.AlertPublisher = NopAlertPublisher{}
)
