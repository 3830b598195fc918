package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Store
// --------------------------------------------------

type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// StoreSink persists the message so it shows up in the user's inbox.
type StoreSink struct {
	store Store
}

func NewStoreSink(store Store) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) Send(ctx context.Context, msg Message) error {
	var data string
	if len(msg.Data) > 0 {
		b, err := json.Marshal(msg.Data)
		if err != nil {
			return err
		}
		data = string(b)
	}

	return s.store.CreateNotification(ctx, &models.Notification{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Title:     msg.Title,
		Message:   msg.Body,
		Type:      msg.Type,
		Data:      data,
		CreatedAt: msg.CreatedAt,
	})
}

// --------------------------------------------------
// FCM push
// --------------------------------------------------

type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Messenger is the part of the FCM client used here.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSink pushes the message to the user's registered device. Users without
// a push token are skipped.
type FCMSink struct {
	users     UserReader
	messenger Messenger
}

func NewFCMSink(users UserReader, messenger Messenger) *FCMSink {
	return &FCMSink{users: users, messenger: messenger}
}

func (s *FCMSink) Send(ctx context.Context, msg Message) error {
	user, err := s.users.GetUser(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("load push token: %w", err)
	}
	if user.PushToken == "" {
		return nil
	}

	data := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["type"] = msg.Type

	_, err = s.messenger.Send(ctx, &messaging.Message{
		Token: user.PushToken,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: data,
	})
	return err
}

// --------------------------------------------------
// Kafka
// --------------------------------------------------

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSink publishes the message as an event for downstream consumers.
type KafkaSink struct {
	writer MessageWriter
}

func NewKafkaSink(writer MessageWriter) *KafkaSink {
	return &KafkaSink{writer: writer}
}

// NewKafkaWriter builds the writer used by KafkaSink.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}

type kafkaPayload struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt string            `json:"created_at"`
}

func (s *KafkaSink) Send(ctx context.Context, msg Message) error {
	value, err := json.Marshal(kafkaPayload{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Type:      msg.Type,
		Title:     msg.Title,
		Body:      msg.Body,
		Data:      msg.Data,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(msg.ID)},
			{Key: "event_type", Value: []byte(msg.Type)},
		},
	})
}

// --------------------------------------------------
// Fan-out
// --------------------------------------------------

// MultiSink sends to every sink and reports all failures together. One
// failing channel does not stop the others.
type MultiSink []Sink

func (m MultiSink) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
