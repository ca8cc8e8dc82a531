// Package broker publica los movimientos confirmados del ledger en Kafka.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
)

// EventStockMovement tipo de evento publicado por cada append.
const EventStockMovement = "stock.movement"

// publishTimeout tope por mensaje; un broker caído no debe frenar el request que hizo el append.
const publishTimeout = 3 * time.Second

// messageWriter lo que usa el Producer de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer escribe eventos JSON en un topic.
type Producer struct {
	writer messageWriter
	log    zerolog.Logger
}

// NewProducer crea un producer Kafka para el topic indicado.
func NewProducer(brokers []string, topic string, log zerolog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // misma key (producto) → misma partición → orden por producto
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return &Producer{writer: writer, log: log}
}

// PublishEvent serializa event y lo escribe con la key dada.
func (p *Producer) PublishEvent(ctx context.Context, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to kafka: %w", err)
	}
	p.log.Debug().Str("key", key).Int("bytes", len(payload)).Msg("evento publicado")
	return nil
}

// Close cierra el writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// MovementMessage payload publicado por movimiento.
type MovementMessage struct {
	Type      string    `json:"type"`
	Seq       int64     `json:"seq"`
	ProductID string    `json:"product_id"`
	SKU       string    `json:"sku"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	Level     int64     `json:"level"`
	LowStock  bool      `json:"low_stock"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMovementMessage arma el payload desde el evento del Store.
func NewMovementMessage(evt inventory.MovementEvent) MovementMessage {
	m := evt.Movement
	return MovementMessage{
		Type:      EventStockMovement,
		Seq:       m.ID,
		ProductID: m.ProductID,
		SKU:       evt.SKU,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Reference: m.Reference,
		Level:     evt.Level,
		LowStock:  evt.LowStock,
		CreatedAt: m.CreatedAt,
	}
}

// MovementPublisher listener del Store que publica cada movimiento confirmado.
type MovementPublisher struct {
	producer *Producer
}

var _ inventory.MovementListener = (*MovementPublisher)(nil)

// NewMovementPublisher construye el listener.
func NewMovementPublisher(p *Producer) *MovementPublisher {
	return &MovementPublisher{producer: p}
}

// OnMovement publica el movimiento con key = id de producto.
func (mp *MovementPublisher) OnMovement(ctx context.Context, evt inventory.MovementEvent) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := mp.producer.PublishEvent(ctx, evt.Movement.ProductID, NewMovementMessage(evt)); err != nil {
		return fmt.Errorf("publish movement %d: %w", evt.Movement.ID, err)
	}
	return nil
}
