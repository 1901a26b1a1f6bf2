package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/St1cky1/flight-planner/internal/infrastructure/client"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrMalformedMessage - сообщение не разбирается, повторять бессмысленно
var ErrMalformedMessage = errors.New("malformed message")

const reconnectDelay = 5 * time.Second

// MessageHandler обрабатывает тело сообщения. nil - ack,
// ErrMalformedMessage - nack без возврата, остальное - nack с возвратом в очередь.
type MessageHandler func(ctx context.Context, body []byte) error

// Consumer - читает одну очередь, переподключается при обрыве соединения
type Consumer struct {
	url     string
	queue   string
	tag     string
	handler MessageHandler
}

func NewConsumer(url, queue, tag string, handler MessageHandler) *Consumer {
	return &Consumer{
		url:     url,
		queue:   queue,
		tag:     tag,
		handler: handler,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Printf("🔄 %s: подключение к RabbitMQ...", c.tag)

	for {
		err := c.run(ctx)
		if ctx.Err() != nil {
			log.Printf("🛑 %s остановлен", c.tag)
			return
		}
		log.Printf("❌ %s ошибка: %v, переподключение через %s...", c.tag, err, reconnectDelay)

		select {
		case <-ctx.Done():
			log.Printf("🛑 %s остановлен", c.tag)
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Consumer) run(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	if _, err := client.DeclareQueue(channel, c.queue); err != nil {
		return err
	}

	if err := channel.Qos(10, 0, false); err != nil {
		return fmt.Errorf("ошибка настройки prefetch: %w", err)
	}

	msgs, err := channel.Consume(
		c.queue, // queue
		c.tag,   // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	log.Printf("✅ %s запущен, очередь %s", c.tag, c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал сообщений закрыт")
			}
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg amqp.Delivery) {
	err := c.handler(ctx, msg.Body)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("❌ %s: ошибка ack: %v", c.tag, ackErr)
		}
	case errors.Is(err, ErrMalformedMessage):
		log.Printf("❌ %s: некорректное сообщение: %v", c.tag, err)
		log.Printf("📄 Сырое сообщение: %s", string(msg.Body))
		msg.Nack(false, false)
	default:
		log.Printf("❌ %s: ошибка обработки, возвращаем в очередь: %v", c.tag, err)
		msg.Nack(false, true)
	}
}
