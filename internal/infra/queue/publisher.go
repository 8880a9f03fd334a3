package queue

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
)

var (
	errBrokerDial    = errs.New("failed to dial message broker")
	errChannelOpen   = errs.New("failed to open broker channel")
	errQueueDeclare  = errs.New("failed to declare queue")
	errPublishFailed = errs.New("failed to publish message")
)

// Publisher holds a long-lived broker connection and publishes persistent
// messages to durable queues. Declared queues are cached so each queue is
// declared once per connection.
type Publisher struct {
	cfg config.AMQPConfig

	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]struct{}
}

func NewPublisher(cfg config.AMQPConfig) *Publisher {
	return &Publisher{cfg: cfg, declared: make(map[string]struct{})}
}

func (p *Publisher) Publish(ctx context.Context, queueName string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	if _, ok := p.declared[queueName]; !ok {
		if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			p.reset()
			return errs.Mark(err, errQueueDeclare)
		}
		p.declared[queueName] = struct{}{}
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.reset()
		return errs.Mark(err, errPublishFailed)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func (p *Publisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return nil, errs.Mark(err, errBrokerDial)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Mark(err, errChannelOpen)
	}

	p.conn = conn
	p.channel = ch
	return ch, nil
}

// reset drops the connection so the next publish reconnects. Callers hold
// the mutex.
func (p *Publisher) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	p.declared = make(map[string]struct{})
}
