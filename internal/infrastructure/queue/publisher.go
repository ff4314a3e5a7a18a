package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// Publisher pushes created notifications to a RabbitMQ queue so downstream
// consumers (websocket bridge, mail worker) can fan them out to clients.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

type notificacaoEvent struct {
	ID       string `json:"id"`
	Titulo   string `json:"titulo"`
	Mensagem string `json:"mensagem"`
	Tipo     string `json:"tipo"`
	Alvo     string `json:"alvo"`
	CriadoEm string `json:"criado_em"`
}

// NewPublisher dials the broker and declares the queue (durable) so messages
// survive a broker restart even when no consumer is attached yet.
func NewPublisher(uri, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// PublishNotificacao sends the notification as a persistent JSON message.
func (p *Publisher) PublishNotificacao(ctx context.Context, n *domain.Notificacao) error {
	body, err := json.Marshal(notificacaoEvent{
		ID:       n.ID,
		Titulo:   n.Titulo,
		Mensagem: n.Mensagem,
		Tipo:     string(n.Tipo),
		Alvo:     string(n.Alvo),
		CriadoEm: n.CriadoEm.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}
	return errors.Join(errCh, errConn)
}
