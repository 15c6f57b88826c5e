// Package notify queues outgoing mail on RabbitMQ for cmd/mail to deliver.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type MailPublisher struct {
	ch      Channel
	queue   string
	timeout time.Duration
}

func NewMailPublisher(ch Channel, queue string, timeout time.Duration) *MailPublisher {
	return &MailPublisher{ch: ch, queue: queue, timeout: timeout}
}

func (p *MailPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// DeclareQueue declares the durable mail queue shared by the api and the mail
// worker.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

// ClaimStatusMessage builds the notification sent to a lecturer when a
// reviewer decides on one of their claims.
func ClaimStatusMessage(lecturer *domain.User, claim *domain.Claim, decidedBy string) domain.MailMessage {
	return domain.MailMessage{
		Type: domain.MailTypeClaimStatus,
		To:   lecturer.Email,
		Data: domain.ClaimStatusMailData{
			FullName:    lecturer.FullName(),
			ClaimID:     claim.ID,
			Month:       claim.Month,
			Status:      string(claim.Status),
			TotalAmount: claim.TotalAmount,
			DecidedBy:   decidedBy,
		},
	}
}
