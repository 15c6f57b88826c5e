package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/mailer"
	"github.com/prog6212/cmcs/backend/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * SMTP client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("failed to reach mail server", slog.String("error", err.Error()))
		return
	}

	composer, err := mailer.NewComposer(cfg.Email.SMTP.Username)
	if err != nil {
		logger.Error("failed to parse mail templates", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	if err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		cfg.RabbitMQ.Queue,
		"",    // let the broker name the consumer
		false, // ack manually once the mail is sent
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume queue", slog.String("error", err.Error()))
		exitCode = 1
		return
	}

	handle := func(msg amqp.Delivery) {
		mailMessage := domain.MailMessage{}
		if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
			logger.Error("failed to decode mail message", slog.String("error", err.Error()))
			_ = msg.Nack(false, false)
			return
		}
		logger.Info("mail message received", slog.String("type", mailMessage.Type), slog.String("to", mailMessage.To))

		m, err := composer.Compose(&mailMessage)
		if err != nil {
			if errors.Is(err, mailer.ErrUnsupportedType) {
				logger.Error("unsupported mail type", slog.String("type", mailMessage.Type))
			} else {
				logger.Error("failed to compose mail", slog.String("error", err.Error()))
			}
			_ = msg.Nack(false, false)
			return
		}

		if err := client.DialAndSend(m); err != nil {
			logger.Error("failed to send mail", slog.String("error", err.Error()))
			_ = msg.Nack(false, true) // back on the queue for another try
			return
		}

		logger.Info("mail sent", slog.String("to", mailMessage.To))
		_ = msg.Ack(false)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- consume(ctx, msgs, handle)
	}()

	logger.Info("waiting for messages (CTRL+C to quit)")
	select {
	case <-sigChan:
		slog.Info("shutting down mail worker")
		cancel()
		<-done
		slog.Info("mail worker stopped")
	case err := <-done:
		// exit non-zero so the supervisor restarts the worker
		slog.Error("mail worker stopped consuming", slog.String("error", err.Error()))
		exitCode = 1
	}
}
