// Package mailer отправляет транзакционные письма гостю и владельцу
// через SMTP. Отправка всегда идет после коммита операции: сбой почты
// логируется вызывающим и не откатывает бронирование.
package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/peppertree17/booking-service/internal/domain"
)

// Config настройки SMTP и адресов
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string // адрес отправителя
	OwnerEmail string // адрес владельца для уведомлений о новых заявках
	Enabled    bool   // false в dev-окружении: письма только логируются
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client SMTP-клиент уведомлений
type Client struct {
	cfg    Config
	dialer *gomail.Dialer
	logger Logger
}

// NewClient создает новый почтовый клиент
func NewClient(cfg Config, logger Logger) *Client {
	return &Client{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// SendBookingReceived отправляет гостю подтверждение, что заявка принята
// и ожидает одобрения владельцем
func (c *Client) SendBookingReceived(ctx context.Context, booking *domain.Booking) error {
	subject := fmt.Sprintf("Booking request received: %s to %s", booking.CheckIn, booking.CheckOut)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for your booking request.\n\n"+
			"Check-in:  %s\n"+
			"Check-out: %s\n"+
			"Guests:    %d\n"+
			"Total:     R%s\n\n"+
			"Your request is pending approval. We will confirm it shortly.\n",
		booking.GuestName, booking.CheckIn, booking.CheckOut,
		booking.Guests, booking.ComputedTotal.StringFixed(2),
	)
	return c.send(ctx, booking.Email, subject, body)
}

// SendOwnerNotification уведомляет владельца о новой заявке
func (c *Client) SendOwnerNotification(ctx context.Context, booking *domain.Booking) error {
	subject := fmt.Sprintf("New booking request #%d: %s to %s",
		booking.ID, booking.CheckIn, booking.CheckOut)
	body := fmt.Sprintf(
		"New booking request.\n\n"+
			"Guest:     %s\n"+
			"Email:     %s\n"+
			"Phone:     %s\n"+
			"Check-in:  %s\n"+
			"Check-out: %s\n"+
			"Guests:    %d\n"+
			"Total:     R%s\n",
		booking.GuestName, booking.Email, booking.Phone,
		booking.CheckIn, booking.CheckOut,
		booking.Guests, booking.ComputedTotal.StringFixed(2),
	)
	return c.send(ctx, c.cfg.OwnerEmail, subject, body)
}

// SendStatusUpdate сообщает гостю о смене статуса бронирования
func (c *Client) SendStatusUpdate(ctx context.Context, booking *domain.Booking) error {
	subject := fmt.Sprintf("Your booking is %s: %s to %s",
		booking.Status, booking.CheckIn, booking.CheckOut)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking from %s to %s is now %s.\n",
		booking.GuestName, booking.CheckIn, booking.CheckOut, booking.Status,
	)
	return c.send(ctx, booking.Email, subject, body)
}

func (c *Client) send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		c.logger.Warn("mailer: no recipient for %q, message dropped", subject)
		return nil
	}

	if !c.cfg.Enabled {
		c.logger.Info("mailer: disabled, would send %q to %s", subject, to)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.logger.Info("mailer: sent %q to %s", subject, to)
	return nil
}
