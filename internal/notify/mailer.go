// Package notify sends best-effort transactional mail.
package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"artisan_market/internal/config"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/mail.v2"
)

// OrderLine is one row of an order confirmation
type OrderLine struct {
	Title    string
	Quantity int
	Price    float64
}

// OrderConfirmation is what the buyer is told after checkout
type OrderConfirmation struct {
	To            string
	BuyerName     string
	PaymentMethod string
	Lines         []OrderLine
	Total         float64
}

// Mailer delivers order notifications
type Mailer interface {
	SendOrderConfirmation(msg OrderConfirmation)
}

// New returns an SMTP mailer, or a no-op mailer when SMTP is not configured
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return NopMailer{}
	}
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &SMTPMailer{
		dialer: newDialer(cfg),
		from:   from,
	}
}

func newDialer(cfg *config.Config) *mail.Dialer {
	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	d.Timeout = 20 * time.Second
	d.SSL = cfg.SMTPPort == 465
	return d
}

// NopMailer drops every message
type NopMailer struct{}

func (NopMailer) SendOrderConfirmation(OrderConfirmation) {}

type sender interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPMailer sends mail asynchronously. Failures are logged and never surface to the caller.
type SMTPMailer struct {
	dialer sender
	from   string
}

func (s *SMTPMailer) SendOrderConfirmation(msg OrderConfirmation) {
	if msg.To == "" {
		return
	}
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", "Your order is confirmed")
	m.SetBody("text/html", renderOrderConfirmation(msg))

	go func() {
		if err := s.dialer.DialAndSend(m); err != nil {
			logrus.WithFields(logrus.Fields{
				"to":    msg.To,
				"error": err.Error(),
			}).Error("Order confirmation mail failed")
			return
		}
		logrus.WithField("to", msg.To).Info("Order confirmation mail sent")
	}()
}

func renderOrderConfirmation(msg OrderConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(msg.BuyerName))
	b.WriteString("<p>Thank you for supporting independent artists. Your order has been placed.</p><ul>")
	for _, l := range msg.Lines {
		fmt.Fprintf(&b, "<li>%s &times; %d: &#8377;%s</li>",
			html.EscapeString(l.Title), l.Quantity, decimal.NewFromFloat(l.Price).StringFixed(2))
	}
	method := "Cash on delivery"
	if msg.PaymentMethod == "online" {
		method = "Paid online"
	}
	fmt.Fprintf(&b, "</ul><p>Total: &#8377;%s (%s)</p>", decimal.NewFromFloat(msg.Total).StringFixed(2), method)
	b.WriteString("<p>Estimated delivery within 7 days.</p>")
	return b.String()
}
