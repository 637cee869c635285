package notify

import (
	"errors"
	"testing"
	"time"

	"artisan_market/internal/config"

	"github.com/stretchr/testify/assert"
	"gopkg.in/mail.v2"
)

type recordingSender struct {
	sent chan *mail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*mail.Message) error {
	for _, msg := range m {
		r.sent <- msg
	}
	return r.err
}

func TestNewWithoutSMTPHostIsNop(t *testing.T) {
	assert.IsType(t, NopMailer{}, New(&config.Config{}))
	assert.IsType(t, &SMTPMailer{}, New(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587}))
}

func TestSMTPMailerSendsAsynchronously(t *testing.T) {
	for _, sendErr := range []error{nil, errors.New("connection refused")} {
		rec := &recordingSender{sent: make(chan *mail.Message, 1), err: sendErr}
		m := &SMTPMailer{dialer: rec, from: "shop@example.com"}

		m.SendOrderConfirmation(OrderConfirmation{
			To:            "buyer@example.com",
			BuyerName:     "Asha",
			PaymentMethod: "cod",
			Lines:         []OrderLine{{Title: "Vase", Quantity: 2, Price: 1200}},
			Total:         2400,
		})

		select {
		case msg := <-rec.sent:
			assert.Equal(t, []string{"buyer@example.com"}, msg.GetHeader("To"))
			assert.Equal(t, []string{"Your order is confirmed"}, msg.GetHeader("Subject"))
		case <-time.After(time.Second):
			t.Fatal("mail was not sent")
		}
	}
}

func TestSMTPMailerSkipsEmptyRecipient(t *testing.T) {
	rec := &recordingSender{sent: make(chan *mail.Message, 1)}
	m := &SMTPMailer{dialer: rec, from: "shop@example.com"}
	m.SendOrderConfirmation(OrderConfirmation{})
	assert.Empty(t, rec.sent)
}

func TestRenderOrderConfirmationEscapesAndTotals(t *testing.T) {
	body := renderOrderConfirmation(OrderConfirmation{
		BuyerName: "<b>Ravi</b>",
		Lines:     []OrderLine{{Title: "Bowl & Cup", Quantity: 1, Price: 850}},
		Total:     850,
	})
	assert.Contains(t, body, "&lt;b&gt;Ravi&lt;/b&gt;")
	assert.Contains(t, body, "Bowl &amp; Cup")
	assert.Contains(t, body, "850.00")
	assert.Contains(t, body, "Cash on delivery")
}
