package libs

import (
	"context"
	"fmt"
	"html"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	if from == "" {
		from = user
	}
	return &Mailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

// OrderConfirmed mails a receipt to the buyer. Users without an address are
// skipped silently.
func (m *Mailer) OrderConfirmed(_ context.Context, user *models.User, order *models.Order) error {
	if user == nil || user.Email == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%d - Grocery Store", order.ID))
	msg.SetBody("text/html", orderConfirmationBody(user, order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	return nil
}

func orderConfirmationBody(user *models.User, order *models.Order) string {
	rows := ""
	for _, item := range order.Items {
		name := item.ProductName
		if name == "" {
			name = fmt.Sprintf("Product #%d", item.ProductID)
		}
		rows += fmt.Sprintf("<tr><td>%s</td><td style=\"text-align:right\">%d</td></tr>", html.EscapeString(name), item.Quantity)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #333;">Order Confirmation</h2>
        <p>Hello %s, thank you for your order!</p>
        <p><strong>Order Number:</strong> %d</p>
        <table style="width: 100%%; border-collapse: collapse;">
            <tr><th style="text-align:left">Product</th><th style="text-align:right">Qty</th></tr>
            %s
        </table>
        <p><strong>Total Amount:</strong> %s</p>
        <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
	`, html.EscapeString(user.Username), order.ID, rows, order.TotalAmount.StringFixed(2))
}
