package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpDialer() (*gomail.Dialer, string, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, "", fmt.Errorf("SMTP not configured")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}
	return gomail.NewDialer(host, port, username, password), from, nil
}

// SendPayoutDecisionEmail notifies an ambassador about a payout status change
func SendPayoutDecisionEmail(to string, amount float64, status, note string) error {
	dialer, from, err := smtpDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your PulseEarn payout request is %s", status))

	body := fmt.Sprintf(`
		<h2>Payout update</h2>
		<p>Your payout request for <b>$%.2f</b> has been <b>%s</b>.</p>`, amount, status)
	if note != "" {
		body += fmt.Sprintf("<p>Note from our team: %s</p>", note)
	}
	body += "<p>Thank you for being a PulseEarn ambassador.</p>"
	m.SetBody("text/html", body)

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
