package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFeedbackReminder(toEmail, itemName string) error
	SendProfitReleased(toEmail string, amount float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendFeedbackReminder(toEmail, itemName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "How was your training?")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Tell us how it went</h2>
			<p>Your purchase <b>%s</b> has wrapped up. A short review helps other members pick the right trainer.</p>
			<p>It takes less than a minute.</p>
		</div>
	`, itemName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send feedback reminder to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Feedback reminder sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendProfitReleased(toEmail string, amount float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Earnings released to your wallet")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Earnings released</h2>
			<p>An amount of <b>%.0f</b> moved from pending to your available balance.</p>
			<p>You can request a disbursement from your wallet page.</p>
		</div>
	`, amount)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send release notice to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
