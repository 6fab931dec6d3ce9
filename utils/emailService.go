package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. A missing API key
// downgrades to a log line so local setups work without credentials.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendgridApiKey == "" {
		log.Printf("SendGrid key not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(cfg.AppName, cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, "["+cfg.AppName+"] "+subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid error: %d", resp.StatusCode)
	}

	return nil
}

// SendEnrollmentEmail sends the purchase confirmation after an order completes
func SendEnrollmentEmail(toName, toEmail, courseTitle string, amount float64, currency string) {
	subject := "You're enrolled: " + courseTitle
	body := getEmailTemplate(subject, fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Hi %s,</p>
		<p>Your payment of <b>%.2f %s</b> was received and you now have full access to the course.</p>
		<div class="info-box">Head to your dashboard to start learning right away.</div>
	`, courseTitle, toName, amount, currency))

	if err := SendEmail(toName, toEmail, subject, body); err != nil {
		log.Printf("Failed to send enrollment email to %s: %v", toEmail, err)
	}
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(toName, toEmail string) {
	subject := "Welcome aboard"
	body := getEmailTemplate(subject, fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. Browse the catalog and start learning.</p>
	`, toName))

	if err := SendEmail(toName, toEmail, subject, body); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", toEmail, err)
	}
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4F8EF7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
