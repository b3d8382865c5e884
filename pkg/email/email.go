package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// IsConfigured checks whether SMTP delivery is set up
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendQuoteDocument emails the generated quote document link to a customer
func (s *EmailService) SendQuoteDocument(toEmail, customerName, projectName, documentURL string) error {
	htmlContent, err := s.renderQuoteDocumentEmail(customerName, projectName, documentURL)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your quote for %s", projectName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderQuoteDocumentEmail renders the quote document email template
func (s *EmailService) renderQuoteDocumentEmail(customerName, projectName, documentURL string) (string, error) {
	tmpl, err := template.New("quote_document").Parse(quoteDocumentTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"CustomerName": customerName,
		"ProjectName":  projectName,
		"DocumentURL":  documentURL,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

const quoteDocumentTemplate = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px; border-radius: 8px;">
    <h2 style="color: #1a365d;">Your quote is ready</h2>
    <p>Dear {{.CustomerName}},</p>
    <p>Thank you for your interest. Your price quote for <strong>{{.ProjectName}}</strong> has been prepared and is available for download below.</p>
    <p style="text-align: center; margin: 30px 0;">
      <a href="{{.DocumentURL}}" style="background-color: #1a365d; color: #ffffff; padding: 12px 24px; border-radius: 4px; text-decoration: none;">Download Quote (PDF)</a>
    </p>
    <p>If you have any questions about the quoted items or pricing, simply reply to this email.</p>
    <p style="color: #718096; font-size: 12px; margin-top: 30px;">If the button does not work, copy this link into your browser:<br>{{.DocumentURL}}</p>
  </div>
</body>
</html>
`
