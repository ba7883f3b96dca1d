package email

import (
	"context"
	"fmt"
	"time"

	"homestock/internal/config"
	"homestock/internal/logger"
	"homestock/internal/models"

	"github.com/mailgun/mailgun-go/v5"
)

type Service struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.MailgunDomain != "" && cfg.MailgunAPIKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:      client,
		domain:      cfg.MailgunDomain,
		senderEmail: cfg.MailgunSenderEmail,
		senderName:  cfg.MailgunSenderName,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendLowStockDigest mails a summary of items that are running low or out of
// stock. Called once per day from the digest ticker; never called with two
// empty lists.
func (s *Service) SendLowStockDigest(recipient string, low, out []models.InventoryItem, settings *models.Settings) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	subject := fmt.Sprintf("Stock alert: %d item(s) need restocking", len(low)+len(out))
	htmlBody := s.generateDigestHTML(low, out, settings)
	textBody := s.generateDigestText(low, out, settings)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		recipient,
	)
	message.SetHTML(htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send low stock digest: %w", err)
	}

	logger.Info("Low stock digest sent", "low", len(low), "out", len(out), "message_id", resp)
	return nil
}
