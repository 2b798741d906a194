package services

import (
	"context"

	"menulink/internal/logger"
	"menulink/pkg/whatsapp"
)

type MessageSender interface {
	SendMessage(ctx context.Context, phone, message string) (*whatsapp.SendMessageResponse, error)
}

// WhatsAppService optionally pushes the order message through a gateway in
// addition to the deep link the customer opens.
type WhatsAppService interface {
	Enabled() bool
	Push(ctx context.Context, phone, message string) error
}

type whatsappService struct {
	sender MessageSender
	log    *logger.Logger
}

// NewWhatsAppService returns a disabled service when sender is nil.
func NewWhatsAppService(sender MessageSender, log *logger.Logger) WhatsAppService {
	return &whatsappService{sender: sender, log: log}
}

func (s *whatsappService) Enabled() bool {
	return s.sender != nil
}

func (s *whatsappService) Push(ctx context.Context, phone, message string) error {
	if s.sender == nil {
		return nil
	}
	resp, err := s.sender.SendMessage(ctx, phone, message)
	if err != nil {
		return err
	}
	s.log.Debug(ctx).Str("message_id", resp.Results.MessageID).Msg("order pushed to gateway")
	return nil
}
