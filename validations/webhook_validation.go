package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	pkgError "github.com/saharabot/sahara/pkg/error"
)

// ValidateInboundMessage checks the transport-level shape of an inbound
// message. Text content rules (emptiness, length) belong to the pipeline
// itself, which answers them with guidance messages instead of errors.
func ValidateInboundMessage(ctx context.Context, request domainChatbot.InboundMessage) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.SenderID, validation.Required),
		validation.Field(&request.Text, validation.Length(0, domainChatbot.MaxMessageLength*4)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
