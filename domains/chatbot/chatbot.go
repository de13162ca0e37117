package chatbot

import (
	"context"
	"strings"
)

// MaxMessageLength is the longest inbound text the pipeline accepts.
// Longer messages are answered with a "too long" notice without ever
// reaching intent resolution.
const MaxMessageLength = 500

// Intent is the classified purpose of an inbound message.
type Intent string

const (
	IntentRegistration      Intent = "Registration"
	IntentFood              Intent = "Food"
	IntentShelter           Intent = "Shelter"
	IntentHealthcare        Intent = "Healthcare"
	IntentEmergencyContacts Intent = "EmergencyContacts"
	IntentWelcome           Intent = "Welcome"
	IntentFallback          Intent = "Fallback"
)

// ParseIntent maps an intent name coming from the remote NLU to the
// canonical enum. The remote model historically used dot-separated names
// (e.g. "input.welcome"); both spellings are accepted here so the rest of
// the pipeline only ever sees one schema.
func ParseIntent(name string) Intent {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "registration", "input.registration":
		return IntentRegistration
	case "food", "input.food":
		return IntentFood
	case "shelter", "input.shelter":
		return IntentShelter
	case "healthcare", "health", "input.healthcare":
		return IntentHealthcare
	case "emergencycontacts", "emergency_contacts", "input.emergency":
		return IntentEmergencyContacts
	case "welcome", "input.welcome":
		return IntentWelcome
	default:
		return IntentFallback
	}
}

// InboundMessage is one text message received from the gateway. It lives for
// a single request and is never persisted.
type InboundMessage struct {
	SenderID  string `json:"sender_id" form:"From"`
	Text      string `json:"text" form:"Body"`
	MessageID string `json:"message_id,omitempty" form:"MessageSid"`
}

// BotResponse is the pipeline's output: reply text plus optional quick-reply
// suggestions (at most five) and open metadata.
type BotResponse struct {
	Message      string            `json:"message"`
	QuickReplies []string          `json:"quick_replies,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// DetectResult is what the remote NLU returns for one utterance.
type DetectResult struct {
	IntentName      string            `json:"intent_name"`
	Parameters      map[string]string `json:"parameters,omitempty"`
	FulfillmentText string            `json:"fulfillment_text"`
}

// IIntentDetector is the remote-NLU collaborator. Implementations may fail
// on network or configuration errors; the pipeline recovers by falling back
// to the local keyword classifier.
type IIntentDetector interface {
	DetectIntent(ctx context.Context, text, sessionKey string) (DetectResult, error)
}

// IChatbotUsecase processes one inbound message into exactly one response.
// Process never returns an error: every failure path terminates in a valid
// BotResponse.
type IChatbotUsecase interface {
	Process(ctx context.Context, msg InboundMessage) BotResponse
}
