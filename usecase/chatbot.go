package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	domainRefdata "github.com/saharabot/sahara/domains/refdata"
	"github.com/saharabot/sahara/pkg/identity"
	"github.com/sirupsen/logrus"
)

// overrideIntents are the intents whose replies are always composed from
// local reference data, even when the remote NLU answered with its own
// fulfillment text. Membership check keeps the intent-to-handler mapping
// total and testable.
var overrideIntents = map[domainChatbot.Intent]struct{}{
	domainChatbot.IntentRegistration:      {},
	domainChatbot.IntentFood:              {},
	domainChatbot.IntentShelter:           {},
	domainChatbot.IntentHealthcare:        {},
	domainChatbot.IntentEmergencyContacts: {},
}

type chatbotService struct {
	detector domainChatbot.IIntentDetector // nil when the remote NLU path is disabled
	composer *composer
}

// NewChatbotService builds the message-processing pipeline. detector may be
// nil; the service then classifies with the local keyword table only.
func NewChatbotService(detector domainChatbot.IIntentDetector, store domainRefdata.IRefDataStore, registrationOffice, registrationHotline string) domainChatbot.IChatbotUsecase {
	return &chatbotService{
		detector: detector,
		composer: newComposer(store, registrationOffice, registrationHotline),
	}
}

// Process runs one inbound message through validation, session-key
// derivation, intent resolution and response composition. It never
// propagates an error or panic to the caller: every path terminates in a
// valid BotResponse.
func (s *chatbotService) Process(ctx context.Context, msg domainChatbot.InboundMessage) (resp domainChatbot.BotResponse) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"panic":  r,
				"sender": identity.MaskSender(msg.SenderID),
			}).Error("[PIPELINE] recovered from panic while processing message")
			resp = domainChatbot.BotResponse{
				Message:      apologyMessage,
				QuickReplies: menuQuickReplies,
			}
		}
	}()

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return domainChatbot.BotResponse{
			Message:      emptyInputMessage,
			QuickReplies: menuQuickReplies,
		}
	}
	if utf8.RuneCountInString(text) > domainChatbot.MaxMessageLength {
		return domainChatbot.BotResponse{
			Message:      tooLongMessage,
			QuickReplies: menuQuickReplies,
		}
	}

	sessionKey := identity.DeriveSessionKey(msg.SenderID)

	if s.detector != nil {
		if resp, ok := s.resolveRemote(ctx, text, sessionKey); ok {
			return resp
		}
	}

	intent := resolveKeywordIntent(text)
	logrus.WithFields(logrus.Fields{
		"session": sessionKey,
		"intent":  intent,
	}).Debug("[PIPELINE] intent resolved by keyword fallback")
	return s.composer.Compose(ctx, intent)
}

// resolveRemote runs the remote-NLU path. ok is false when the remote call
// failed and the caller should fall back to the keyword classifier; a
// successful remote answer is always handled here.
func (s *chatbotService) resolveRemote(ctx context.Context, text, sessionKey string) (domainChatbot.BotResponse, bool) {
	result, err := s.detector.DetectIntent(ctx, text, sessionKey)
	if err != nil {
		logrus.WithError(err).WithField("session", sessionKey).Warn("[PIPELINE] remote NLU failed, falling back to keywords")
		return domainChatbot.BotResponse{}, false
	}

	intent := domainChatbot.ParseIntent(result.IntentName)
	logrus.WithFields(logrus.Fields{
		"session": sessionKey,
		"intent":  intent,
	}).Debug("[PIPELINE] intent resolved by remote NLU")

	if _, override := overrideIntents[intent]; override {
		return s.composer.Compose(ctx, intent), true
	}

	if fulfillment := strings.TrimSpace(result.FulfillmentText); fulfillment != "" {
		return domainChatbot.BotResponse{
			Message:      fulfillment,
			QuickReplies: quickRepliesByIntent[intent],
			Metadata:     map[string]string{"intent": string(intent), "source": "nlu"},
		}, true
	}

	// Remote answered without usable text.
	return apologyResponse(intent), true
}
