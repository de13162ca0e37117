// Package nlu provides the remote intent-detection collaborators. Two
// providers are supported, selected by configuration; both answer the same
// contract: {intent name, parameters, fulfillment text} for one utterance
// tied to a session key.
package nlu

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saharabot/sahara/core/config"
	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultGeminiModel = "gemini-2.0-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

const detectSystemPrompt = `You are the intent classifier of a refugee-support helpline bot.
Classify the user's message into exactly one of these intents:

- Registration: questions about registering as a refugee, asylum procedures, the registration office.
- Food: food assistance, hunger, where to eat.
- Shelter: housing, a place to stay or sleep.
- Healthcare: health problems, hospitals, doctors, medicine.
- EmergencyContacts: emergencies, urgent help, who to call.
- Welcome: greetings and conversation starts.
- Fallback: anything else.

Also produce a short, factual fulfillment_text the bot could send as-is:
one or two sentences, plain language, no markdown. If you cannot help,
leave fulfillment_text empty.

Extract simple string parameters when obvious (e.g. "location": "Kathmandu").

Return ONLY a JSON object with the fields: intent, parameters, fulfillment_text.`

// detectPayload is the JSON object both providers are asked to return.
type detectPayload struct {
	Intent          string            `json:"intent"`
	Parameters      map[string]string `json:"parameters"`
	FulfillmentText string            `json:"fulfillment_text"`
}

func parseDetectPayload(raw string) (domainChatbot.DetectResult, error) {
	var payload detectPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domainChatbot.DetectResult{}, fmt.Errorf("undecodable detector payload: %w", err)
	}
	if strings.TrimSpace(payload.Intent) == "" {
		return domainChatbot.DetectResult{}, fmt.Errorf("detector payload missing intent")
	}
	return domainChatbot.DetectResult{
		IntentName:      payload.Intent,
		Parameters:      payload.Parameters,
		FulfillmentText: payload.FulfillmentText,
	}, nil
}

// detectUserMessage carries the session key alongside the utterance so the
// model can keep per-conversation continuity without ever seeing the raw
// sender address.
func detectUserMessage(text, sessionKey string) string {
	return fmt.Sprintf("session: %s\nmessage: %s", sessionKey, text)
}

// NewDetector builds the configured intent detector. Returns an error when
// the remote path is enabled but unusable (missing key, unknown provider);
// the caller then runs keyword-only.
func NewDetector(cfg config.NLUConfig) (domainChatbot.IIntentDetector, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("nlu enabled but NLU_API_KEY is empty")
	}

	switch cfg.Provider {
	case ProviderGemini, "":
		model := cfg.Model
		if model == "" {
			model = defaultGeminiModel
		}
		return NewGeminiDetector(cfg.APIKey, model), nil
	case ProviderOpenAI:
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return NewOpenAIDetector(cfg.APIKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported nlu provider: %s", cfg.Provider)
	}
}
