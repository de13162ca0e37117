package nlu

import (
	"context"
	"fmt"

	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiDetector resolves intents through the Gemini API with a constrained
// JSON response schema.
type GeminiDetector struct {
	apiKey string
	model  string
}

func NewGeminiDetector(apiKey, model string) *GeminiDetector {
	return &GeminiDetector{apiKey: apiKey, model: model}
}

func (d *GeminiDetector) DetectIntent(ctx context.Context, text, sessionKey string) (domainChatbot.DetectResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  d.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return domainChatbot.DetectResult{}, err
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: detectUserMessage(text, sessionKey)}},
	}}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(detectSystemPrompt, ""),
		ResponseMIMEType:  "application/json",
		ResponseJsonSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"intent": {
					Type: "string",
					Enum: []string{
						string(domainChatbot.IntentRegistration),
						string(domainChatbot.IntentFood),
						string(domainChatbot.IntentShelter),
						string(domainChatbot.IntentHealthcare),
						string(domainChatbot.IntentEmergencyContacts),
						string(domainChatbot.IntentWelcome),
						string(domainChatbot.IntentFallback),
					},
				},
				"parameters": {
					Type:        "object",
					Description: "Simple string parameters extracted from the message.",
				},
				"fulfillment_text": {Type: "string"},
			},
			Required: []string{"intent", "fulfillment_text"},
		},
	}

	result, err := client.Models.GenerateContent(ctx, d.model, contents, cfg)
	if err != nil {
		return domainChatbot.DetectResult{}, err
	}
	if result == nil || len(result.Candidates) == 0 {
		return domainChatbot.DetectResult{}, fmt.Errorf("no response from gemini")
	}

	var raw string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			raw += part.Text
		}
	}

	detected, err := parseDetectPayload(raw)
	if err != nil {
		return domainChatbot.DetectResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"session": sessionKey,
		"intent":  detected.IntentName,
	}).Debug("[NLU] gemini intent resolved")
	return detected, nil
}
