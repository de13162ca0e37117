package nlu

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	"github.com/sirupsen/logrus"
)

// OpenAIDetector resolves intents through the OpenAI chat-completions API
// using a strict JSON schema response format.
type OpenAIDetector struct {
	apiKey string
	model  string
}

func NewOpenAIDetector(apiKey, model string) *OpenAIDetector {
	return &OpenAIDetector{apiKey: apiKey, model: model}
}

func (d *OpenAIDetector) DetectIntent(ctx context.Context, text, sessionKey string) (domainChatbot.DetectResult, error) {
	client := openai.NewClient(
		option.WithAPIKey(d.apiKey),
	)

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intent": map[string]any{
				"type": "string",
				"enum": []string{
					string(domainChatbot.IntentRegistration),
					string(domainChatbot.IntentFood),
					string(domainChatbot.IntentShelter),
					string(domainChatbot.IntentHealthcare),
					string(domainChatbot.IntentEmergencyContacts),
					string(domainChatbot.IntentWelcome),
					string(domainChatbot.IntentFallback),
				},
			},
			"parameters": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"fulfillment_text": map[string]any{"type": "string"},
		},
		"required":             []string{"intent", "parameters", "fulfillment_text"},
		"additionalProperties": false,
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(d.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(detectSystemPrompt),
			openai.UserMessage(detectUserMessage(text, sessionKey)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "intent_detection",
					Schema: any(schema),
					Strict: openai.Bool(true),
				},
			},
		},
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return domainChatbot.DetectResult{}, err
	}
	if len(completion.Choices) == 0 {
		return domainChatbot.DetectResult{}, fmt.Errorf("no response from openai")
	}

	detected, err := parseDetectPayload(completion.Choices[0].Message.Content)
	if err != nil {
		return domainChatbot.DetectResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"session": sessionKey,
		"intent":  detected.IntentName,
	}).Debug("[NLU] openai intent resolved")
	return detected, nil
}
