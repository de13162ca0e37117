package usecase

import (
	"strings"

	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
)

// keywordGroup binds one intent to the substrings that trigger it.
type keywordGroup struct {
	intent   domainChatbot.Intent
	keywords []string
}

// keywordGroups is the local fallback decision table. Order matters: groups
// are tested top to bottom and the first hit wins, so a message containing
// both "food" and "emergency" resolves to Food.
var keywordGroups = []keywordGroup{
	{domainChatbot.IntentRegistration, []string{"register", "opm"}},
	{domainChatbot.IntentFood, []string{"food", "hungry", "eat"}},
	{domainChatbot.IntentShelter, []string{"shelter", "place to stay", "sleep"}},
	{domainChatbot.IntentHealthcare, []string{"health", "hospital", "doctor", "sick"}},
	{domainChatbot.IntentEmergencyContacts, []string{"emergency", "help", "contact"}},
	{domainChatbot.IntentWelcome, []string{"hello", "hi", "start"}},
}

// resolveKeywordIntent classifies text with the ordered keyword table.
// It never fails; unmatched text is Fallback.
func resolveKeywordIntent(text string) domainChatbot.Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				return group.intent
			}
		}
	}
	return domainChatbot.IntentFallback
}
