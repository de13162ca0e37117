package usecase

import (
	"context"
	"fmt"
	"strings"

	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	domainRefdata "github.com/saharabot/sahara/domains/refdata"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	apologyMessage = "Sorry, I could not process that right now. Please try again in a moment."

	emptyInputMessage = "Please type a question so I can help. For example: \"How do I register?\" or \"Where can I find food?\""

	tooLongMessage = "Your message is too long. Please keep it under 500 characters and try again."

	welcomeMessage = "Hello! I am Sahara, the refugee support assistant. I can help you with registration, food, shelter, healthcare and emergency contacts. What do you need?"

	fallbackMessage = "I did not quite understand that. You can ask me about registration, food assistance, shelter, healthcare or emergency contacts."
)

var menuQuickReplies = []string{"Registration", "Food", "Shelter", "Healthcare", "Emergency contacts"}

var quickRepliesByIntent = map[domainChatbot.Intent][]string{
	domainChatbot.IntentRegistration:      {"Required documents", "Food", "Emergency contacts"},
	domainChatbot.IntentFood:              {"Registration", "Shelter", "Emergency contacts"},
	domainChatbot.IntentShelter:           {"Registration", "Food", "Emergency contacts"},
	domainChatbot.IntentHealthcare:        {"Emergency contacts", "Registration"},
	domainChatbot.IntentEmergencyContacts: {"Healthcare", "Registration"},
	domainChatbot.IntentWelcome:           menuQuickReplies,
	domainChatbot.IntentFallback:          menuQuickReplies,
}

// composer renders a resolved intent into a BotResponse from reference data.
// Composition never fails: any fetch error inside a branch is logged and
// degraded to the generic apology.
type composer struct {
	store   domainRefdata.IRefDataStore
	office  string
	hotline string
}

func newComposer(store domainRefdata.IRefDataStore, office, hotline string) *composer {
	return &composer{store: store, office: office, hotline: hotline}
}

func (c *composer) Compose(ctx context.Context, intent domainChatbot.Intent) domainChatbot.BotResponse {
	resp, err := c.compose(ctx, intent)
	if err != nil {
		logrus.WithError(err).WithField("intent", intent).Error("[COMPOSER] reference data unavailable, degrading to apology")
		return apologyResponse(intent)
	}
	return resp
}

func (c *composer) compose(ctx context.Context, intent domainChatbot.Intent) (domainChatbot.BotResponse, error) {
	switch intent {
	case domainChatbot.IntentRegistration:
		return c.registration(ctx)
	case domainChatbot.IntentFood:
		return c.serviceList(ctx, domainChatbot.IntentFood, domainRefdata.CategoryFood, "Food assistance near you:")
	case domainChatbot.IntentShelter:
		return c.shelter(ctx)
	case domainChatbot.IntentHealthcare:
		return c.healthcare(ctx)
	case domainChatbot.IntentEmergencyContacts:
		return c.emergencyContacts(ctx)
	case domainChatbot.IntentWelcome:
		return response(domainChatbot.IntentWelcome, welcomeMessage), nil
	default:
		return response(domainChatbot.IntentFallback, fallbackMessage), nil
	}
}

// registration fetches steps and documents concurrently; either fetch
// failing fails the branch as a whole (no partial rendering).
func (c *composer) registration(ctx context.Context) (domainChatbot.BotResponse, error) {
	var (
		steps []domainRefdata.RegistrationStep
		docs  []domainRefdata.RequiredDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		steps, err = c.store.ListRegistrationSteps(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = c.store.ListRequiredDocuments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domainChatbot.BotResponse{}, err
	}

	if len(steps) == 0 {
		msg := fmt.Sprintf("Registration is handled by %s. Please visit the nearest registration office for current instructions.", c.office)
		return response(domainChatbot.IntentRegistration, msg), nil
	}

	var sb strings.Builder
	sb.WriteString("How to register:\n")
	for _, step := range steps {
		sb.WriteString(fmt.Sprintf("%d. %s", step.StepNumber, step.Title))
		if step.Description != "" {
			sb.WriteString(" - " + step.Description)
		}
		sb.WriteString("\n")
	}

	if len(docs) > 0 {
		sb.WriteString("\nDocuments to bring:\n")
		for _, doc := range docs {
			sb.WriteString("- " + doc.Name)
			if doc.IsEssential {
				sb.WriteString(" (essential)")
			}
			sb.WriteString("\n")
		}
	}

	return response(domainChatbot.IntentRegistration, strings.TrimRight(sb.String(), "\n")), nil
}

func (c *composer) serviceList(ctx context.Context, intent domainChatbot.Intent, category domainRefdata.ServiceCategory, header string) (domainChatbot.BotResponse, error) {
	services, err := c.store.ListServicesByCategory(ctx, category)
	if err != nil {
		return domainChatbot.BotResponse{}, err
	}

	if len(services) == 0 {
		return response(intent, c.noServicesMessage(category)), nil
	}

	var sb strings.Builder
	sb.WriteString(header + "\n")
	for _, svc := range services {
		sb.WriteString(serviceLine(svc) + "\n")
	}
	return response(intent, strings.TrimRight(sb.String(), "\n")), nil
}

func (c *composer) shelter(ctx context.Context) (domainChatbot.BotResponse, error) {
	services, err := c.store.ListServicesByCategory(ctx, domainRefdata.CategoryShelter)
	if err != nil {
		return domainChatbot.BotResponse{}, err
	}

	if len(services) == 0 {
		return response(domainChatbot.IntentShelter, c.noServicesMessage(domainRefdata.CategoryShelter)), nil
	}

	var sb strings.Builder
	sb.WriteString("Shelter options:\n")
	for _, svc := range services {
		sb.WriteString(serviceLine(svc) + "\n")
	}
	sb.WriteString("\nNote: shelter placement requires a completed registration.")
	return response(domainChatbot.IntentShelter, sb.String()), nil
}

// healthcare joins Health-category services with Emergency and Hospital
// contacts into a single message; the three fetches run concurrently.
func (c *composer) healthcare(ctx context.Context) (domainChatbot.BotResponse, error) {
	var (
		services  []domainRefdata.Service
		emergency []domainRefdata.Contact
		hospitals []domainRefdata.Contact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = c.store.ListServicesByCategory(gctx, domainRefdata.CategoryHealth)
		return err
	})
	g.Go(func() error {
		var err error
		emergency, err = c.store.ListContactsByType(gctx, domainRefdata.ContactEmergency)
		return err
	})
	g.Go(func() error {
		var err error
		hospitals, err = c.store.ListContactsByType(gctx, domainRefdata.ContactHospital)
		return err
	})
	if err := g.Wait(); err != nil {
		return domainChatbot.BotResponse{}, err
	}

	var sb strings.Builder
	if len(services) > 0 {
		sb.WriteString("Health services:\n")
		for _, svc := range services {
			sb.WriteString(serviceLine(svc) + "\n")
		}
	}
	if len(emergency)+len(hospitals) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Medical contacts:\n")
		for _, contact := range append(emergency, hospitals...) {
			sb.WriteString(contactLine(contact) + "\n")
		}
	}

	if sb.Len() == 0 {
		msg := fmt.Sprintf("No health services are registered at the moment. Please contact %s for a referral.", c.office)
		return response(domainChatbot.IntentHealthcare, msg), nil
	}
	return response(domainChatbot.IntentHealthcare, strings.TrimRight(sb.String(), "\n")), nil
}

// emergencyContacts renders urgent contacts (flagged urgent or typed
// emergency) before everything else.
func (c *composer) emergencyContacts(ctx context.Context) (domainChatbot.BotResponse, error) {
	contacts, err := c.store.ListContacts(ctx)
	if err != nil {
		return domainChatbot.BotResponse{}, err
	}

	if len(contacts) == 0 {
		msg := fmt.Sprintf("No emergency contacts are registered at the moment. Please reach out to %s.", c.office)
		if c.hotline != "" {
			msg += fmt.Sprintf(" For urgent help call the hotline: %s.", c.hotline)
		}
		return response(domainChatbot.IntentEmergencyContacts, msg), nil
	}

	var urgent, general []domainRefdata.Contact
	for _, contact := range contacts {
		if contact.IsUrgent || contact.Type == domainRefdata.ContactEmergency {
			urgent = append(urgent, contact)
		} else {
			general = append(general, contact)
		}
	}

	var sb strings.Builder
	if len(urgent) > 0 {
		sb.WriteString("Urgent:\n")
		for _, contact := range urgent {
			sb.WriteString(contactLine(contact) + "\n")
		}
	}
	if len(general) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Other contacts:\n")
		for _, contact := range general {
			sb.WriteString(contactLine(contact) + "\n")
		}
	}

	return response(domainChatbot.IntentEmergencyContacts, strings.TrimRight(sb.String(), "\n")), nil
}

func (c *composer) noServicesMessage(category domainRefdata.ServiceCategory) string {
	return fmt.Sprintf("No %s services are registered at the moment. Please contact %s, the registration authority, for the latest guidance.", category, c.office)
}

func serviceLine(svc domainRefdata.Service) string {
	line := svc.Organization + ": " + svc.Description
	if svc.Location != "" {
		line += " (" + svc.Location + ")"
	}
	return line
}

func contactLine(contact domainRefdata.Contact) string {
	reach := contact.Phone
	if reach == "" {
		reach = contact.Email
	}
	line := contact.Entity + ": " + reach
	if contact.Description != "" {
		line += " (" + contact.Description + ")"
	}
	return line
}

func response(intent domainChatbot.Intent, message string) domainChatbot.BotResponse {
	return domainChatbot.BotResponse{
		Message:      message,
		QuickReplies: quickRepliesByIntent[intent],
		Metadata:     map[string]string{"intent": string(intent)},
	}
}

func apologyResponse(intent domainChatbot.Intent) domainChatbot.BotResponse {
	return domainChatbot.BotResponse{
		Message:      apologyMessage,
		QuickReplies: menuQuickReplies,
		Metadata:     map[string]string{"intent": string(intent), "degraded": "true"},
	}
}
