package rest

import (
	"encoding/xml"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saharabot/sahara/core/config"
	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	pkgError "github.com/saharabot/sahara/pkg/error"
	"github.com/saharabot/sahara/pkg/identity"
	"github.com/saharabot/sahara/pkg/utils"
	"github.com/saharabot/sahara/ui/rest/middleware"
	"github.com/saharabot/sahara/validations"
	"github.com/sirupsen/logrus"
)

type Chatbot struct {
	Service domainChatbot.IChatbotUsecase
}

func InitRestChatbot(app fiber.Router, service domainChatbot.IChatbotUsecase, cfg *config.Config) Chatbot {
	handler := Chatbot{Service: service}

	app.Post("/webhook", middleware.SignatureVerification(cfg), handler.Webhook)

	group := app.Group("/api/chat")
	group.Post("/", handler.Chat)

	return handler
}

// twimlReply is the XML document the messaging gateway expects back from a
// webhook post. The gateway delivers the Message body to the sender.
type twimlReply struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Webhook handles form-encoded posts from the messaging gateway. The
// signature middleware has already authenticated the request by the time it
// reaches this handler.
func (h *Chatbot) Webhook(c *fiber.Ctx) error {
	var request domainChatbot.InboundMessage
	if err := c.BodyParser(&request); err != nil {
		return c.Status(400).JSON(utils.ResponseData{Status: 400, Code: "VALIDATION_ERROR", Message: err.Error()})
	}

	if err := validations.ValidateInboundMessage(c.UserContext(), request); err != nil {
		utils.PanicIfNeeded(err)
	}

	logrus.WithFields(logrus.Fields{
		"sender":     identity.MaskSender(request.SenderID),
		"message_id": request.MessageID,
	}).Info("[WEBHOOK] inbound message received")

	response := h.Service.Process(c.UserContext(), request)

	reply := twimlReply{Message: renderChannelMessage(response)}
	body, err := xml.Marshal(reply)
	if err != nil {
		utils.PanicIfNeeded(pkgError.InternalServerError("failed to render reply: " + err.Error()))
	}

	c.Set(fiber.HeaderContentType, "application/xml")
	return c.Send(append([]byte(xml.Header), body...))
}

// renderChannelMessage flattens a bot response for text-only channels. Quick
// replies have no structural representation there, so they ride along as a
// trailing hint line.
func renderChannelMessage(response domainChatbot.BotResponse) string {
	if len(response.QuickReplies) == 0 {
		return response.Message
	}
	return response.Message + "\n\nTry: " + strings.Join(response.QuickReplies, " · ")
}

type chatRequest struct {
	SenderID  string `json:"sender_id"`
	Text      string `json:"text"`
	MessageID string `json:"message_id"`
}

// Chat is the JSON counterpart of the webhook, used by the web widget and by
// operators poking the pipeline directly. Quick replies stay structured here.
func (h *Chatbot) Chat(c *fiber.Ctx) error {
	var request chatRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(400).JSON(utils.ResponseData{Status: 400, Code: "VALIDATION_ERROR", Message: err.Error()})
	}

	inbound := domainChatbot.InboundMessage{
		SenderID:  request.SenderID,
		Text:      request.Text,
		MessageID: request.MessageID,
	}
	if inbound.MessageID == "" {
		inbound.MessageID = uuid.NewString()
	}

	if err := validations.ValidateInboundMessage(c.UserContext(), inbound); err != nil {
		utils.PanicIfNeeded(err)
	}

	response := h.Service.Process(c.UserContext(), inbound)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Message processed",
		Results: response,
	})
}
