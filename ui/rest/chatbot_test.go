package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saharabot/sahara/core/config"
	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	"github.com/saharabot/sahara/pkg/signature"
	"github.com/saharabot/sahara/ui/rest/middleware"
)

type fakeChatbotService struct {
	lastMsg  domainChatbot.InboundMessage
	response domainChatbot.BotResponse
}

func (f *fakeChatbotService) Process(_ context.Context, msg domainChatbot.InboundMessage) domainChatbot.BotResponse {
	f.lastMsg = msg
	return f.response
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Environment: "development"},
		Channel: config.ChannelConfig{
			AuthToken: "test-shared-secret",
		},
	}
}

func newTestApp(service domainChatbot.IChatbotUsecase, cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestChatbot(app, service, cfg)
	return app
}

func signedWebhookRequest(t *testing.T, params map[string]string, secret string) *http.Request {
	t.Helper()

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if secret != "" {
		req.Header.Set(signature.Header, signature.Compute("http://example.com/webhook", params, secret))
	}
	return req
}

func TestWebhook_SignedRequestGetsTwiML(t *testing.T) {
	service := &fakeChatbotService{response: domainChatbot.BotResponse{
		Message:      "Hello! I am Sahara.",
		QuickReplies: []string{"Registration", "Food"},
	}}
	cfg := testConfig()
	app := newTestApp(service, cfg)

	params := map[string]string{
		"From":       "whatsapp:+9779812345678",
		"Body":       "hello",
		"MessageSid": "SM123",
	}
	resp, err := app.Test(signedWebhookRequest(t, params, cfg.Channel.AuthToken))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d, body=%s", resp.StatusCode, string(b))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "xml") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	got := string(body)
	if !strings.Contains(got, "<Response><Message>") {
		t.Fatalf("reply is not TwiML: %s", got)
	}
	if !strings.Contains(got, "Hello! I am Sahara.") {
		t.Fatalf("reply missing bot message: %s", got)
	}
	if !strings.Contains(got, "Try: Registration · Food") {
		t.Fatalf("reply missing quick-reply hint line: %s", got)
	}

	if service.lastMsg.SenderID != "whatsapp:+9779812345678" || service.lastMsg.Text != "hello" {
		t.Fatalf("pipeline received wrong message: %+v", service.lastMsg)
	}
}

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	service := &fakeChatbotService{response: domainChatbot.BotResponse{Message: "never sent"}}
	app := newTestApp(service, testConfig())

	params := map[string]string{"From": "whatsapp:+9779812345678", "Body": "hello"}
	req := signedWebhookRequest(t, params, "wrong-secret")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status %d, want 403", resp.StatusCode)
	}
	if service.lastMsg.SenderID != "" {
		t.Fatalf("pipeline must not run for unauthenticated requests")
	}
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	service := &fakeChatbotService{}
	app := newTestApp(service, testConfig())

	params := map[string]string{"From": "whatsapp:+9779812345678", "Body": "hello"}
	resp, err := app.Test(signedWebhookRequest(t, params, ""))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status %d, want 403", resp.StatusCode)
	}
}

func TestWebhook_BypassOnlyOutsideProduction(t *testing.T) {
	service := &fakeChatbotService{response: domainChatbot.BotResponse{Message: "ok"}}
	cfg := testConfig()
	cfg.Channel.SkipSignatureCheck = true
	app := newTestApp(service, cfg)

	params := map[string]string{"From": "whatsapp:+9779812345678", "Body": "hello"}
	resp, err := app.Test(signedWebhookRequest(t, params, ""))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bypass refused in development: status %d", resp.StatusCode)
	}

	// Same flag in production must still verify.
	cfg = testConfig()
	cfg.Channel.SkipSignatureCheck = true
	cfg.App.Environment = "production"
	app = newTestApp(service, cfg)

	resp, err = app.Test(signedWebhookRequest(t, params, ""))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bypass honored in production: status %d", resp.StatusCode)
	}
}

func TestChat_JSONEndpoint(t *testing.T) {
	service := &fakeChatbotService{response: domainChatbot.BotResponse{
		Message:      "Shelter options:",
		QuickReplies: []string{"Registration"},
		Metadata:     map[string]string{"intent": "Shelter"},
	}}
	app := newTestApp(service, testConfig())

	body := `{"sender_id":"web:visitor-1","text":"place to stay"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d, body=%s", resp.StatusCode, string(b))
	}

	var envelope struct {
		Code    string                    `json:"code"`
		Results domainChatbot.BotResponse `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != "SUCCESS" {
		t.Fatalf("unexpected envelope code %q", envelope.Code)
	}
	if envelope.Results.Message != "Shelter options:" {
		t.Fatalf("unexpected results: %+v", envelope.Results)
	}

	// A message id is assigned when the caller omits one.
	if service.lastMsg.MessageID == "" {
		t.Fatalf("missing message id was not generated")
	}
}

func TestChat_MissingSenderRejected(t *testing.T) {
	service := &fakeChatbotService{}
	app := newTestApp(service, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d, want 400", resp.StatusCode)
	}
}
