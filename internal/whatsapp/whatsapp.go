package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider sends a WhatsApp message to a customer
type Provider interface {
	SendMessage(phone, message string) error
	GetName() string
}

// FormatPhoneNumber normalizes an Indian phone number to the 91XXXXXXXXXX
// form WhatsApp APIs expect
func FormatPhoneNumber(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 10 {
		return "91" + digits
	}
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return digits
	}
	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		return "91" + digits[1:]
	}
	return digits
}

// ClickToChatLink builds a wa.me link that opens a chat with the message
// pre-filled. Used when no API provider is configured: the shop owner taps
// the link and sends the reminder from their own WhatsApp.
func ClickToChatLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", FormatPhoneNumber(phone), url.QueryEscape(message))
}

// AiSensyProvider sends messages through the AiSensy campaign API
type AiSensyProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAiSensyProvider(apiKey string) *AiSensyProvider {
	return &AiSensyProvider{
		apiKey:  apiKey,
		baseURL: "https://backend.aisensy.com/campaign/t1/api/v2",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *AiSensyProvider) SendMessage(phone, message string) error {
	payload := map[string]interface{}{
		"apiKey":         p.apiKey,
		"campaignName":   "payment_reminder",
		"destination":    FormatPhoneNumber(phone),
		"userName":       "Customer",
		"templateParams": []string{message},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("AiSensy API error: %s", string(body))
	}
	return nil
}

func (p *AiSensyProvider) GetName() string {
	return "AiSensy"
}

// LinkOnlyProvider does not deliver anything itself. Callers surface the
// click-to-chat link instead, so SendMessage is a no-op success.
type LinkOnlyProvider struct{}

func NewLinkOnlyProvider() *LinkOnlyProvider {
	return &LinkOnlyProvider{}
}

func (p *LinkOnlyProvider) SendMessage(phone, message string) error {
	return nil
}

func (p *LinkOnlyProvider) GetName() string {
	return "link-only"
}

// NewProvider picks the provider for the configured mode
func NewProvider(provider, apiKey string) Provider {
	if provider == "aisensy" && apiKey != "" {
		return NewAiSensyProvider(apiKey)
	}
	return NewLinkOnlyProvider()
}
