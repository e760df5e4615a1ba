package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vidscribe/vidscribe/internal/client"
)

const defaultSarvamURL = "https://api.sarvam.ai/translate"

// DefaultRegionalTarget is the target language code for the regional
// specialist backend.
const DefaultRegionalTarget = "en-IN"

// SarvamClient calls the Sarvam AI translation API, the regional specialist
// for Indian-subcontinent languages.
type SarvamClient struct {
	apiKey string
	url    string
	http   *http.Client
}

type SarvamOption func(*SarvamClient)

// WithSarvamURL overrides the API endpoint.
func WithSarvamURL(url string) SarvamOption {
	return func(c *SarvamClient) {
		c.url = url
	}
}

// WithSarvamHTTPClient overrides the HTTP client.
func WithSarvamHTTPClient(h *http.Client) SarvamOption {
	return func(c *SarvamClient) {
		c.http = h
	}
}

// NewSarvamClient creates a Sarvam client. An empty apiKey degrades every
// call to a structured error result without attempting the network.
func NewSarvamClient(apiKey string, opts ...SarvamOption) *SarvamClient {
	c := &SarvamClient{
		apiKey: apiKey,
		url:    defaultSarvamURL,
		http:   client.HTTP(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sarvamRequest struct {
	Input              string `json:"input"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
	SpeakerGender      string `json:"speaker_gender"`
	Mode               string `json:"mode"`
	Model              string `json:"model"`
}

type sarvamResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Translate translates text from sourceLang to targetLang. Failures are
// returned as structured results; no retry or fallback is attempted.
func (c *SarvamClient) Translate(ctx context.Context, text, sourceLang, targetLang string) Result {
	if c.apiKey == "" {
		return Result{Error: "Sarvam API key not set", Provider: ProviderSarvam}
	}

	payload, err := json.Marshal(sarvamRequest{
		Input:              text,
		SourceLanguageCode: sourceLang,
		TargetLanguageCode: targetLang,
		SpeakerGender:      "Female",
		Mode:               "formal",
		Model:              "mayura:v1",
	})
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Sarvam API: %v", err), Provider: ProviderSarvam}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Sarvam API: %v", err), Provider: ProviderSarvam}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-subscription-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Sarvam API: %v", err), Provider: ProviderSarvam}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Sarvam API: %v", err), Provider: ProviderSarvam}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Error: fmt.Sprintf("Sarvam API error: %s", body), Provider: ProviderSarvam}
	}

	var parsed sarvamResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{Error: fmt.Sprintf("Error calling Sarvam API: %v", err), Provider: ProviderSarvam}
	}
	return Result{TranslatedText: parsed.TranslatedText, Provider: ProviderSarvam}
}
