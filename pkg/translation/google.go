package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vidscribe/vidscribe/internal/client"
)

const defaultGoogleURL = "https://translation.googleapis.com/language/translate/v2"

// DefaultGeneralTarget is the target language for the general-purpose
// backend.
const DefaultGeneralTarget = "en"

// GoogleClient calls the Google Cloud Translation v2 API, the
// general-purpose backend.
type GoogleClient struct {
	apiKey string
	url    string
	http   *http.Client
}

type GoogleOption func(*GoogleClient)

// WithGoogleURL overrides the API endpoint.
func WithGoogleURL(url string) GoogleOption {
	return func(c *GoogleClient) {
		c.url = url
	}
}

// WithGoogleHTTPClient overrides the HTTP client.
func WithGoogleHTTPClient(h *http.Client) GoogleOption {
	return func(c *GoogleClient) {
		c.http = h
	}
}

// NewGoogleClient creates a Google Translation client. An empty apiKey
// degrades every call to a structured error result without attempting the
// network.
func NewGoogleClient(apiKey string, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		apiKey: apiKey,
		url:    defaultGoogleURL,
		http:   client.HTTP(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text into targetLang, letting the backend detect the
// source language. Failures are returned as structured results; no retry or
// fallback is attempted.
func (c *GoogleClient) Translate(ctx context.Context, text, targetLang string) Result {
	if c.apiKey == "" {
		return Result{Error: "Google API key not set", Provider: ProviderGoogle}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", text)
	params.Set("target", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Google Translation API: %v", err), Provider: ProviderGoogle}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Google Translation API: %v", err), Provider: ProviderGoogle}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Error: fmt.Sprintf("Error calling Google Translation API: %v", err), Provider: ProviderGoogle}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Error: fmt.Sprintf("Google API error: %s", body), Provider: ProviderGoogle}
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{Error: fmt.Sprintf("Error calling Google Translation API: %v", err), Provider: ProviderGoogle}
	}
	if len(parsed.Data.Translations) == 0 {
		return Result{Error: "Google API error: empty translation response", Provider: ProviderGoogle}
	}
	first := parsed.Data.Translations[0]
	return Result{
		TranslatedText: first.TranslatedText,
		DetectedSource: first.DetectedSourceLanguage,
		Provider:       ProviderGoogle,
	}
}
