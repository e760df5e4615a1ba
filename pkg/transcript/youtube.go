package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/vidscribe/vidscribe/internal/client"
)

const defaultTimedTextURL = "https://video.google.com/timedtext"

// defaultLanguage is requested first; caption tracks in other languages are
// tried only if the caller asks for them.
const defaultLanguage = "en"

var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
func ExtractVideoID(youtubeURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(youtubeURL)
	if m == nil {
		return "", fmt.Errorf("invalid YouTube URL or ID: %s", youtubeURL)
	}
	return m[1], nil
}

// Segment is one caption span.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is a video's caption track.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Client fetches caption tracks from the YouTube timedtext endpoint.
type Client struct {
	baseURL   string
	languages []string
	http      *http.Client
}

type ClientOption func(*Client)

// WithBaseURL overrides the timedtext endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLanguages sets the caption languages tried in order.
func WithLanguages(langs ...string) ClientOption {
	return func(c *Client) {
		if len(langs) > 0 {
			c.languages = langs
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   defaultTimedTextURL,
		languages: []string{defaultLanguage},
		http:      client.HTTP(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Value    string  `xml:",chardata"`
	} `xml:"text"`
}

// FetchURL extracts the video ID from a YouTube URL and fetches its
// transcript.
func (c *Client) FetchURL(ctx context.Context, youtubeURL string) (*Transcript, error) {
	videoID, err := ExtractVideoID(youtubeURL)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, videoID)
}

// Fetch retrieves the caption track for a video, trying the configured
// languages in order.
func (c *Client) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	for _, lang := range c.languages {
		tr, err := c.fetchLanguage(ctx, videoID, lang)
		if err != nil {
			return nil, err
		}
		if tr != nil {
			return tr, nil
		}
	}
	return nil, fmt.Errorf("no transcript available for video %s", videoID)
}

func (c *Client) fetchLanguage(ctx context.Context, videoID, lang string) (*Transcript, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching transcript: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript endpoint returned %d", resp.StatusCode)
	}
	// An empty body means no caption track for this language.
	if len(body) == 0 {
		return nil, nil
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}
	if len(doc.Texts) == 0 {
		return nil, nil
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		segments = append(segments, Segment{
			Text:     t.Value,
			Start:    t.Start,
			Duration: t.Duration,
		})
	}
	return &Transcript{Segments: segments, Language: lang}, nil
}
