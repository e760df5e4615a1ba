package translation

// Provider tags reported in translation results.
const (
	ProviderNone   = "none"
	ProviderSarvam = "sarvam"
	ProviderGoogle = "google"
)

// Result is the normalized response shape for every translation backend.
// Backend failures are reported through the Error field rather than a Go
// error, so a failed call never aborts the calling agent's loop.
type Result struct {
	TranslatedText string `json:"translated_text,omitempty"`
	Provider       string `json:"provider,omitempty"`
	DetectedSource string `json:"detected_source_language,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Failed reports whether the backend call produced an error.
func (r Result) Failed() bool {
	return r.Error != ""
}
