package language

import "strings"

// CodeEnglishIndia is the locale-qualified code English maps to.
const CodeEnglishIndia = "en-IN"

// languageCodes maps the regional languages handled by the translation
// specialist, plus English, to locale-qualified codes. Languages outside this
// table get a lowercased generic code derived from their name.
var languageCodes = map[string]string{
	"Hindi":    "hi-IN",
	"Bengali":  "bn-IN",
	"Punjabi":  "pa-IN",
	"Gujarati": "gu-IN",
	"Tamil":    "ta-IN",
	"Telugu":   "te-IN",
	"Marathi":  "mr-IN",
	"Urdu":     "ur-IN",
	"English":  CodeEnglishIndia,
}

// indianLanguages is the fixed set routed to the regional translation
// specialist. English carries an Indian locale code but is not in this set.
var indianLanguages = map[string]bool{
	"Hindi":    true,
	"Bengali":  true,
	"Punjabi":  true,
	"Gujarati": true,
	"Tamil":    true,
	"Telugu":   true,
	"Marathi":  true,
	"Urdu":     true,
}

func codeFor(language string) string {
	if code, ok := languageCodes[language]; ok {
		return code
	}
	return strings.ToLower(language)
}

func isIndian(language string) bool {
	return indianLanguages[language]
}
