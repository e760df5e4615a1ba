package language

import (
	"sort"

	"github.com/pemistahl/lingua-go"
)

// Unknown is the sentinel language/code reported for empty input.
const Unknown = "unknown"

// Mixed-content thresholds: content is mixed when no language dominates
// (top below 0.70) or a strong secondary signal is present (second above
// 0.25). Candidates below the floor are treated as classifier noise.
const (
	mixedTopThreshold    = 0.70
	mixedSecondThreshold = 0.25
	candidateFloor       = 0.10
	maxMixedCandidates   = 3
)

// Candidate is one detected language with its classifier confidence.
type Candidate struct {
	Language   string  `json:"language"`
	IsIndian   bool    `json:"is_indian"`
	Code       string  `json:"language_code"`
	Confidence float64 `json:"confidence"`
}

// Detection is the result of classifying a text span. The primary fields are
// always taken from the highest-confidence candidate; Languages carries the
// ranked co-present languages when the content is mixed.
type Detection struct {
	Language  string      `json:"language"`
	IsIndian  bool        `json:"is_indian"`
	Code      string      `json:"language_code"`
	IsMixed   bool        `json:"is_mixed"`
	Languages []Candidate `json:"languages"`
}

// confidence is one per-language classifier score. Scores are independent
// per-language confidences and need not sum to 1.
type confidence struct {
	language string
	value    float64
}

type classifierFunc func(text string) []confidence

// Detector classifies text into one dominant language plus, for ambiguous
// input, a ranked set of co-present languages.
type Detector struct {
	classify classifierFunc
}

// NewDetector builds a detector backed by the lingua classifier over all of
// its supported languages.
func NewDetector() *Detector {
	ld := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &Detector{
		classify: func(text string) []confidence {
			values := ld.ComputeLanguageConfidenceValues(text)
			scores := make([]confidence, 0, len(values))
			for _, cv := range values {
				scores = append(scores, confidence{
					language: cv.Language().String(),
					value:    cv.Value(),
				})
			}
			return scores
		},
	}
}

// Detect classifies text. Empty input yields the unknown sentinel, not an
// error.
func (d *Detector) Detect(text string) Detection {
	if text == "" {
		return unknownDetection()
	}

	scores := d.classify(text)
	if len(scores) == 0 {
		return unknownDetection()
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].value > scores[j].value
	})

	var result Detection
	if len(scores) >= 2 &&
		(scores[0].value < mixedTopThreshold || scores[1].value > mixedSecondThreshold) {
		result.IsMixed = true
		for i, s := range scores {
			if i == maxMixedCandidates {
				break
			}
			if s.value > candidateFloor {
				result.Languages = append(result.Languages, Candidate{
					Language:   s.language,
					IsIndian:   isIndian(s.language),
					Code:       codeFor(s.language),
					Confidence: s.value,
				})
			}
		}
	}

	primary := scores[0]
	result.Language = primary.language
	result.IsIndian = isIndian(primary.language)
	result.Code = codeFor(primary.language)

	if len(result.Languages) == 0 {
		result.Languages = []Candidate{{
			Language:   result.Language,
			IsIndian:   result.IsIndian,
			Code:       result.Code,
			Confidence: primary.value,
		}}
	}
	return result
}

func unknownDetection() Detection {
	return Detection{
		Language:  Unknown,
		Code:      Unknown,
		Languages: []Candidate{},
	}
}
