package translation

import (
	"context"
	"strings"

	"github.com/vidscribe/vidscribe/pkg/language"
)

// englishDominanceThreshold: mixed content whose English share exceeds this
// is treated as effectively English and left untranslated.
const englishDominanceThreshold = 0.60

// RegionalBackend is the specialist for Indian-subcontinent languages.
type RegionalBackend interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) Result
}

// GeneralBackend is the general-purpose backend with source auto-detection.
type GeneralBackend interface {
	Translate(ctx context.Context, text, targetLang string) Result
}

// Router decides whether translation is needed and which backend to use,
// given a detection result. A failed backend call is returned as-is; the
// router never falls back to the other backend.
type Router struct {
	regional RegionalBackend
	general  GeneralBackend
}

// NewRouter creates a translation router over the two backends.
func NewRouter(regional RegionalBackend, general GeneralBackend) *Router {
	return &Router{regional: regional, general: general}
}

// Translate routes text to the right backend. The decision procedure is
// evaluated top to bottom, first match wins:
//
//  1. English (Indian locale) or unknown primary: no translation.
//  2. Mixed with a dominant English share: effectively English, no
//     translation.
//  3. Mixed containing any English: general backend on the full text, since
//     it tolerates intra-sentence code-mixing better than the specialist.
//  4. Mixed with a regional language and no English: regional backend,
//     sourcing from the highest-confidence regional language.
//  5. Mixed, no English, no regional language: general backend.
//  6. Regional primary: regional backend.
//  7. Everything else: general backend.
func (r *Router) Translate(ctx context.Context, text string, det language.Detection) Result {
	if det.Code == language.CodeEnglishIndia || det.Code == language.Unknown {
		return Result{TranslatedText: text, Provider: ProviderNone}
	}

	if det.IsMixed && len(det.Languages) > 0 {
		var (
			hasEnglish      bool
			englishDominant bool
			bestRegional    *language.Candidate
		)
		for i := range det.Languages {
			cand := &det.Languages[i]
			if isEnglishCode(cand.Code) {
				hasEnglish = true
				if cand.Confidence > englishDominanceThreshold {
					englishDominant = true
				}
			}
			if cand.IsIndian && (bestRegional == nil || cand.Confidence > bestRegional.Confidence) {
				bestRegional = cand
			}
		}

		switch {
		case englishDominant:
			return Result{TranslatedText: text, Provider: ProviderNone}
		case hasEnglish:
			return r.general.Translate(ctx, text, DefaultGeneralTarget)
		case bestRegional != nil:
			return r.regional.Translate(ctx, text, bestRegional.Code, DefaultRegionalTarget)
		default:
			return r.general.Translate(ctx, text, DefaultGeneralTarget)
		}
	}

	if det.IsIndian {
		return r.regional.Translate(ctx, text, det.Code, DefaultRegionalTarget)
	}
	return r.general.Translate(ctx, text, DefaultGeneralTarget)
}

func isEnglishCode(code string) bool {
	return code == language.CodeEnglishIndia || strings.HasPrefix(code, "en-")
}
