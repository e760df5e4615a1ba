package translation

import (
	"context"
	"testing"

	"github.com/vidscribe/vidscribe/pkg/language"
)

// fakeRegional records the source language it was invoked with.
type fakeRegional struct {
	calls  int
	source string
}

func (f *fakeRegional) Translate(ctx context.Context, text, sourceLang, targetLang string) Result {
	f.calls++
	f.source = sourceLang
	return Result{TranslatedText: "regional:" + text, Provider: ProviderSarvam}
}

type fakeGeneral struct {
	calls int
	text  string
}

func (f *fakeGeneral) Translate(ctx context.Context, text, targetLang string) Result {
	f.calls++
	f.text = text
	return Result{TranslatedText: "general:" + text, Provider: ProviderGoogle}
}

func TestRouterTranslate(t *testing.T) {
	ctx := context.Background()

	t.Run("english primary needs no translation", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "plain english", language.Detection{
			Language: "English", Code: "en-IN",
		})
		if got.Provider != ProviderNone || got.TranslatedText != "plain english" {
			t.Errorf("got %+v, want untranslated none result", got)
		}
		if regional.calls+general.calls != 0 {
			t.Error("no backend should be invoked")
		}
	})

	t.Run("unknown primary needs no translation", func(t *testing.T) {
		r := NewRouter(&fakeRegional{}, &fakeGeneral{})
		got := r.Translate(ctx, "", language.Detection{
			Language: language.Unknown, Code: language.Unknown,
		})
		if got.Provider != ProviderNone {
			t.Errorf("provider = %q, want %q", got.Provider, ProviderNone)
		}
	})

	t.Run("mixed with dominant english stays untranslated", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "mostly english text", language.Detection{
			Language: "English", Code: "en-IN", IsMixed: true,
			Languages: []language.Candidate{
				{Language: "English", Code: "en-IN", Confidence: 0.65},
				{Language: "Hindi", Code: "hi-IN", IsIndian: true, Confidence: 0.30},
			},
		})
		if got.Provider != ProviderNone || got.TranslatedText != "mostly english text" {
			t.Errorf("got %+v, want untranslated none result", got)
		}
		if regional.calls+general.calls != 0 {
			t.Error("no backend should be invoked")
		}
	})

	t.Run("mixed with weaker english goes to general backend", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "hinglish sentence", language.Detection{
			Language: "Hindi", Code: "hi-IN", IsIndian: true, IsMixed: true,
			Languages: []language.Candidate{
				{Language: "Hindi", Code: "hi-IN", IsIndian: true, Confidence: 0.55},
				{Language: "English", Code: "en-IN", Confidence: 0.40},
			},
		})
		if got.Provider != ProviderGoogle {
			t.Errorf("provider = %q, want %q", got.Provider, ProviderGoogle)
		}
		if general.text != "hinglish sentence" {
			t.Errorf("general backend got %q, want the full text", general.text)
		}
		if regional.calls != 0 {
			t.Error("regional backend must not be invoked when English is present")
		}
	})

	t.Run("mixed regional picks highest-confidence source", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "mixed regional", language.Detection{
			Language: "Hindi", Code: "hi-IN", IsIndian: true, IsMixed: true,
			Languages: []language.Candidate{
				{Language: "Hindi", Code: "hi-IN", IsIndian: true, Confidence: 0.5},
				{Language: "Bengali", Code: "bn-IN", IsIndian: true, Confidence: 0.2},
			},
		})
		if got.Provider != ProviderSarvam {
			t.Errorf("provider = %q, want %q", got.Provider, ProviderSarvam)
		}
		if regional.source != "hi-IN" {
			t.Errorf("source = %q, want the 0.5-confidence language hi-IN", regional.source)
		}
		if general.calls != 0 {
			t.Error("general backend must not be invoked")
		}
	})

	t.Run("mixed with neither english nor regional goes general", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "franco-german", language.Detection{
			Language: "French", Code: "french", IsMixed: true,
			Languages: []language.Candidate{
				{Language: "French", Code: "french", Confidence: 0.5},
				{Language: "German", Code: "german", Confidence: 0.4},
			},
		})
		if got.Provider != ProviderGoogle {
			t.Errorf("provider = %q, want %q", got.Provider, ProviderGoogle)
		}
		if regional.calls != 0 {
			t.Error("regional backend must not be invoked")
		}
	})

	t.Run("regional primary goes to regional backend", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "shuddh hindi", language.Detection{
			Language: "Hindi", Code: "hi-IN", IsIndian: true,
			Languages: []language.Candidate{
				{Language: "Hindi", Code: "hi-IN", IsIndian: true, Confidence: 0.92},
			},
		})
		if got.Provider != ProviderSarvam {
			t.Errorf("provider = %q, want %q", got.Provider, ProviderSarvam)
		}
		if regional.source != "hi-IN" {
			t.Errorf("source = %q, want hi-IN", regional.source)
		}
	})

	t.Run("other primary goes to general backend", func(t *testing.T) {
		regional, general := &fakeRegional{}, &fakeGeneral{}
		r := NewRouter(regional, general)

		got := r.Translate(ctx, "bonjour", language.Detection{
			Language: "French", Code: "french",
			Languages: []language.Candidate{
				{Language: "French", Code: "french", Confidence: 0.97},
			},
		})
		if got.Provider != ProviderGoogle {
			t.Errorf("provider = %q, want %q", got.Provider, ProviderGoogle)
		}
		if regional.calls != 0 {
			t.Error("regional backend must not be invoked")
		}
	})
}
