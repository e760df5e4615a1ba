package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vidscribe/vidscribe/pkg/agent"
	"github.com/vidscribe/vidscribe/pkg/transcript"
)

// TranscriptFetcher retrieves a video's caption track.
type TranscriptFetcher interface {
	FetchURL(ctx context.Context, youtubeURL string) (*transcript.Transcript, error)
}

// TextProcessor detects and translates one text span synchronously.
type TextProcessor interface {
	ProcessText(ctx context.Context, text, conversationID string) agent.TranslationOutcome
}

// Documenter analyzes transcript segments and produces a summary.
type Documenter interface {
	StartProcessing() string
	ProcessTranscript(ctx context.Context, segments []agent.SegmentInput, conversationID string) (*agent.DocumentationResult, error)
}

// ProcessedSegment is one caption span after language processing.
type ProcessedSegment struct {
	transcript.Segment
	ProcessedText string                   `json:"processed_text"`
	Translation   agent.TranslationOutcome `json:"translation_info"`
}

// VideoSummary is the aggregate result for one video.
type VideoSummary struct {
	URL                string                     `json:"youtube_url"`
	TranscriptLanguage string                     `json:"transcript_language"`
	Segments           []ProcessedSegment         `json:"processed_segments"`
	Documentation      *agent.DocumentationResult `json:"documentation"`
	ConversationID     string                     `json:"conversation_id"`
}

// Processor runs the transcript through translation and documentation.
type Processor struct {
	transcripts TranscriptFetcher
	translator  TextProcessor
	docs        Documenter
	logger      *slog.Logger
}

func NewProcessor(transcripts TranscriptFetcher, translator TextProcessor, docs Documenter) *Processor {
	return &Processor{
		transcripts: transcripts,
		translator:  translator,
		docs:        docs,
		logger:      slog.Default(),
	}
}

// ProcessVideo fetches the transcript, translates each segment where the
// routing decision calls for it, and hands the processed text to the
// documentation agent.
func (p *Processor) ProcessVideo(ctx context.Context, youtubeURL string) (*VideoSummary, error) {
	p.logger.Info("processing video", "url", youtubeURL)

	tr, err := p.transcripts.FetchURL(ctx, youtubeURL)
	if err != nil {
		return nil, fmt.Errorf("fetching transcript: %w", err)
	}

	conversationID := p.docs.StartProcessing()

	processed := make([]ProcessedSegment, 0, len(tr.Segments))
	inputs := make([]agent.SegmentInput, 0, len(tr.Segments))
	for _, seg := range tr.Segments {
		outcome := p.translator.ProcessText(ctx, seg.Text, conversationID)
		processed = append(processed, ProcessedSegment{
			Segment:       seg,
			ProcessedText: outcome.FinalText,
			Translation:   outcome,
		})
		inputs = append(inputs, agent.SegmentInput{
			Text:  outcome.FinalText,
			Start: seg.Start,
		})
	}

	doc, err := p.docs.ProcessTranscript(ctx, inputs, conversationID)
	if err != nil {
		return nil, fmt.Errorf("documenting transcript: %w", err)
	}

	return &VideoSummary{
		URL:                youtubeURL,
		TranscriptLanguage: tr.Language,
		Segments:           processed,
		Documentation:      doc,
		ConversationID:     conversationID,
	}, nil
}
