package domain

import (
	"context"
	"time"
)

// ContentGenerator produces structured worksheet JSON from a prompt. The
// returned string is the raw JSON document; parsing belongs to the caller.
type ContentGenerator interface {
	GenerateWorksheet(ctx context.Context, prompt string, temperature float32) (string, error)
}

// ImageGenerator produces a single illustration for a subject phrase.
// The result is raw image bytes plus the mime type.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, subject string) ([]byte, string, error)
}

// SpeechSynthesizer turns a narration script into audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, script string) ([]byte, error)
}

// PronunciationScorer evaluates a recorded clip against a target phrase.
// Implementations return raw, unclamped model output; post-processing is the
// service's job.
type PronunciationScorer interface {
	ScorePronunciation(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*PronunciationResult, error)
}

// ReportAnalyst turns a scored submission into teacher-facing narrative
// feedback. Best effort: callers must tolerate failure.
type ReportAnalyst interface {
	AnalyzeSubmission(ctx context.Context, sub *Submission, sections []Section) (string, error)
}

// SubmissionSink delivers a submission to an external endpoint with
// fire-and-forget semantics.
type SubmissionSink interface {
	Deliver(ctx context.Context, sub *Submission) error
}

// Cache is the key-value cache the services use (redis in production).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// WorksheetRepository persists generated worksheets.
type WorksheetRepository interface {
	Save(ctx context.Context, content *GeneratedContent) error
	GetByID(ctx context.Context, id string) (*GeneratedContent, error)
}

// SubmissionRepository persists student submissions.
type SubmissionRepository interface {
	Save(ctx context.Context, sub *Submission) error
	ListByWorksheet(ctx context.Context, worksheetID string) ([]*Submission, error)
}
