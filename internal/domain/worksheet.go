package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExerciseType identifies the kind of exercise a section contains.
type ExerciseType string

const (
	ExerciseGrammar    ExerciseType = "grammar"
	ExerciseVocabulary ExerciseType = "vocabulary"
	ExerciseReading    ExerciseType = "reading"
	ExerciseListening  ExerciseType = "listening"
	ExerciseSpeaking   ExerciseType = "speaking"
)

// AllExerciseTypes lists every supported exercise type in canonical order.
var AllExerciseTypes = []ExerciseType{
	ExerciseGrammar,
	ExerciseVocabulary,
	ExerciseReading,
	ExerciseListening,
	ExerciseSpeaking,
}

// ParseExerciseType converts a user-supplied tag into an ExerciseType.
func ParseExerciseType(s string) (ExerciseType, error) {
	t := ExerciseType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllExerciseTypes {
		if t == known {
			return known, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown exercise type: %s", s))
}

// HasOptions reports whether questions of this type carry answer options.
// Speaking exercises are open-ended and have none.
func (t ExerciseType) HasOptions() bool {
	return t != ExerciseSpeaking
}

// NeedsImage reports whether questions of this type get a generated illustration.
func (t ExerciseType) NeedsImage() bool {
	return t == ExerciseVocabulary || t == ExerciseListening
}

// CEFRLevel is a Common European Framework proficiency tier.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// ParseCEFRLevel validates a level string. An empty string is allowed and
// means the teacher did not pin a level.
func ParseCEFRLevel(s string) (CEFRLevel, error) {
	l := CEFRLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case "", LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return l, nil
	}
	return "", NewValidationError(fmt.Sprintf("invalid CEFR level: %s", s))
}

// UserPreferences is the teacher's immutable generation request.
type UserPreferences struct {
	Topic         string
	Vocabulary    string // comma separated, may be empty
	GrammarFocus  string
	Level         CEFRLevel // optional
	SelectedTypes []ExerciseType
	QuestionCount int
}

// Validate checks the preference invariants from the data model.
func (p *UserPreferences) Validate() error {
	if len(p.SelectedTypes) == 0 {
		return NewValidationError("at least one exercise type must be selected")
	}
	seen := make(map[ExerciseType]bool, len(p.SelectedTypes))
	for _, t := range p.SelectedTypes {
		if seen[t] {
			return NewValidationError(fmt.Sprintf("duplicate exercise type: %s", t))
		}
		seen[t] = true
	}
	if p.QuestionCount < 1 || p.QuestionCount > 20 {
		return NewValidationError("question count must be between 1 and 20")
	}
	return nil
}

// EnrichmentState records the outcome of a best-effort enrichment step so the
// consumer can tell "not attempted" from "attempted and failed" from "ready".
type EnrichmentState string

const (
	EnrichmentNone   EnrichmentState = ""
	EnrichmentReady  EnrichmentState = "ready"
	EnrichmentFailed EnrichmentState = "failed"
)

// Question is a single exercise item within a section.
type Question struct {
	QuestionText     string
	QuestionImage    string // data URL, empty when absent
	ImageState       EnrichmentState
	ImageDescription string // spoken-only scene description, never rendered
	AudioData        string // base64 synthesized speech, empty when absent
	AudioState       EnrichmentState
	Options          []string // empty for speaking exercises
	CorrectAnswer    string
	Explanation      string

	// Speaking only.
	TargetPhrase      string
	PronunciationTips string
}

// Section is a themed group of questions of one exercise type.
type Section struct {
	ID          string
	Type        ExerciseType
	Title       string
	Instruction string
	ContextText string // reading passage; must never be set for listening
	Questions   []Question
}

// GeneratedContent is one fully generated worksheet. It is replaced wholesale
// on regeneration and never partially mutated after the pipeline hands it out.
type GeneratedContent struct {
	ID          string
	Preferences UserPreferences
	Sections    []Section
	CreatedAt   time.Time
}

// Submission is a student's completed worksheet, created at submit time.
type Submission struct {
	ID          string
	WorksheetID string
	StudentName string
	Correct     int
	Total       int
	StarRating  int
	Feedback    string
	Answers     map[string]string // question key -> chosen answer
	SubmittedAt time.Time
}

// Validate checks the submission before scoring.
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.StudentName) == "" {
		return NewValidationError("student name is required")
	}
	if s.WorksheetID == "" {
		return NewValidationError("worksheet id is required")
	}
	return nil
}

// WordStatus classifies a single word in pronunciation feedback.
type WordStatus string

const (
	WordCorrect   WordStatus = "correct"
	WordPartial   WordStatus = "partial"
	WordIncorrect WordStatus = "incorrect"
)

// WordFeedback is the per-word verdict of a pronunciation evaluation.
type WordFeedback struct {
	Word   string
	Status WordStatus
	Score  int // 0-100
}

// PronunciationResult is the post-processed evaluation of a recorded phrase.
// All scores are clamped to [0,100] and WordFeedback covers every word of the
// target phrase exactly once.
type PronunciationResult struct {
	OverallScore      int
	AccuracyScore     int
	FluencyScore      int
	CompletenessScore int
	Feedback          string
	WordFeedback      []WordFeedback
}
