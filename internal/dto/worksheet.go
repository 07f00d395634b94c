package dto

import (
	"time"

	"lessonforge/internal/domain"
)

// GenerateWorksheetRequest is the payload for creating a worksheet.
type GenerateWorksheetRequest struct {
	Topic         string   `json:"topic" example:"Travel"`
	Vocabulary    string   `json:"vocabulary" example:"airport, passport, luggage"`
	GrammarFocus  string   `json:"grammarFocus" example:"past simple"`
	Level         string   `json:"level" example:"B1"`
	SelectedTypes []string `json:"selectedTypes" example:"grammar,listening"`
	QuestionCount int      `json:"questionCount" example:"3"`
}

// ToDomain converts the request into validated domain preferences.
func (r *GenerateWorksheetRequest) ToDomain() (*domain.UserPreferences, error) {
	level, err := domain.ParseCEFRLevel(r.Level)
	if err != nil {
		return nil, err
	}

	types := make([]domain.ExerciseType, 0, len(r.SelectedTypes))
	for _, raw := range r.SelectedTypes {
		t, err := domain.ParseExerciseType(raw)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	prefs := &domain.UserPreferences{
		Topic:         r.Topic,
		Vocabulary:    r.Vocabulary,
		GrammarFocus:  r.GrammarFocus,
		Level:         level,
		SelectedTypes: types,
		QuestionCount: r.QuestionCount,
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// QuestionResponse is one exercise item as served to the client.
type QuestionResponse struct {
	QuestionText      string   `json:"questionText"`
	QuestionImage     string   `json:"questionImage,omitempty"`
	ImageState        string   `json:"imageState,omitempty"`
	AudioData         string   `json:"audioData,omitempty"`
	AudioState        string   `json:"audioState,omitempty"`
	Options           []string `json:"options,omitempty"`
	CorrectAnswer     string   `json:"correctAnswer"`
	Explanation       string   `json:"explanation,omitempty"`
	TargetPhrase      string   `json:"targetPhrase,omitempty"`
	PronunciationTips string   `json:"pronunciationTips,omitempty"`
}

// SectionResponse is one worksheet section as served to the client.
type SectionResponse struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Instruction string             `json:"instruction"`
	ContextText string             `json:"contextText,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
}

// WorksheetResponse is a full generated worksheet.
type WorksheetResponse struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	Level     string            `json:"level,omitempty"`
	Sections  []SectionResponse `json:"sections"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewWorksheetResponse maps a domain worksheet onto the wire shape.
func NewWorksheetResponse(content *domain.GeneratedContent) *WorksheetResponse {
	sections := make([]SectionResponse, 0, len(content.Sections))
	for _, s := range content.Sections {
		questions := make([]QuestionResponse, 0, len(s.Questions))
		for _, q := range s.Questions {
			questions = append(questions, QuestionResponse{
				QuestionText:      q.QuestionText,
				QuestionImage:     q.QuestionImage,
				ImageState:        string(q.ImageState),
				AudioData:         q.AudioData,
				AudioState:        string(q.AudioState),
				Options:           q.Options,
				CorrectAnswer:     q.CorrectAnswer,
				Explanation:       q.Explanation,
				TargetPhrase:      q.TargetPhrase,
				PronunciationTips: q.PronunciationTips,
			})
		}
		sections = append(sections, SectionResponse{
			ID:          s.ID,
			Type:        string(s.Type),
			Title:       s.Title,
			Instruction: s.Instruction,
			ContextText: s.ContextText,
			Questions:   questions,
		})
	}
	return &WorksheetResponse{
		ID:        content.ID,
		Topic:     content.Preferences.Topic,
		Level:     string(content.Preferences.Level),
		Sections:  sections,
		CreatedAt: content.CreatedAt,
	}
}

// SubmitWorksheetRequest is a student's completed worksheet.
type SubmitWorksheetRequest struct {
	StudentName string            `json:"studentName" example:"Mina"`
	Answers     map[string]string `json:"answers"`
}

// SubmissionResponse is a scored submission.
type SubmissionResponse struct {
	ID          string    `json:"id"`
	WorksheetID string    `json:"worksheetId"`
	StudentName string    `json:"studentName"`
	Correct     int       `json:"correct"`
	Total       int       `json:"total"`
	StarRating  int       `json:"starRating"`
	Feedback    string    `json:"feedback"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewSubmissionResponse maps a domain submission onto the wire shape.
func NewSubmissionResponse(sub *domain.Submission) *SubmissionResponse {
	return &SubmissionResponse{
		ID:          sub.ID,
		WorksheetID: sub.WorksheetID,
		StudentName: sub.StudentName,
		Correct:     sub.Correct,
		Total:       sub.Total,
		StarRating:  sub.StarRating,
		Feedback:    sub.Feedback,
		SubmittedAt: sub.SubmittedAt,
	}
}

// WordFeedbackResponse is one word verdict of a pronunciation evaluation.
type WordFeedbackResponse struct {
	Word   string `json:"word"`
	Status string `json:"status"`
	Score  int    `json:"score"`
}

// PronunciationResponse is the normalized pronunciation evaluation.
type PronunciationResponse struct {
	OverallScore      int                    `json:"overallScore"`
	AccuracyScore     int                    `json:"accuracyScore"`
	FluencyScore      int                    `json:"fluencyScore"`
	CompletenessScore int                    `json:"completenessScore"`
	Feedback          string                 `json:"feedback,omitempty"`
	WordFeedback      []WordFeedbackResponse `json:"wordFeedback"`
}

// NewPronunciationResponse maps a domain result onto the wire shape.
func NewPronunciationResponse(result *domain.PronunciationResult) *PronunciationResponse {
	words := make([]WordFeedbackResponse, 0, len(result.WordFeedback))
	for _, w := range result.WordFeedback {
		words = append(words, WordFeedbackResponse{
			Word:   w.Word,
			Status: string(w.Status),
			Score:  w.Score,
		})
	}
	return &PronunciationResponse{
		OverallScore:      result.OverallScore,
		AccuracyScore:     result.AccuracyScore,
		FluencyScore:      result.FluencyScore,
		CompletenessScore: result.CompletenessScore,
		Feedback:          result.Feedback,
		WordFeedback:      words,
	}
}
