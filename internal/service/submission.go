package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lessonforge/internal/domain"
	"lessonforge/internal/logger"
	"lessonforge/internal/util"
)

const sinkDeliveryTimeout = 30 * time.Second

// SubmissionService scores a completed worksheet, persists the result and
// reports it to the external sheet endpoint.
type SubmissionService interface {
	Submit(ctx context.Context, worksheetID, studentName string, answers map[string]string) (*domain.Submission, error)
	ListByWorksheet(ctx context.Context, worksheetID string) ([]*domain.Submission, error)
}

type submissionServiceImpl struct {
	worksheets domain.WorksheetRepository
	repo       domain.SubmissionRepository
	sink       domain.SubmissionSink
	analyst    domain.ReportAnalyst
	logger     *zap.Logger
}

// NewSubmissionService wires the scoring flow. sink and analyst may be nil
// when the corresponding integration is not configured.
func NewSubmissionService(
	worksheets domain.WorksheetRepository,
	repo domain.SubmissionRepository,
	sink domain.SubmissionSink,
	analyst domain.ReportAnalyst,
) SubmissionService {
	return &submissionServiceImpl{
		worksheets: worksheets,
		repo:       repo,
		sink:       sink,
		analyst:    analyst,
		logger:     logger.Get(),
	}
}

// AnswerKey builds the map key under which a student's answer for one
// question is stored: the section id plus the question's index.
func AnswerKey(sectionID string, questionIndex int) string {
	return fmt.Sprintf("%s:%d", sectionID, questionIndex)
}

// Submit scores the answers against the stored worksheet, saves the
// submission and hands it to the sheet endpoint without waiting for delivery.
func (s *submissionServiceImpl) Submit(ctx context.Context, worksheetID, studentName string, answers map[string]string) (*domain.Submission, error) {
	sub := &domain.Submission{
		ID:          util.NewULID(),
		WorksheetID: worksheetID,
		StudentName: strings.TrimSpace(studentName),
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	worksheet, err := s.worksheets.GetByID(ctx, worksheetID)
	if err != nil {
		return nil, err
	}

	sub.Correct, sub.Total = scoreAnswers(worksheet.Sections, answers)
	sub.StarRating = starRating(sub.Correct, sub.Total)
	sub.Feedback = s.buildFeedback(ctx, sub, worksheet.Sections)

	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, domain.NewInternalError("failed to save submission", err)
	}

	s.deliverAsync(ctx, sub)

	s.logger.Info("submission scored",
		zap.String("submissionId", sub.ID),
		zap.String("worksheetId", worksheetID),
		zap.Int("correct", sub.Correct),
		zap.Int("total", sub.Total))
	return sub, nil
}

func (s *submissionServiceImpl) ListByWorksheet(ctx context.Context, worksheetID string) ([]*domain.Submission, error) {
	return s.repo.ListByWorksheet(ctx, worksheetID)
}

// scoreAnswers counts correct answers over every option-bearing question.
// Speaking questions have no scored answer and do not count toward the total.
func scoreAnswers(sections []domain.Section, answers map[string]string) (correct, total int) {
	for _, section := range sections {
		if !section.Type.HasOptions() {
			continue
		}
		for i, q := range section.Questions {
			if len(q.Options) == 0 {
				continue
			}
			total++
			given, ok := answers[AnswerKey(section.ID, i)]
			if ok && strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(q.CorrectAnswer)) {
				correct++
			}
		}
	}
	return correct, total
}

func starRating(correct, total int) int {
	if total == 0 {
		return 0
	}
	ratio := float64(correct) / float64(total)
	switch {
	case ratio >= 0.9:
		return 5
	case ratio >= 0.75:
		return 4
	case ratio >= 0.5:
		return 3
	case ratio >= 0.25:
		return 2
	default:
		return 1
	}
}

// buildFeedback prefers the report analyst's narrative when one is configured
// and answers in time; otherwise a plain score summary.
func (s *submissionServiceImpl) buildFeedback(ctx context.Context, sub *domain.Submission, sections []domain.Section) string {
	fallback := defaultFeedback(sub.Correct, sub.Total)
	if s.analyst == nil {
		return fallback
	}

	analysis, err := s.analyst.AnalyzeSubmission(ctx, sub, sections)
	if err != nil || strings.TrimSpace(analysis) == "" {
		if err != nil {
			s.logger.Warn("report analysis failed, using default feedback", zap.Error(err))
		}
		return fallback
	}
	return analysis
}

func defaultFeedback(correct, total int) string {
	if total == 0 {
		return "No scorable questions in this worksheet."
	}
	ratio := float64(correct) / float64(total)
	switch {
	case ratio >= 0.9:
		return fmt.Sprintf("Excellent work! %d of %d correct.", correct, total)
	case ratio >= 0.5:
		return fmt.Sprintf("Good effort, %d of %d correct. Review the explanations for the ones you missed.", correct, total)
	default:
		return fmt.Sprintf("%d of %d correct. Go through each explanation and try the worksheet again.", correct, total)
	}
}

// deliverAsync reports the submission to the sheet endpoint in the background.
// Delivery is fire and forget: the student's result never waits on it and a
// failure is only logged. The detached context survives the request ending.
func (s *submissionServiceImpl) deliverAsync(ctx context.Context, sub *domain.Submission) {
	if s.sink == nil {
		return
	}
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkDeliveryTimeout)
	go func() {
		defer cancel()
		if err := s.sink.Deliver(detached, sub); err != nil {
			s.logger.Warn("sheet delivery failed",
				zap.String("submissionId", sub.ID),
				zap.Error(err))
		}
	}()
}
