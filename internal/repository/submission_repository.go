package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lessonforge/internal/domain"
	"lessonforge/internal/repository/models"
)

// SubmissionDatabaseAdapter implements domain.SubmissionRepository using sqlx.DB
type SubmissionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSubmissionDatabaseAdapter creates a new instance of SubmissionDatabaseAdapter
func NewSubmissionDatabaseAdapter(db *sqlx.DB) domain.SubmissionRepository {
	return &SubmissionDatabaseAdapter{db: db}
}

// Save implements domain.SubmissionRepository
func (a *SubmissionDatabaseAdapter) Save(ctx context.Context, sub *domain.Submission) error {
	if sub == nil {
		return fmt.Errorf("cannot save nil submission")
	}

	query := `INSERT INTO submissions (
		id, worksheet_id, student_name, correct, total,
		star_rating, feedback, answers, submitted_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	)`

	_, err := a.db.ExecContext(ctx, query,
		sub.ID,
		sub.WorksheetID,
		sub.StudentName,
		sub.Correct,
		sub.Total,
		sub.StarRating,
		sub.Feedback,
		models.StringMap(sub.Answers),
		sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// ListByWorksheet implements domain.SubmissionRepository
func (a *SubmissionDatabaseAdapter) ListByWorksheet(ctx context.Context, worksheetID string) ([]*domain.Submission, error) {
	var rows []models.Submission
	query := `SELECT
		id, worksheet_id, student_name, correct, total,
		star_rating, feedback, answers, submitted_at
	FROM submissions
	WHERE worksheet_id = $1
	ORDER BY submitted_at DESC`

	if err := a.db.SelectContext(ctx, &rows, query, worksheetID); err != nil {
		return nil, fmt.Errorf("failed to list submissions for worksheet %s: %w", worksheetID, err)
	}

	subs := make([]*domain.Submission, 0, len(rows))
	for i := range rows {
		subs = append(subs, toDomainSubmission(&rows[i]))
	}
	return subs, nil
}

func toDomainSubmission(model *models.Submission) *domain.Submission {
	return &domain.Submission{
		ID:          model.ID,
		WorksheetID: model.WorksheetID,
		StudentName: model.StudentName,
		Correct:     model.Correct,
		Total:       model.Total,
		StarRating:  model.StarRating,
		Feedback:    model.Feedback,
		Answers:     map[string]string(model.Answers),
		SubmittedAt: model.SubmittedAt,
	}
}
