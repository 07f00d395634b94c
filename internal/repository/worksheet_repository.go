package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lessonforge/internal/domain"
	"lessonforge/internal/repository/models"
)

// WorksheetDatabaseAdapter implements domain.WorksheetRepository using sqlx.DB
type WorksheetDatabaseAdapter struct {
	db *sqlx.DB
}

// NewWorksheetDatabaseAdapter creates a new instance of WorksheetDatabaseAdapter
func NewWorksheetDatabaseAdapter(db *sqlx.DB) domain.WorksheetRepository {
	return &WorksheetDatabaseAdapter{db: db}
}

// Save implements domain.WorksheetRepository
func (a *WorksheetDatabaseAdapter) Save(ctx context.Context, content *domain.GeneratedContent) error {
	model, err := toModelWorksheet(content)
	if err != nil {
		return err
	}

	query := `INSERT INTO worksheets (
		id, topic, vocabulary, grammar_focus, level,
		selected_types, question_count, sections, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	)`

	_, err = a.db.ExecContext(ctx, query,
		model.ID,
		model.Topic,
		model.Vocabulary,
		model.GrammarFocus,
		model.Level,
		model.SelectedTypes,
		model.QuestionCount,
		model.Sections,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save worksheet: %w", err)
	}
	return nil
}

// GetByID implements domain.WorksheetRepository
func (a *WorksheetDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.GeneratedContent, error) {
	var model models.Worksheet
	query := `SELECT
		id, topic, vocabulary, grammar_focus, level,
		selected_types, question_count, sections, created_at
	FROM worksheets
	WHERE id = $1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewWorksheetNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get worksheet by ID %s: %w", id, err)
	}
	return toDomainWorksheet(&model)
}

func toModelWorksheet(content *domain.GeneratedContent) (*models.Worksheet, error) {
	if content == nil {
		return nil, fmt.Errorf("cannot save nil worksheet")
	}
	sections, err := json.Marshal(content.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sections: %w", err)
	}

	types := make(models.StringSlice, 0, len(content.Preferences.SelectedTypes))
	for _, t := range content.Preferences.SelectedTypes {
		types = append(types, string(t))
	}

	return &models.Worksheet{
		ID:            content.ID,
		Topic:         content.Preferences.Topic,
		Vocabulary:    content.Preferences.Vocabulary,
		GrammarFocus:  content.Preferences.GrammarFocus,
		Level:         string(content.Preferences.Level),
		SelectedTypes: types,
		QuestionCount: content.Preferences.QuestionCount,
		Sections:      sections,
		CreatedAt:     content.CreatedAt,
	}, nil
}

func toDomainWorksheet(model *models.Worksheet) (*domain.GeneratedContent, error) {
	var sections []domain.Section
	if len(model.Sections) > 0 {
		if err := json.Unmarshal(model.Sections, &sections); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sections for worksheet %s: %w", model.ID, err)
		}
	}

	types := make([]domain.ExerciseType, 0, len(model.SelectedTypes))
	for _, t := range model.SelectedTypes {
		types = append(types, domain.ExerciseType(t))
	}

	return &domain.GeneratedContent{
		ID: model.ID,
		Preferences: domain.UserPreferences{
			Topic:         model.Topic,
			Vocabulary:    model.Vocabulary,
			GrammarFocus:  model.GrammarFocus,
			Level:         domain.CEFRLevel(model.Level),
			SelectedTypes: types,
			QuestionCount: model.QuestionCount,
		},
		Sections:  sections,
		CreatedAt: model.CreatedAt,
	}, nil
}
