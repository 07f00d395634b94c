package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lessonforge/internal/cache"
	"lessonforge/internal/config"
	"lessonforge/internal/domain"
	"lessonforge/internal/logger"
	"lessonforge/internal/retry"
	"lessonforge/internal/util"
)

const (
	generationTemperature = 0.8
	worksheetCacheTTL     = 24 * time.Hour
)

// WorksheetService runs the generation pipeline and serves stored worksheets.
type WorksheetService interface {
	Generate(ctx context.Context, prefs *domain.UserPreferences) (*domain.GeneratedContent, error)
	GetByID(ctx context.Context, id string) (*domain.GeneratedContent, error)
}

type worksheetServiceImpl struct {
	generator domain.ContentGenerator
	images    *ImageEnricher
	audio     *AudioEnricher
	repo      domain.WorksheetRepository
	cache     domain.Cache
	cfg       config.GeminiConfig
	retryCfg  retry.Config
	logger    *zap.Logger
}

func NewWorksheetService(
	generator domain.ContentGenerator,
	images *ImageEnricher,
	audio *AudioEnricher,
	repo domain.WorksheetRepository,
	cacheClient domain.Cache,
	cfg config.GeminiConfig,
) WorksheetService {
	return &worksheetServiceImpl{
		generator: generator,
		images:    images,
		audio:     audio,
		repo:      repo,
		cache:     cacheClient,
		cfg:       cfg,
		retryCfg:  retry.DefaultConfig,
		logger:    logger.Get(),
	}
}

// generatedWorksheet mirrors the response schema the model is constrained to.
type generatedWorksheet struct {
	Sections []generatedSection `json:"sections"`
}

type generatedSection struct {
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Instruction string              `json:"instruction"`
	ContextText string              `json:"contextText"`
	Questions   []generatedQuestion `json:"questions"`
}

type generatedQuestion struct {
	QuestionText      string   `json:"questionText"`
	ImageDescription  string   `json:"imageDescription"`
	Options           []string `json:"options"`
	CorrectAnswer     string   `json:"correctAnswer"`
	Explanation       string   `json:"explanation"`
	TargetPhrase      string   `json:"targetPhrase"`
	PronunciationTips string   `json:"pronunciationTips"`
}

// Generate runs the full pipeline: sample vocabulary, build the prompt, call
// the model with bounded retry, parse, repair, enrich with images and audio,
// then persist. Enrichment failures degrade individual questions; everything
// before enrichment fails the whole call.
func (s *worksheetServiceImpl) Generate(ctx context.Context, prefs *domain.UserPreferences) (*domain.GeneratedContent, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	vocabulary := SampleVocabulary(prefs.Vocabulary, s.cfg.VocabSampleSize)
	prompt := BuildPrompt(prefs, vocabulary)

	start := time.Now()
	raw, err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) (string, error) {
		return s.generator.GenerateWorksheet(ctx, prompt, generationTemperature)
	})
	if err != nil {
		return nil, err
	}

	sections, err := s.parseSections(raw, prefs)
	if err != nil {
		return nil, err
	}
	sections = RepairSections(sections)

	// Image fan-out and sequential audio depend only on the repaired
	// sections, not on each other, so they run side by side.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.images.Enrich(gctx, sections)
		return nil
	})
	g.Go(func() error {
		s.audio.Enrich(gctx, sections)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := &domain.GeneratedContent{
		ID:          util.NewULID(),
		Preferences: *prefs,
		Sections:    sections,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, content); err != nil {
		return nil, domain.NewInternalError("failed to save worksheet", err)
	}
	s.cacheWorksheet(ctx, content)

	s.logger.Info("worksheet generated",
		zap.String("worksheetId", content.ID),
		zap.Int("sections", len(content.Sections)),
		zap.Duration("elapsed", time.Since(start)))
	return content, nil
}

// parseSections decodes model output into domain sections. Malformed JSON is
// fatal for the call; a well formed document without sections yields an empty
// worksheet, which downstream stages tolerate.
func (s *worksheetServiceImpl) parseSections(raw string, prefs *domain.UserPreferences) ([]domain.Section, error) {
	var parsed generatedWorksheet
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, domain.NewParseError(err)
	}
	if parsed.Sections == nil {
		s.logger.Warn("model response has no sections array, using empty worksheet")
		return []domain.Section{}, nil
	}

	sections := make([]domain.Section, 0, len(parsed.Sections))
	for _, gs := range parsed.Sections {
		sectionType, err := domain.ParseExerciseType(gs.Type)
		if err != nil {
			s.logger.Warn("skipping section with unknown type", zap.String("type", gs.Type))
			continue
		}

		section := domain.Section{
			ID:          util.NewULID(),
			Type:        sectionType,
			Title:       gs.Title,
			Instruction: gs.Instruction,
			ContextText: gs.ContextText,
			Questions:   make([]domain.Question, 0, len(gs.Questions)),
		}
		for _, gq := range gs.Questions {
			section.Questions = append(section.Questions, domain.Question{
				QuestionText:      gq.QuestionText,
				ImageDescription:  gq.ImageDescription,
				Options:           gq.Options,
				CorrectAnswer:     gq.CorrectAnswer,
				Explanation:       gq.Explanation,
				TargetPhrase:      gq.TargetPhrase,
				PronunciationTips: gq.PronunciationTips,
			})
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// GetByID serves a worksheet from cache, falling back to the repository and
// backfilling the cache on a miss.
func (s *worksheetServiceImpl) GetByID(ctx context.Context, id string) (*domain.GeneratedContent, error) {
	key := worksheetCacheKey(id)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var content domain.GeneratedContent
			if err := json.Unmarshal([]byte(cached), &content); err == nil {
				return &content, nil
			}
			s.logger.Warn("corrupt worksheet cache entry", zap.String("worksheetId", id))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("worksheet cache lookup failed", zap.Error(err))
		}
	}

	content, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheWorksheet(ctx, content)
	return content, nil
}

func (s *worksheetServiceImpl) cacheWorksheet(ctx context.Context, content *domain.GeneratedContent) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(content)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, worksheetCacheKey(content.ID), string(payload), worksheetCacheTTL); err != nil {
		s.logger.Warn("worksheet cache store failed", zap.Error(err))
	}
}

func worksheetCacheKey(id string) string {
	return cache.GenerateCacheKey("worksheet", "content", id)
}
