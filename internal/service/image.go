package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lessonforge/internal/domain"
	"lessonforge/internal/logger"
	"lessonforge/internal/retry"
)

// ImageEnricher fans out illustration requests for the question types that
// carry one. Enrichment is best effort: a failed question ends up with
// ImageState failed and no image, never an error from Enrich.
type ImageEnricher struct {
	generator domain.ImageGenerator
	logger    *zap.Logger
}

func NewImageEnricher(generator domain.ImageGenerator) *ImageEnricher {
	return &ImageEnricher{
		generator: generator,
		logger:    logger.Get(),
	}
}

// Enrich issues one image request per eligible question, all concurrently,
// and waits for the whole batch. The sections slice is owned by the caller's
// pipeline; each question has exactly one writer so no locking is needed.
func (e *ImageEnricher) Enrich(ctx context.Context, sections []domain.Section) {
	g, gctx := errgroup.WithContext(ctx)

	for i := range sections {
		if !sections[i].Type.NeedsImage() {
			continue
		}
		for j := range sections[i].Questions {
			q := &sections[i].Questions[j]
			if q.CorrectAnswer == "" {
				continue
			}
			g.Go(func() error {
				e.enrichQuestion(gctx, q)
				return nil
			})
		}
	}

	_ = g.Wait()
}

func (e *ImageEnricher) enrichQuestion(ctx context.Context, q *domain.Question) {
	type imageResult struct {
		data []byte
		mime string
	}

	result, err := retry.Do(ctx, retry.ImageConfig, func(ctx context.Context) (imageResult, error) {
		data, mime, err := e.generator.GenerateImage(ctx, q.CorrectAnswer)
		return imageResult{data: data, mime: mime}, err
	})
	if err != nil {
		e.logger.Warn("image generation failed, question stays without an image",
			zap.String("subject", q.CorrectAnswer),
			zap.Error(err))
		q.ImageState = domain.EnrichmentFailed
		return
	}

	q.QuestionImage = fmt.Sprintf("data:%s;base64,%s",
		result.mime, base64.StdEncoding.EncodeToString(result.data))
	q.ImageState = domain.EnrichmentReady
}
