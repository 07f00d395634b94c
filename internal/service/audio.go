package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"lessonforge/internal/cache"
	"lessonforge/internal/config"
	"lessonforge/internal/domain"
	"lessonforge/internal/logger"
	"lessonforge/internal/retry"
)

const audioCacheTTL = 7 * 24 * time.Hour

// maxAudioAttempts bounds how many times an undersized payload is discarded
// and regenerated for one question.
const maxAudioAttempts = 3

// AudioEnricher narrates listening questions one at a time. Requests are
// strictly sequential with a mandatory inter-request delay because the
// synthesis backend rate limits aggressively and truncates audio under
// concurrent load. Results are cached by script hash so a regenerated
// worksheet with identical questions reuses the audio.
type AudioEnricher struct {
	synth  domain.SpeechSynthesizer
	cache  domain.Cache
	cfg    config.GeminiConfig
	group  singleflight.Group
	logger *zap.Logger
}

func NewAudioEnricher(synth domain.SpeechSynthesizer, audioCache domain.Cache, cfg config.GeminiConfig) *AudioEnricher {
	return &AudioEnricher{
		synth:  synth,
		cache:  audioCache,
		cfg:    cfg,
		logger: logger.Get(),
	}
}

// BuildNarrationScript assembles the text sent to speech synthesis for one
// listening question: the scene description when present, the question text,
// then every option prefixed with its letter in display order. Display order
// is final at this point, so what the student hears matches what they see.
func BuildNarrationScript(q *domain.Question) string {
	var b strings.Builder
	if q.ImageDescription != "" {
		b.WriteString(q.ImageDescription)
		b.WriteString(". ... ")
	}
	b.WriteString(q.QuestionText)
	b.WriteString(" ... ")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "Option %c: %s. ", 'A'+i, opt)
	}
	return strings.TrimSpace(b.String())
}

// Enrich synthesizes audio for every listening question, sequentially. A
// question whose synthesis ultimately fails keeps empty AudioData with
// AudioState failed; the client narrates from text in that case.
func (e *AudioEnricher) Enrich(ctx context.Context, sections []domain.Section) {
	first := true
	for i := range sections {
		if sections[i].Type != domain.ExerciseListening {
			continue
		}
		for j := range sections[i].Questions {
			if err := ctx.Err(); err != nil {
				return
			}
			if !first {
				select {
				case <-ctx.Done():
					return
				case <-time.After(e.cfg.AudioRequestDelay):
				}
			}
			first = false

			q := &sections[i].Questions[j]
			script := BuildNarrationScript(q)
			audio, err := e.synthesize(ctx, script)
			if err != nil {
				e.logger.Warn("audio synthesis failed, question stays without audio",
					zap.String("sectionId", sections[i].ID),
					zap.Int("question", j),
					zap.Error(err))
				q.AudioState = domain.EnrichmentFailed
				continue
			}
			q.AudioData = audio
			q.AudioState = domain.EnrichmentReady
		}
	}
}

// synthesize returns base64 audio for a script, via the cache when possible.
// Singleflight collapses duplicate scripts racing from concurrent worksheet
// generations into one upstream call.
func (e *AudioEnricher) synthesize(ctx context.Context, script string) (string, error) {
	key := e.cacheKey(script)

	if e.cache != nil {
		cached, err := e.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			e.logger.Warn("audio cache lookup failed", zap.Error(err))
		}
	}

	result, err, _ := e.group.Do(key, func() (interface{}, error) {
		encoded, err := e.generateChecked(ctx, script)
		if err != nil {
			return nil, err
		}
		if e.cache != nil {
			if err := e.cache.Set(ctx, key, encoded, audioCacheTTL); err != nil {
				e.logger.Warn("audio cache store failed", zap.Error(err))
			}
		}
		return encoded, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// generateChecked calls the synthesizer and rejects undersized payloads,
// which in practice are truncated clips. Each rejection waits a growing
// backoff before the next attempt.
func (e *AudioEnricher) generateChecked(ctx context.Context, script string) (string, error) {
	minBytes := e.minAudioBytes(script)

	var lastErr error
	for attempt := 1; attempt <= maxAudioAttempts; attempt++ {
		data, err := retry.Do(ctx, retry.DefaultConfig, func(ctx context.Context) ([]byte, error) {
			return e.synth.Synthesize(ctx, script)
		})
		if err != nil {
			return "", err
		}
		if len(data) >= minBytes {
			return base64.StdEncoding.EncodeToString(data), nil
		}

		lastErr = fmt.Errorf("undersized audio payload: got %d bytes, want at least %d", len(data), minBytes)
		e.logger.Warn("discarding undersized audio payload",
			zap.Int("attempt", attempt),
			zap.Int("bytes", len(data)),
			zap.Int("minBytes", minBytes))

		if attempt == maxAudioAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(e.cfg.AudioRequestDelay * time.Duration(attempt)):
		}
	}
	return "", domain.NewGenerationError("audio synthesis kept returning undersized payloads", lastErr)
}

// minAudioBytes is the empirical floor for a believable clip. Both factors
// are tunables, not derived constants.
func (e *AudioEnricher) minAudioBytes(script string) int {
	minBytes := e.cfg.AudioMinBytes
	if perChar := e.cfg.AudioBytesPerChar * len(script); perChar > minBytes {
		minBytes = perChar
	}
	return minBytes
}

func (e *AudioEnricher) cacheKey(script string) string {
	sum := sha256.Sum256([]byte(e.cfg.Voice + "|" + script))
	return cache.GenerateCacheKey("audio", "clip", hex.EncodeToString(sum[:]))
}
