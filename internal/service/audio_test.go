package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lessonforge/internal/config"
	"lessonforge/internal/domain"
)

func audioTestConfig() config.GeminiConfig {
	return config.GeminiConfig{
		Voice:             "Kore",
		AudioMinBytes:     10,
		AudioBytesPerChar: 0,
		AudioRequestDelay: time.Millisecond,
	}
}

func listeningSections(questions ...domain.Question) []domain.Section {
	return []domain.Section{{
		ID:        "sec-listening",
		Type:      domain.ExerciseListening,
		Questions: questions,
	}}
}

func TestBuildNarrationScript(t *testing.T) {
	q := &domain.Question{
		QuestionText:     "Where does the conversation take place?",
		ImageDescription: "Two travelers at an airport gate",
		Options:          []string{"at the gate", "in a taxi", "at home", "in a shop"},
	}

	script := BuildNarrationScript(q)

	assert.Contains(t, script, "Two travelers at an airport gate")
	assert.Contains(t, script, "Where does the conversation take place?")
	assert.Contains(t, script, "Option A: at the gate.")
	assert.Contains(t, script, "Option B: in a taxi.")
	assert.Contains(t, script, "Option C: at home.")
	assert.Contains(t, script, "Option D: in a shop.")
	// Narration follows the displayed order.
	assert.Less(t, 0, len(script))
	assert.Less(t,
		bytes.Index([]byte(script), []byte("Option A")),
		bytes.Index([]byte(script), []byte("Option B")))
}

func TestAudioEnricher_Success(t *testing.T) {
	synth := new(MockSpeechSynthesizer)
	payload := bytes.Repeat([]byte{0xAB}, 64)
	synth.On("Synthesize", mock.Anything, mock.Anything).Return(payload, nil).Once()

	enricher := NewAudioEnricher(synth, nil, audioTestConfig())
	sections := listeningSections(domain.Question{
		QuestionText: "Pick the right option.",
		Options:      []string{"a", "b", "c", "d"},
	})

	enricher.Enrich(context.Background(), sections)

	q := sections[0].Questions[0]
	assert.Equal(t, domain.EnrichmentReady, q.AudioState)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), q.AudioData)
	synth.AssertExpectations(t)
}

func TestAudioEnricher_UndersizedPayloadIsRegenerated(t *testing.T) {
	synth := new(MockSpeechSynthesizer)
	tooShort := []byte{0x01, 0x02}
	good := bytes.Repeat([]byte{0xAB}, 64)
	synth.On("Synthesize", mock.Anything, mock.Anything).Return(tooShort, nil).Once()
	synth.On("Synthesize", mock.Anything, mock.Anything).Return(good, nil).Once()

	enricher := NewAudioEnricher(synth, nil, audioTestConfig())
	sections := listeningSections(domain.Question{
		QuestionText: "Pick the right option.",
		Options:      []string{"a", "b", "c", "d"},
	})

	enricher.Enrich(context.Background(), sections)

	q := sections[0].Questions[0]
	assert.Equal(t, domain.EnrichmentReady, q.AudioState)
	assert.Equal(t, base64.StdEncoding.EncodeToString(good), q.AudioData)
	synth.AssertNumberOfCalls(t, "Synthesize", 2)
}

func TestAudioEnricher_UndersizedExhaustionLeavesAudioUnset(t *testing.T) {
	synth := new(MockSpeechSynthesizer)
	tooShort := []byte{0x01}
	synth.On("Synthesize", mock.Anything, mock.Anything).Return(tooShort, nil)

	enricher := NewAudioEnricher(synth, nil, audioTestConfig())
	sections := listeningSections(domain.Question{
		QuestionText: "Pick the right option.",
		Options:      []string{"a", "b", "c", "d"},
	})

	enricher.Enrich(context.Background(), sections)

	q := sections[0].Questions[0]
	assert.Equal(t, domain.EnrichmentFailed, q.AudioState)
	assert.Empty(t, q.AudioData)
	synth.AssertNumberOfCalls(t, "Synthesize", maxAudioAttempts)
}

func TestAudioEnricher_NonRetryableFailureLeavesAudioUnset(t *testing.T) {
	synth := new(MockSpeechSynthesizer)
	synth.On("Synthesize", mock.Anything, mock.Anything).
		Return(nil, domain.NewCredentialError(nil)).Once()

	enricher := NewAudioEnricher(synth, nil, audioTestConfig())
	sections := listeningSections(domain.Question{
		QuestionText: "Pick the right option.",
		Options:      []string{"a", "b", "c", "d"},
	})

	enricher.Enrich(context.Background(), sections)

	q := sections[0].Questions[0]
	assert.Equal(t, domain.EnrichmentFailed, q.AudioState)
	assert.Empty(t, q.AudioData)
	synth.AssertNumberOfCalls(t, "Synthesize", 1)
}

func TestAudioEnricher_CacheHitSkipsSynthesis(t *testing.T) {
	synth := new(MockSpeechSynthesizer)
	cached := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xCD}, 32))

	audioCache := new(MockCache)
	audioCache.On("Get", mock.Anything, mock.Anything).Return(cached, nil).Once()

	enricher := NewAudioEnricher(synth, audioCache, audioTestConfig())
	sections := listeningSections(domain.Question{
		QuestionText: "Pick the right option.",
		Options:      []string{"a", "b", "c", "d"},
	})

	enricher.Enrich(context.Background(), sections)

	q := sections[0].Questions[0]
	assert.Equal(t, domain.EnrichmentReady, q.AudioState)
	assert.Equal(t, cached, q.AudioData)
	synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	audioCache.AssertExpectations(t)
}

func TestAudioEnricher_CacheMissStoresResult(t *testing.T) {
	synth := new(MockSpeechSynthesizer)
	payload := bytes.Repeat([]byte{0xAB}, 64)
	synth.On("Synthesize", mock.Anything, mock.Anything).Return(payload, nil).Once()

	audioCache := new(MockCache)
	audioCache.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss).Once()
	audioCache.On("Set", mock.Anything, mock.Anything,
		base64.StdEncoding.EncodeToString(payload), audioCacheTTL).Return(nil).Once()

	enricher := NewAudioEnricher(synth, audioCache, audioTestConfig())
	sections := listeningSections(domain.Question{
		QuestionText: "Pick the right option.",
		Options:      []string{"a", "b", "c", "d"},
	})

	enricher.Enrich(context.Background(), sections)

	assert.Equal(t, domain.EnrichmentReady, sections[0].Questions[0].AudioState)
	audioCache.AssertExpectations(t)
}

func TestAudioEnricher_MinBytesHeuristic(t *testing.T) {
	cfg := audioTestConfig()
	cfg.AudioMinBytes = 15000
	cfg.AudioBytesPerChar = 100
	enricher := NewAudioEnricher(nil, nil, cfg)

	// Short script: the floor wins.
	assert.Equal(t, 15000, enricher.minAudioBytes("short"))
	// Long script: the per-character estimate wins.
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	assert.Equal(t, 20000, enricher.minAudioBytes(string(long)))
}
