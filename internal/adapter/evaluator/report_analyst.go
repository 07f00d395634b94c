// Package evaluator implements the teacher-facing report analyst on top of a
// local LLM through LangchainGo. It is an optional collaborator: when no
// report model is configured the submission flow simply ships without the
// narrative.
package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lessonforge/internal/domain"
	"lessonforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

type reportAnalyst struct {
	llmClient *ollama.LLM
}

// NewReportAnalyst creates a domain.ReportAnalyst backed by an Ollama server.
func NewReportAnalyst(serverURL, model string) (domain.ReportAnalyst, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("report LLM server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("report LLM model cannot be empty")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report LLM client: %w", err)
	}
	return &reportAnalyst{llmClient: llm}, nil
}

// AnalyzeSubmission implements domain.ReportAnalyst.
func (a *reportAnalyst) AnalyzeSubmission(ctx context.Context, sub *domain.Submission, sections []domain.Section) (string, error) {
	l := logger.Get()

	var sb strings.Builder
	fmt.Fprintf(&sb, `You are an assistant for English teachers. A student completed a worksheet.

Student: %s
Score: %d out of %d

Results by section:
`, sub.StudentName, sub.Correct, sub.Total)

	for _, section := range sections {
		correct, total := sectionScore(sub, section)
		fmt.Fprintf(&sb, "- %s (%s): %d/%d correct\n", section.Title, section.Type, correct, total)
	}

	sb.WriteString(`
Write a short analysis for the teacher:
1. One sentence on overall performance.
2. Which exercise types need the most attention and why.
3. Two concrete practice recommendations.
Keep it under 120 words, plain and practical. Respond with ONLY a JSON object:
{"analysis": "..."}`)

	callCtx, cancel := context.WithTimeout(ctx, 25*time.Second)
	defer cancel()

	raw, err := a.llmClient.Call(callCtx, sb.String(), llms.WithTemperature(0.2))
	if err != nil {
		l.Error("Report LLM call failed", zap.Error(err))
		return "", fmt.Errorf("report LLM call failed: %w", err)
	}

	cleaned := strings.TrimSpace(raw)
	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		l.Warn("Report LLM returned no JSON object, using raw text", zap.String("raw", cleaned))
		return cleaned, nil
	}

	var parsed struct {
		Analysis string `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &parsed); err != nil {
		l.Warn("Failed to parse report LLM JSON, using raw text", zap.Error(err))
		return cleaned, nil
	}
	return parsed.Analysis, nil
}

// sectionScore tallies a student's answers for one section. Answer keys are
// "<sectionID>:<questionIndex>", matching the submission contract.
func sectionScore(sub *domain.Submission, section domain.Section) (correct, total int) {
	for i, q := range section.Questions {
		if len(q.Options) == 0 {
			continue
		}
		total++
		key := fmt.Sprintf("%s:%d", section.ID, i)
		given := strings.TrimSpace(sub.Answers[key])
		if strings.EqualFold(given, strings.TrimSpace(q.CorrectAnswer)) && given != "" {
			correct++
		}
	}
	return correct, total
}

var _ domain.ReportAnalyst = (*reportAnalyst)(nil)
