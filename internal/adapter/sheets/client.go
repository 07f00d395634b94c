// Package sheets delivers submission reports to the configured external
// form/spreadsheet endpoint. Delivery is fire-and-forget: the endpoint gives
// no confirmation, so the only contract is a bounded-time POST attempt.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lessonforge/internal/config"
	"lessonforge/internal/domain"

	"go.uber.org/zap"
)

type Client struct {
	endpointURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(cfg config.SheetsConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpointURL: cfg.EndpointURL,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Deliver implements domain.SubmissionSink. The payload is the flat field map
// the form endpoint expects. A 2xx/3xx status counts as delivered; anything
// else is an error for the caller to log, never to surface to the student.
func (c *Client) Deliver(ctx context.Context, sub *domain.Submission) error {
	if c.endpointURL == "" {
		return domain.NewInternalError("sheets endpoint is not configured", nil)
	}

	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return domain.NewInternalError("failed to encode submission answers", err)
	}

	form := url.Values{}
	form.Set("studentName", sub.StudentName)
	form.Set("worksheetId", sub.WorksheetID)
	form.Set("correct", strconv.Itoa(sub.Correct))
	form.Set("total", strconv.Itoa(sub.Total))
	form.Set("starRating", strconv.Itoa(sub.StarRating))
	form.Set("feedback", sub.Feedback)
	form.Set("answers", string(answersJSON))
	form.Set("submittedAt", sub.SubmittedAt.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.NewInternalError("failed to build sheets request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sheets endpoint returned status %d", resp.StatusCode)
	}

	c.logger.Info("Submission delivered to sheets endpoint",
		zap.String("worksheet_id", sub.WorksheetID),
		zap.String("student", sub.StudentName))
	return nil
}
