package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/retry"
)

const openAITranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// OpenAIClient transcribes audio through the OpenAI transcription API,
// requesting verbose_json so segment-level timestamps come back.
type OpenAIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

// apiError carries the HTTP status so the retry classifier can separate
// rate-limit/server faults from terminal request errors.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("OpenAI transcription error (status %d): %s", e.status, e.body)
}

func isTransientAPIError(err error) bool {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status == http.StatusTooManyRequests || ae.status >= 500
	}
	return false
}

func (c *OpenAIClient) Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	var result *TranscribeResult
	err := retry.Do(ctx, "transcribe", isTransientAPIError, func() error {
		var err error
		result, err = c.transcribeOnce(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *OpenAIClient) transcribeOnce(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, err
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = "whisper-1"
	}
	writer.WriteField("model", model)
	writer.WriteField("response_format", "verbose_json")
	writer.WriteField("timestamp_granularities[]", "segment")
	if req.Language != "" && req.Language != "auto" {
		writer.WriteField("language", req.Language)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", openAITranscriptionURL, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("[whisper] sending %s to OpenAI (model %s)", filepath.Base(req.AudioPath), model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apiError{status: resp.StatusCode, body: string(body)}
	}

	// verbose_json: segments may be omitted by some server builds
	var verbose struct {
		Text     string    `json:"text"`
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(body, &verbose); err != nil {
		return nil, fmt.Errorf("parse transcription response: %w", err)
	}

	return &TranscribeResult{
		Text:     verbose.Text,
		Segments: verbose.Segments,
	}, nil
}
