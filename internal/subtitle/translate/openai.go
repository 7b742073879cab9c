package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/retry"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAITranslator translates subtitles using the OpenAI Chat API
type OpenAITranslator struct {
	apiKey     string
	httpClient *http.Client
}

func NewOpenAITranslator(apiKey string) *OpenAITranslator {
	return &OpenAITranslator{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (o *OpenAITranslator) Name() string {
	return "openai"
}

// apiError carries the HTTP status so the retry classifier can separate
// rate-limit/server faults from terminal request errors.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("translation API error (status %d): %s", e.status, truncate(e.body, 300))
}

func isTransientAPIError(err error) bool {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status == http.StatusTooManyRequests || ae.status >= 500
	}
	return false
}

func (o *OpenAITranslator) TranslateBatch(ctx context.Context, lines []string, opts Options) ([]string, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	userPayload, err := json.Marshal(map[string]interface{}{
		"instruction": fmt.Sprintf(
			`Translate each item to %s. Return strict JSON with {"translations": string[]} matching the input length. Never merge, split, or drop items.`,
			langName(opts.TargetLang)),
		"source_language": opts.SourceLang,
		"target_language": opts.TargetLang,
		"items":           lines,
	})
	if err != nil {
		return nil, err
	}

	content, err := o.chat(ctx, "bulk translate", opts, systemPromptFor(opts), string(userPayload), true)
	if err != nil {
		return nil, err
	}

	return ParseTranslations(content)
}

func (o *OpenAITranslator) TranslateSingle(ctx context.Context, line string, opts Options) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	systemPrompt := systemPromptFor(opts) +
		"\n\nTranslate the single subtitle line the user sends. Respond with ONLY the translated line, no quotes, no commentary."

	content, err := o.chat(ctx, "single translate", opts, systemPrompt, line, false)
	if err != nil {
		return "", err
	}

	// Models like to quote a lone line back
	return strings.Trim(strings.TrimSpace(content), `"`), nil
}

// chat runs one chat completion with backoff on transient service errors.
func (o *OpenAITranslator) chat(ctx context.Context, label string, opts Options, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	reqBody := map[string]interface{}{
		"model": modelOrDefault(opts.Model),
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": 0.3,
	}
	if jsonMode {
		reqBody["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var content string
	err = retry.Do(ctx, label, isTransientAPIError, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", openAIChatURL, bytes.NewReader(jsonBody))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

		resp, err := o.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("OpenAI API request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			return &apiError{status: resp.StatusCode, body: string(body)}
		}

		var chatResp struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &chatResp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		if len(chatResp.Choices) == 0 {
			return fmt.Errorf("empty OpenAI response")
		}

		content = chatResp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func modelOrDefault(model string) string {
	if model == "" {
		return "gpt-4o-mini"
	}
	return model
}
