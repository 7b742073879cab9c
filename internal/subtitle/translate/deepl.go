package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/retry"
)

const deeplAPIURL = "https://api-free.deepl.com/v2/translate"

// DeepLTranslator translates subtitles using the DeepL API
type DeepLTranslator struct {
	apiKey     string
	httpClient *http.Client
}

func NewDeepLTranslator(apiKey string) *DeepLTranslator {
	return &DeepLTranslator{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (d *DeepLTranslator) Name() string {
	return "deepl"
}

func (d *DeepLTranslator) TranslateBatch(ctx context.Context, lines []string, opts Options) ([]string, error) {
	if d.apiKey == "" {
		return nil, fmt.Errorf("DeepL API key not configured")
	}

	form := url.Values{}
	for _, line := range lines {
		form.Add("text", line)
	}
	form.Set("target_lang", deeplLangCode(opts.TargetLang))
	if opts.SourceLang != "" && opts.SourceLang != "auto" {
		form.Set("source_lang", deeplLangCode(opts.SourceLang))
	}

	// Presets map loosely onto DeepL formality
	switch opts.Preset {
	case "documentary":
		form.Set("formality", "more")
	case "anime":
		form.Set("formality", "less")
	}

	var result []string
	err := retry.Do(ctx, "deepl translate", isTransientAPIError, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", deeplAPIURL,
			strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

		resp, err := d.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("DeepL API request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			return &apiError{status: resp.StatusCode, body: string(body)}
		}

		var deeplResp struct {
			Translations []struct {
				Text string `json:"text"`
			} `json:"translations"`
		}
		if err := json.Unmarshal(body, &deeplResp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		result = make([]string, len(deeplResp.Translations))
		for i, t := range deeplResp.Translations {
			result[i] = t.Text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (d *DeepLTranslator) TranslateSingle(ctx context.Context, line string, opts Options) (string, error) {
	result, err := d.TranslateBatch(ctx, []string{line}, opts)
	if err != nil {
		return "", err
	}
	if len(result) != 1 {
		return "", fmt.Errorf("DeepL returned %d translations for one line", len(result))
	}
	return result[0], nil
}

// deeplLangCode converts ISO 639-1 codes to DeepL format
func deeplLangCode(code string) string {
	mapping := map[string]string{
		"zh-TW": "ZH-HANT",
		"zh-CN": "ZH-HANS",
		"zh":    "ZH",
		"ja":    "JA",
		"ko":    "KO",
		"en":    "EN",
		"de":    "DE",
		"fr":    "FR",
		"es":    "ES",
		"it":    "IT",
		"pt":    "PT-BR",
		"ru":    "RU",
		"nl":    "NL",
		"pl":    "PL",
	}
	if mapped, ok := mapping[code]; ok {
		return mapped
	}
	return strings.ToUpper(code)
}
