// Package caption drives the full pipeline for one video: audio extraction,
// chunked transcription, batch translation, subtitle rendering, and optional
// burn-in.
package caption

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/config"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/ffmpeg"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/job"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/storage"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/render"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/translate"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/whisper"
)

// Service owns the transcription client and the translation engine registry.
type Service struct {
	cfg     *config.Config
	engines map[string]translate.Engine
	chunker *whisper.Chunker
}

func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		engines: make(map[string]translate.Engine),
	}

	if cfg.OpenAIKey != "" {
		s.engines["openai"] = translate.NewOpenAITranslator(cfg.OpenAIKey)
		s.chunker = whisper.NewChunker(whisper.NewOpenAIClient(cfg.OpenAIKey))
	}
	if cfg.DeepLKey != "" {
		s.engines["deepl"] = translate.NewDeepLTranslator(cfg.DeepLKey)
	}

	log.Printf("[caption] translation engines available: %s", strings.Join(s.Engines(), ", "))
	return s
}

// Engines returns the names of the configured translation engines, sorted.
func (s *Service) Engines() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandleJob processes one captioning job. Progress moves through fixed
// phases: extraction to 0.05, transcription to 0.5, translation to 0.9,
// rendering and burn-in to 1.0.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	start := time.Now()

	var params job.CaptionParams
	if len(j.Params) > 0 {
		if err := json.Unmarshal(j.Params, &params); err != nil {
			return fmt.Errorf("parse job params: %w", err)
		}
	}
	s.applyDefaults(&params)

	if s.chunker == nil {
		return fmt.Errorf("transcription unavailable: OPENAI_API_KEY not configured")
	}
	engine, ok := s.engines[params.Engine]
	if !ok {
		return fmt.Errorf("unknown translation engine %q (available: %s)",
			params.Engine, strings.Join(s.Engines(), ", "))
	}

	videoPath := filepath.Join(s.cfg.MediaPath, j.FilePath)
	if !storage.IsVideoFile(videoPath) {
		return fmt.Errorf("not a video file: %s", j.FilePath)
	}
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video not found: %s", j.FilePath)
	}

	log.Printf("[caption] job %s: %s -> %s via %s", j.ID, params.SourceLang, params.TargetLang, params.Engine)
	updateProgress(0.02)

	audioPath, err := ffmpeg.ExtractAudio(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(audioPath)
	updateProgress(0.05)

	segments, err := s.chunker.TranscribeAll(ctx, audioPath, params.ChunkSeconds,
		params.SourceLang, params.WhisperModel, func(p float64) {
			updateProgress(0.05 + 0.45*p)
		})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	sourceLines := make([]string, len(segments))
	for i, seg := range segments {
		sourceLines[i] = strings.TrimSpace(seg.Text)
	}

	translations, err := translate.TranslateAll(ctx, engine, sourceLines, params.BatchSize,
		translate.Options{
			SourceLang:   params.SourceLang,
			TargetLang:   params.TargetLang,
			Model:        params.TranslateModel,
			Preset:       params.Preset,
			CustomPrompt: params.CustomPrompt,
		}, func(p float64) {
			updateProgress(0.5 + 0.4*p)
		})
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	cues := make([]render.Cue, len(segments))
	for i, seg := range segments {
		text := translations[i]
		if params.Bilingual {
			text = translations[i] + "\n" + sourceLines[i]
		}
		cues[i] = render.Cue{Start: seg.Start, End: seg.End, Text: text}
	}

	hash := VideoHash(j.FilePath)
	subDir := filepath.Join(s.cfg.SubtitlePath, hash)
	if err := os.MkdirAll(subDir, 0755); err != nil {
		return fmt.Errorf("create subtitle dir: %w", err)
	}

	srtName := fmt.Sprintf("%s.%s.srt", params.TargetLang, params.Engine)
	srtPath := filepath.Join(subDir, srtName)
	if err := os.WriteFile(srtPath, []byte(render.FormatSRT(cues)), 0644); err != nil {
		return fmt.Errorf("write SRT: %w", err)
	}
	log.Printf("[caption] job %s: wrote %d cues to %s", j.ID, len(cues), srtPath)
	updateProgress(0.92)

	result := job.CaptionResult{
		SubtitlePath: "generated:" + hash + "/" + srtName,
		Segments:     len(cues),
	}

	if params.BurnIn {
		fontSize := params.FontSize
		if fontSize <= 0 {
			if params.Bilingual {
				fontSize = 30
			} else {
				fontSize = 36
			}
		}

		assPath := filepath.Join(subDir, fmt.Sprintf("%s.%s.ass", params.TargetLang, params.Engine))
		if err := os.WriteFile(assPath, []byte(render.FormatASS(cues, params.FontName, fontSize)), 0644); err != nil {
			return fmt.Errorf("write ASS: %w", err)
		}

		fontsDir := ffmpeg.ResolveFontsDir(s.cfg.FontsDir)
		if fontsDir == "" {
			log.Printf("[caption] no fonts dir found, relying on system font fallback")
		}

		if err := os.MkdirAll(s.cfg.OutputPath, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(j.FilePath), filepath.Ext(j.FilePath))
		outName := fmt.Sprintf("%s.%s.mp4", base, params.TargetLang)
		outPath := filepath.Join(s.cfg.OutputPath, outName)

		log.Printf("[caption] job %s: burning subtitles into %s", j.ID, outName)
		if err := ffmpeg.BurnIn(ctx, videoPath, assPath, outPath, fontsDir); err != nil {
			return fmt.Errorf("burn-in: %w", err)
		}
		result.VideoPath = outName
	}

	result.Duration = time.Since(start).Seconds()
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	j.Result = resultJSON

	log.Printf("[caption] job %s: done in %.1fs", j.ID, result.Duration)
	return nil
}

// applyDefaults fills zero-valued params from server configuration.
func (s *Service) applyDefaults(p *job.CaptionParams) {
	if p.Engine == "" {
		p.Engine = "openai"
	}
	if p.WhisperModel == "" {
		p.WhisperModel = s.cfg.WhisperModel
	}
	if p.TranslateModel == "" {
		p.TranslateModel = s.cfg.TranslateModel
	}
	if p.SourceLang == "" {
		p.SourceLang = s.cfg.SourceLang
	}
	if p.TargetLang == "" {
		p.TargetLang = s.cfg.TargetLang
	}
	if p.ChunkSeconds <= 0 {
		p.ChunkSeconds = s.cfg.ChunkSeconds
	}
	if p.BatchSize <= 0 {
		p.BatchSize = s.cfg.BatchSize
	}
	if p.FontName == "" {
		p.FontName = s.cfg.FontName
	}
}

// VideoHash keys the per-video subtitle directory by relative media path.
// The subtitle handler uses the same key to find generated captions.
func VideoHash(relPath string) string {
	sum := sha1.Sum([]byte(relPath))
	return hex.EncodeToString(sum[:])[:12]
}
