package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobCaption JobType = "caption"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued captioning task
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	FilePath    string          `json:"file_path"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// CaptionParams are parameters for a captioning job. Zero values fall back
// to the server-wide defaults from configuration.
type CaptionParams struct {
	Engine         string `json:"engine"`          // translation engine: "openai", "deepl"
	WhisperModel   string `json:"whisper_model"`   // e.g. "whisper-1"
	TranslateModel string `json:"translate_model"` // e.g. "gpt-4o-mini"
	SourceLang     string `json:"source_lang"`     // e.g. "ja"
	TargetLang     string `json:"target_lang"`     // e.g. "zh-TW"
	Preset         string `json:"preset"`          // "anime", "movie", "documentary", "custom"
	CustomPrompt   string `json:"custom_prompt"`   // for "custom" preset
	ChunkSeconds   int    `json:"chunk_seconds"`   // max seconds per transcription chunk
	BatchSize      int    `json:"batch_size"`      // max lines per translation batch
	Bilingual      bool   `json:"bilingual"`       // translated line above the source line
	BurnIn         bool   `json:"burn_in"`         // re-encode video with rendered subtitles
	FontName       string `json:"font_name"`       // burn-in font family
	FontSize       int    `json:"font_size"`       // 0 = default (30 bilingual, 36 otherwise)
}

// CaptionResult is the output of a successful captioning job
type CaptionResult struct {
	SubtitlePath string  `json:"subtitle_path"`        // generated SRT, relative subtitle ID
	VideoPath    string  `json:"video_path,omitempty"` // burned-in MP4, when requested
	Segments     int     `json:"segments"`             // number of subtitle cues produced
	Duration     float64 `json:"duration"`             // processing time in seconds
}

// JobHandler processes a job. Implementations are provided by the caption service.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
