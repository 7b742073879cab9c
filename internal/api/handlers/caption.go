package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/db"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/job"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/storage"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/caption"
)

type CaptionHandler struct {
	mediaPath string
	database  *db.Database
	queue     *job.JobQueue
	service   *caption.Service
}

func NewCaptionHandler(mediaPath string, database *db.Database, queue *job.JobQueue, service *caption.Service) *CaptionHandler {
	return &CaptionHandler{
		mediaPath: mediaPath,
		database:  database,
		queue:     queue,
		service:   service,
	}
}

// Engines returns the translation engines available on this server
func (h *CaptionHandler) Engines(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"engines": h.service.Engines(),
	}, http.StatusOK)
}

// Generate enqueues a captioning job for a video. Unset parameters fall back
// to stored settings, then server configuration.
func (h *CaptionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	path := extractPath(r)
	if path == "" {
		jsonError(w, "video path required", http.StatusBadRequest)
		return
	}
	if !storage.IsVideoFile(path) {
		jsonError(w, "not a video file", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(h.mediaPath, path)
	if _, err := os.Stat(fullPath); err != nil {
		jsonError(w, "file not found", http.StatusNotFound)
		return
	}

	// An empty body means all defaults
	var params job.CaptionParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.fillFromSettings(&params)

	j, err := h.queue.Enqueue(job.JobCaption, path, params)
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

// fillFromSettings applies stored settings to unset parameters. Remaining
// zero values are resolved against server configuration by the service.
func (h *CaptionHandler) fillFromSettings(p *job.CaptionParams) {
	if p.WhisperModel == "" {
		p.WhisperModel = h.database.GetSetting("whisper_model", "")
	}
	if p.TranslateModel == "" {
		p.TranslateModel = h.database.GetSetting("translate_model", "")
	}
	if p.SourceLang == "" {
		p.SourceLang = h.database.GetSetting("source_lang", "")
	}
	if p.TargetLang == "" {
		p.TargetLang = h.database.GetSetting("target_lang", "")
	}
	if p.FontName == "" {
		p.FontName = h.database.GetSetting("font_name", "")
	}
	if p.ChunkSeconds <= 0 {
		if n, err := strconv.Atoi(h.database.GetSetting("chunk_seconds", "")); err == nil && n > 0 {
			p.ChunkSeconds = n
		}
	}
	if p.BatchSize <= 0 {
		if n, err := strconv.Atoi(h.database.GetSetting("batch_size", "")); err == nil && n > 0 {
			p.BatchSize = n
		}
	}
}
