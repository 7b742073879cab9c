package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/ffmpeg"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/storage"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/caption"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/subtitle/render"
)

type SubtitleHandler struct {
	mediaPath    string
	subtitlePath string
}

func NewSubtitleHandler(mediaPath, subtitlePath string) *SubtitleHandler {
	return &SubtitleHandler{mediaPath: mediaPath, subtitlePath: subtitlePath}
}

type SubtitleEntry struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Language string `json:"language"`
	Type     string `json:"type"`   // "embedded", "external", or "generated"
	Format   string `json:"format"` // codec name or file extension
}

// textSubtitleCodecs are subtitle codecs that can be converted to VTT
var textSubtitleCodecs = map[string]bool{
	"subrip":     true, // SRT
	"ass":        true,
	"ssa":        true,
	"webvtt":     true,
	"mov_text":   true, // MP4 embedded text
	"srt":        true,
	"text":       true,
	"substation": true,
}

// ListSubtitles returns available subtitles for a video: embedded streams,
// external files next to the video, and generated captions.
func (h *SubtitleHandler) ListSubtitles(w http.ResponseWriter, r *http.Request) {
	path := extractPath(r)
	fullPath := filepath.Join(h.mediaPath, path)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		jsonError(w, "file not found", http.StatusNotFound)
		return
	}

	var entries []SubtitleEntry

	// 1. Embedded subtitles via FFprobe
	info, err := ffmpeg.Probe(fullPath)
	if err == nil {
		for _, s := range info.Streams {
			if s.CodecType != "subtitle" {
				continue
			}
			// Only include text-based subtitle codecs
			if !textSubtitleCodecs[s.CodecName] {
				continue
			}

			lang := "Unknown"
			if s.Tags != nil {
				if l, ok := s.Tags["language"]; ok && l != "" {
					lang = l
				}
				if title, ok := s.Tags["title"]; ok && title != "" {
					lang = title
				}
			}

			entries = append(entries, SubtitleEntry{
				ID:       fmt.Sprintf("embedded:%d", s.Index),
				Label:    lang,
				Language: langFromTags(s.Tags),
				Type:     "embedded",
				Format:   s.CodecName,
			})
		}
	}

	// 2. External subtitle files in the same directory
	videoDir := filepath.Dir(fullPath)
	videoBase := strings.TrimSuffix(filepath.Base(fullPath), filepath.Ext(fullPath))

	dirEntries, err := os.ReadDir(videoDir)
	if err == nil {
		for _, entry := range dirEntries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !storage.IsSubtitleFile(name) {
				continue
			}
			// Match subtitle files that start with the video filename
			subBase := strings.TrimSuffix(name, filepath.Ext(name))
			if !strings.HasPrefix(subBase, videoBase) {
				continue
			}

			// Extract language hint from filename
			// e.g., "video.zh-TW.srt" -> "zh-TW"
			label := name
			lang := ""
			suffix := strings.TrimPrefix(subBase, videoBase)
			suffix = strings.TrimPrefix(suffix, ".")
			if suffix != "" {
				lang = suffix
				label = suffix + " (" + filepath.Ext(name)[1:] + ")"
			}

			entries = append(entries, SubtitleEntry{
				ID:       "external:" + name,
				Label:    label,
				Language: lang,
				Type:     "external",
				Format:   strings.TrimPrefix(filepath.Ext(name), "."),
			})
		}
	}

	// 3. Generated captions, keyed by the video path hash
	hash := caption.VideoHash(path)
	genDir := filepath.Join(h.subtitlePath, hash)
	genEntries, err := os.ReadDir(genDir)
	if err == nil {
		for _, entry := range genEntries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".srt") {
				continue
			}
			// Name is "<lang>.<engine>.srt"
			lang := strings.SplitN(name, ".", 2)[0]
			entries = append(entries, SubtitleEntry{
				ID:       "generated:" + hash + "/" + name,
				Label:    strings.TrimSuffix(name, ".srt"),
				Language: lang,
				Type:     "generated",
				Format:   "srt",
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// ServeSubtitle serves a subtitle as WebVTT format
func (h *SubtitleHandler) ServeSubtitle(w http.ResponseWriter, r *http.Request) {
	path := extractPath(r)
	subtitleID := r.URL.Query().Get("id")

	if subtitleID == "" {
		jsonError(w, "subtitle id required", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(h.mediaPath, path)

	switch {
	case strings.HasPrefix(subtitleID, "embedded:"):
		h.serveEmbeddedSubtitle(w, fullPath, subtitleID)
	case strings.HasPrefix(subtitleID, "external:"):
		h.serveExternalSubtitle(w, fullPath, subtitleID)
	case strings.HasPrefix(subtitleID, "generated:"):
		h.serveGeneratedSubtitle(w, subtitleID, false)
	default:
		jsonError(w, "invalid subtitle id", http.StatusBadRequest)
	}
}

// DownloadSubtitle serves a generated caption file as-is
func (h *SubtitleHandler) DownloadSubtitle(w http.ResponseWriter, r *http.Request) {
	subtitleID := r.URL.Query().Get("id")
	if !strings.HasPrefix(subtitleID, "generated:") {
		jsonError(w, "only generated subtitles can be downloaded", http.StatusBadRequest)
		return
	}
	h.serveGeneratedSubtitle(w, subtitleID, true)
}

func (h *SubtitleHandler) serveGeneratedSubtitle(w http.ResponseWriter, subtitleID string, raw bool) {
	rel := strings.TrimPrefix(subtitleID, "generated:")
	subPath := filepath.Join(h.subtitlePath, filepath.Clean("/"+rel))

	// Security: stay inside the subtitle directory
	absDir, _ := filepath.Abs(h.subtitlePath)
	absSub, _ := filepath.Abs(subPath)
	if !strings.HasPrefix(absSub, absDir) {
		jsonError(w, "invalid path", http.StatusForbidden)
		return
	}

	data, err := os.ReadFile(subPath)
	if err != nil {
		jsonError(w, "subtitle file not found", http.StatusNotFound)
		return
	}

	if raw {
		w.Header().Set("Content-Type", "application/x-subrip; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(subPath)+"\"")
		w.Write(data)
		return
	}

	cues := render.ParseSRT(string(data))
	w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write([]byte(render.FormatVTT(cues)))
}

func (h *SubtitleHandler) serveEmbeddedSubtitle(w http.ResponseWriter, videoPath, subtitleID string) {
	// Parse stream index from "embedded:3"
	var streamIndex int
	fmt.Sscanf(strings.TrimPrefix(subtitleID, "embedded:"), "%d", &streamIndex)

	// Extract subtitle as VTT using FFmpeg
	cmd := exec.Command("ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-f", "webvtt",
		"pipe:1",
	)

	output, err := cmd.Output()
	if err != nil {
		jsonError(w, "failed to extract subtitle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write(output)
}

func (h *SubtitleHandler) serveExternalSubtitle(w http.ResponseWriter, videoPath, subtitleID string) {
	filename := strings.TrimPrefix(subtitleID, "external:")
	videoDir := filepath.Dir(videoPath)
	subPath := filepath.Join(videoDir, filename)

	// Security: ensure the subtitle file is in the same directory
	absDir, _ := filepath.Abs(videoDir)
	absSub, _ := filepath.Abs(subPath)
	if !strings.HasPrefix(absSub, absDir) {
		jsonError(w, "invalid path", http.StatusForbidden)
		return
	}

	data, err := os.ReadFile(subPath)
	if err != nil {
		jsonError(w, "subtitle file not found", http.StatusNotFound)
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))

	w.Header().Set("Cache-Control", "max-age=3600")

	switch ext {
	case ".vtt":
		w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
		w.Write(data)
	case ".srt":
		cues := render.ParseSRT(string(data))
		w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
		w.Write([]byte(render.FormatVTT(cues)))
	case ".ass", ".ssa":
		// Use FFmpeg to convert ASS/SSA to VTT
		cmd := exec.Command("ffmpeg",
			"-hide_banner",
			"-loglevel", "error",
			"-i", subPath,
			"-f", "webvtt",
			"pipe:1",
		)
		output, err := cmd.Output()
		if err != nil {
			// Fallback: serve as-is
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write(data)
			return
		}
		w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
		w.Write(output)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(data)
	}
}

func langFromTags(tags map[string]string) string {
	if tags == nil {
		return ""
	}
	if l, ok := tags["language"]; ok {
		return l
	}
	return ""
}
