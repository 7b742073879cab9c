package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/db"
)

// settingsKeys defines which keys are allowed and their display metadata.
// API credentials stay in the environment; only pipeline defaults live here.
var settingsKeys = []SettingDef{
	{Key: "whisper_model", Label: "Whisper Model", Group: "transcription", Placeholder: "whisper-1"},
	{Key: "chunk_seconds", Label: "Chunk Length (seconds)", Group: "transcription", Placeholder: "600"},
	{Key: "translate_model", Label: "Translation Model", Group: "translation", Placeholder: "gpt-4o-mini"},
	{Key: "batch_size", Label: "Batch Size (lines)", Group: "translation", Placeholder: "60"},
	{Key: "source_lang", Label: "Source Language", Group: "translation", Placeholder: "ja"},
	{Key: "target_lang", Label: "Target Language", Group: "translation", Placeholder: "zh-TW"},
	{Key: "font_name", Label: "Burn-in Font", Group: "rendering", Placeholder: "Noto Sans CJK TC"},
}

type SettingDef struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Group       string `json:"group"`
	Placeholder string `json:"placeholder"`
}

type SettingsHandler struct {
	database *db.Database
}

func NewSettingsHandler(database *db.Database) *SettingsHandler {
	return &SettingsHandler{database: database}
}

// GetSettings returns all settings with their stored values
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.database.GetAllSettings()
	if err != nil {
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	type SettingResponse struct {
		SettingDef
		Value string `json:"value"`
	}

	result := make([]SettingResponse, 0, len(settingsKeys))
	for _, def := range settingsKeys {
		result = append(result, SettingResponse{
			SettingDef: def,
			Value:      all[def.Key],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// UpdateSettings saves settings from the request body
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Only allow known settings
	allowed := make(map[string]bool)
	for _, def := range settingsKeys {
		allowed[def.Key] = true
	}

	for key, value := range updates {
		if !allowed[key] {
			continue
		}
		if err := h.database.SetSetting(key, value); err != nil {
			jsonError(w, "failed to save setting: "+key, http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
