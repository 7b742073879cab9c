package translate

import (
	"strings"
	"testing"
)

func TestGetSystemPrompt(t *testing.T) {
	base := GetSystemPrompt("", "ja", "zh-TW")
	if !strings.Contains(base, "Japanese") || !strings.Contains(base, "Traditional Chinese (Taiwan)") {
		t.Fatalf("base prompt missing language names: %s", base)
	}

	anime := GetSystemPrompt("anime", "ja", "zh-TW")
	if !strings.Contains(anime, "anime") {
		t.Fatalf("anime preset missing guidance: %s", anime)
	}
	if !strings.HasPrefix(anime, base) {
		t.Fatal("preset prompts must extend the base prompt")
	}

	// Unknown presets and codes degrade gracefully
	if got := GetSystemPrompt("unknown", "xx", "yy"); !strings.Contains(got, "xx") {
		t.Fatalf("unknown language code should pass through: %s", got)
	}
}

func TestSystemPromptFor_CustomInstructions(t *testing.T) {
	opts := Options{SourceLang: "ja", TargetLang: "zh-TW", Preset: "custom", CustomPrompt: "Keep sword names untranslated"}
	got := systemPromptFor(opts)
	if !strings.Contains(got, "Keep sword names untranslated") {
		t.Fatalf("custom instructions not appended: %s", got)
	}

	// Custom instructions only apply to the custom preset
	opts.Preset = "anime"
	if strings.Contains(systemPromptFor(opts), "Keep sword names untranslated") {
		t.Fatal("custom instructions leaked into a non-custom preset")
	}
}

func TestDeepLLangCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"zh-TW", "ZH-HANT"},
		{"ja", "JA"},
		{"pt", "PT-BR"},
		{"xx", "XX"},
	}
	for _, tt := range tests {
		if got := deeplLangCode(tt.in); got != tt.want {
			t.Fatalf("deeplLangCode(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
