package caption

import (
	"testing"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/config"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/job"
)

func TestVideoHash(t *testing.T) {
	a := VideoHash("anime/ep01.mkv")
	b := VideoHash("anime/ep01.mkv")
	c := VideoHash("anime/ep02.mkv")

	if a != b {
		t.Fatal("hash must be deterministic")
	}
	if a == c {
		t.Fatal("different paths must hash differently")
	}
	if len(a) != 12 {
		t.Fatalf("hash length = %d; want 12", len(a))
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &config.Config{
		WhisperModel:   "whisper-1",
		TranslateModel: "gpt-4o-mini",
		SourceLang:     "ja",
		TargetLang:     "zh-TW",
		ChunkSeconds:   600,
		BatchSize:      60,
		FontName:       "Noto Sans CJK TC",
	}
	s := &Service{cfg: cfg}

	var p job.CaptionParams
	s.applyDefaults(&p)

	if p.Engine != "openai" {
		t.Fatalf("Engine = %q; want openai", p.Engine)
	}
	if p.SourceLang != "ja" || p.TargetLang != "zh-TW" {
		t.Fatalf("languages = %q -> %q", p.SourceLang, p.TargetLang)
	}
	if p.ChunkSeconds != 600 || p.BatchSize != 60 {
		t.Fatalf("sizes = %d, %d", p.ChunkSeconds, p.BatchSize)
	}

	// Explicit values survive
	p = job.CaptionParams{Engine: "deepl", TargetLang: "en", ChunkSeconds: 120}
	s.applyDefaults(&p)
	if p.Engine != "deepl" || p.TargetLang != "en" || p.ChunkSeconds != 120 {
		t.Fatalf("explicit params overwritten: %+v", p)
	}
}
