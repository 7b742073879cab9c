package translate

import "context"

// Options carries per-job translation settings
type Options struct {
	SourceLang   string // e.g. "ja"
	TargetLang   string // e.g. "zh-TW"
	Model        string // chat model for LLM engines, ignored by DeepL
	Preset       string // "anime", "movie", "documentary", "custom"
	CustomPrompt string // extra instructions for the "custom" preset
}

// Engine is the common interface for translation backends. TranslateBatch
// may legitimately come back with the wrong number of lines (LLMs merge and
// split); the batcher detects that and recovers, so implementations should
// return whatever the service produced rather than papering over mismatches.
type Engine interface {
	// TranslateBatch translates an ordered slice of lines in one request
	TranslateBatch(ctx context.Context, lines []string, opts Options) ([]string, error)
	// TranslateSingle translates one line, the last-resort path for lines a
	// batch could not handle
	TranslateSingle(ctx context.Context, line string, opts Options) (string, error)
	// Name returns the engine name
	Name() string
}
