package whisper

import "context"

// Segment is a time-bounded unit of recognized speech. Timestamps are
// seconds relative to the submitted audio; the chunk orchestrator rebases
// them to the full recording.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscribeRequest is the input for a transcription
type TranscribeRequest struct {
	AudioPath string // absolute path to the audio file
	Language  string // source language hint, e.g. "ja"
	Model     string // e.g. "whisper-1"
}

// TranscribeResult is the output of a transcription
type TranscribeResult struct {
	Text     string    // full transcript text
	Segments []Segment // ordered, timestamps local to the submitted audio
}

// Transcriber is the common interface for speech-to-text engines
type Transcriber interface {
	// Transcribe converts one audio file to timed segments
	Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error)
	// Name returns the engine name
	Name() string
}
