package whisper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/ffmpeg"
)

var (
	// ErrEmptyChunk means the speech service recognized nothing in a chunk
	// that should contain audio. Silent gaps inside a chunk are fine; an
	// entirely empty chunk is not, so the run aborts rather than producing
	// subtitles with a hole the size of a chunk.
	ErrEmptyChunk = errors.New("transcription returned no segments for chunk")

	// ErrNoSegments means the merged transcript is empty.
	ErrNoSegments = errors.New("transcription produced no segments")
)

// chunkSpec is one slice of the recording.
type chunkSpec struct {
	index    int
	start    float64
	duration float64
}

// Chunker splits a long recording into fixed-size pieces, transcribes each
// one, and rebases the per-chunk timestamps to one contiguous timeline.
type Chunker struct {
	engine Transcriber

	// Replaceable for tests.
	duration func(path string) (float64, error)
	slice    func(ctx context.Context, audioPath string, startSec, durationSec float64, outPath string) error
}

func NewChunker(engine Transcriber) *Chunker {
	return &Chunker{
		engine:   engine,
		duration: ffmpeg.DurationSeconds,
		slice:    ffmpeg.SliceAudio,
	}
}

// TranscribeAll transcribes audioPath in chunks of at most chunkSeconds and
// returns the merged segment list with absolute timestamps. progress may be
// nil.
func (c *Chunker) TranscribeAll(ctx context.Context, audioPath string, chunkSeconds int, language, model string, progress func(float64)) ([]Segment, error) {
	if chunkSeconds <= 0 {
		chunkSeconds = 600
	}

	total, err := c.duration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe audio duration: %w", err)
	}

	plan := chunkPlan(total, chunkSeconds)
	log.Printf("[whisper] audio is %.1fs, transcribing in %d chunk(s) of up to %ds", total, len(plan), chunkSeconds)

	var tmpDir string
	if len(plan) > 1 {
		tmpDir, err = os.MkdirTemp("", "captioner-chunks-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmpDir)
	}

	var merged []Segment
	for _, chunk := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunkPath := audioPath
		if len(plan) > 1 {
			chunkPath = filepath.Join(tmpDir, fmt.Sprintf("chunk_%03d.wav", chunk.index))
			if err := c.slice(ctx, audioPath, chunk.start, chunk.duration, chunkPath); err != nil {
				return nil, fmt.Errorf("slice chunk %d: %w", chunk.index, err)
			}
		}

		result, err := c.engine.Transcribe(ctx, TranscribeRequest{
			AudioPath: chunkPath,
			Language:  language,
			Model:     model,
		})
		if err != nil {
			return nil, fmt.Errorf("transcribe chunk %d/%d: %w", chunk.index+1, len(plan), err)
		}
		if len(result.Segments) == 0 {
			return nil, fmt.Errorf("chunk %d/%d (%.0fs-%.0fs): %w",
				chunk.index+1, len(plan), chunk.start, chunk.start+chunk.duration, ErrEmptyChunk)
		}

		merged = append(merged, offsetSegments(result.Segments, chunk.start)...)
		log.Printf("[whisper] chunk %d/%d: %d segments", chunk.index+1, len(plan), len(result.Segments))

		if progress != nil {
			progress(float64(chunk.index+1) / float64(len(plan)))
		}
	}

	if len(merged) == 0 {
		return nil, ErrNoSegments
	}
	return merged, nil
}

// chunkPlan divides totalSeconds into ceil(total/chunkSeconds) slices. The
// last slice carries the remainder; a non-positive duration still yields one
// slice so the engine gets a chance to report the real problem.
func chunkPlan(totalSeconds float64, chunkSeconds int) []chunkSpec {
	size := float64(chunkSeconds)
	n := int(math.Ceil(totalSeconds / size))
	if n < 1 {
		n = 1
	}

	plan := make([]chunkSpec, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * size
		duration := size
		if start+duration > totalSeconds && totalSeconds > start {
			duration = totalSeconds - start
		}
		plan = append(plan, chunkSpec{index: i, start: start, duration: duration})
	}
	return plan
}

// offsetSegments shifts chunk-local timestamps by the chunk start.
func offsetSegments(segments []Segment, offset float64) []Segment {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		s.Start += offset
		s.End += offset
		out[i] = s
	}
	return out
}
