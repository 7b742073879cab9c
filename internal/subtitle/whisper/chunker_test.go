package whisper

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeTranscriber returns scripted segments per chunk, in call order.
type fakeTranscriber struct {
	calls   int
	results [][]Segment
	err     error
}

func (f *fakeTranscriber) Name() string { return "fake" }

func (f *fakeTranscriber) Transcribe(_ context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var segs []Segment
	if f.calls < len(f.results) {
		segs = f.results[f.calls]
	}
	f.calls++
	return &TranscribeResult{Segments: segs}, nil
}

func newTestChunker(engine Transcriber, totalSeconds float64) (*Chunker, *[]float64) {
	var sliceStarts []float64
	c := NewChunker(engine)
	c.duration = func(string) (float64, error) { return totalSeconds, nil }
	c.slice = func(_ context.Context, _ string, start, _ float64, _ string) error {
		sliceStarts = append(sliceStarts, start)
		return nil
	}
	return c, &sliceStarts
}

func TestChunkPlan(t *testing.T) {
	tests := []struct {
		total     float64
		chunk     int
		wantN     int
		wantLastD float64
	}{
		{1500, 600, 3, 300},
		{600, 600, 1, 600},
		{601, 600, 2, 1},
		{59, 600, 1, 59},
		{0, 600, 1, 600},
	}
	for _, tt := range tests {
		plan := chunkPlan(tt.total, tt.chunk)
		if len(plan) != tt.wantN {
			t.Fatalf("chunkPlan(%v, %d): %d chunks; want %d", tt.total, tt.chunk, len(plan), tt.wantN)
		}
		last := plan[len(plan)-1]
		if last.duration != tt.wantLastD {
			t.Fatalf("chunkPlan(%v, %d): last duration %v; want %v", tt.total, tt.chunk, last.duration, tt.wantLastD)
		}
		for i, c := range plan {
			if c.start != float64(i*tt.chunk) {
				t.Fatalf("chunk %d start = %v; want %v", i, c.start, float64(i*tt.chunk))
			}
		}
	}
}

func TestTranscribeAll_OffsetsRebased(t *testing.T) {
	engine := &fakeTranscriber{
		results: [][]Segment{
			{{Start: 0, End: 5, Text: "一"}, {Start: 590, End: 599, Text: "二"}},
			{{Start: 1, End: 4, Text: "三"}},
			{{Start: 10, End: 20, Text: "四"}},
		},
	}
	c, sliceStarts := newTestChunker(engine, 1500)

	segs, err := c.TranscribeAll(context.Background(), "audio.wav", 600, "ja", "whisper-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 4 {
		t.Fatalf("got %d segments; want 4", len(segs))
	}

	// Chunk 1 offset 600, chunk 2 offset 1200
	if segs[2].Start != 601 || segs[2].End != 604 {
		t.Fatalf("segment 2 = [%v, %v]; want [601, 604]", segs[2].Start, segs[2].End)
	}
	if segs[3].Start != 1210 || segs[3].End != 1220 {
		t.Fatalf("segment 3 = [%v, %v]; want [1210, 1220]", segs[3].Start, segs[3].End)
	}

	// Timestamps must be monotonic across chunk boundaries
	for i := 1; i < len(segs); i++ {
		if segs[i].Start < segs[i-1].Start {
			t.Fatalf("segment %d starts before segment %d", i, i-1)
		}
	}

	if len(*sliceStarts) != 3 {
		t.Fatalf("sliced %d chunks; want 3", len(*sliceStarts))
	}
	if (*sliceStarts)[2] != 1200 {
		t.Fatalf("last slice start = %v; want 1200", (*sliceStarts)[2])
	}
}

func TestTranscribeAll_SingleChunkSkipsSlicing(t *testing.T) {
	engine := &fakeTranscriber{
		results: [][]Segment{{{Start: 0, End: 2, Text: "短"}}},
	}
	c, sliceStarts := newTestChunker(engine, 120)

	segs, err := c.TranscribeAll(context.Background(), "audio.wav", 600, "ja", "whisper-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments; want 1", len(segs))
	}
	if len(*sliceStarts) != 0 {
		t.Fatal("short audio should be transcribed whole, without slicing")
	}
}

func TestTranscribeAll_EmptyChunkFatal(t *testing.T) {
	engine := &fakeTranscriber{
		results: [][]Segment{
			{{Start: 0, End: 5, Text: "一"}},
			{}, // chunk 2 recognizes nothing
			{{Start: 0, End: 5, Text: "三"}},
		},
	}
	c, _ := newTestChunker(engine, 1500)

	_, err := c.TranscribeAll(context.Background(), "audio.wav", 600, "ja", "whisper-1", nil)
	if !errors.Is(err, ErrEmptyChunk) {
		t.Fatalf("err = %v; want ErrEmptyChunk", err)
	}
	if !strings.Contains(err.Error(), "chunk 2/3") {
		t.Fatalf("err = %v; want offending chunk named", err)
	}
	if engine.calls != 2 {
		t.Fatalf("engine called %d times; want abort after chunk 2", engine.calls)
	}
}

func TestTranscribeAll_EngineErrorPropagates(t *testing.T) {
	cause := errors.New("service down")
	engine := &fakeTranscriber{err: cause}
	c, _ := newTestChunker(engine, 1500)

	_, err := c.TranscribeAll(context.Background(), "audio.wav", 600, "ja", "whisper-1", nil)
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v; want wrapped cause", err)
	}
}
