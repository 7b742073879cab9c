package translate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// fakeEngine scripts batch and single behavior for the batcher tests.
type fakeEngine struct {
	batchCalls  int
	singleCalls int

	// batchFn may be nil, meaning translate every line successfully
	batchFn func(lines []string) ([]string, error)
	// singleErr, when set, fails single calls for that exact line
	singleErr map[string]error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) TranslateBatch(_ context.Context, lines []string, _ Options) ([]string, error) {
	f.batchCalls++
	if f.batchFn != nil {
		return f.batchFn(lines)
	}
	return translated(lines), nil
}

func (f *fakeEngine) TranslateSingle(_ context.Context, line string, _ Options) (string, error) {
	f.singleCalls++
	if err, ok := f.singleErr[line]; ok {
		return "", err
	}
	return "T:" + line, nil
}

func translated(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "T:" + l
	}
	return out
}

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i)
	}
	return lines
}

func TestTranslateAll_HappyPath(t *testing.T) {
	engine := &fakeEngine{}
	lines := makeLines(5)

	got, err := TranslateAll(context.Background(), engine, lines, 60, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, translated(lines)) {
		t.Fatalf("got %v", got)
	}
	if engine.batchCalls != 1 {
		t.Fatalf("batchCalls = %d; want 1", engine.batchCalls)
	}
	if engine.singleCalls != 0 {
		t.Fatalf("singleCalls = %d; want 0", engine.singleCalls)
	}
}

func TestTranslateAll_Windows(t *testing.T) {
	engine := &fakeEngine{}
	lines := makeLines(5)

	got, err := TranslateAll(context.Background(), engine, lines, 2, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, translated(lines)) {
		t.Fatalf("got %v", got)
	}
	// Windows [0,2) [2,4) [4,5): even the single-line window goes bulk first
	if engine.batchCalls != 3 {
		t.Fatalf("batchCalls = %d; want 3", engine.batchCalls)
	}
	if engine.singleCalls != 0 {
		t.Fatalf("singleCalls = %d; want 0", engine.singleCalls)
	}
}

func TestTranslateAll_CountMismatchBisectsToSingles(t *testing.T) {
	engine := &fakeEngine{
		// Always drop a line so every multi-line batch fails
		batchFn: func(lines []string) ([]string, error) {
			return translated(lines)[:len(lines)-1], nil
		},
	}
	lines := makeLines(4)

	got, err := TranslateAll(context.Background(), engine, lines, 60, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, translated(lines)) {
		t.Fatalf("got %v; want every line recovered via singles", got)
	}
	if engine.singleCalls != 4 {
		t.Fatalf("singleCalls = %d; want 4", engine.singleCalls)
	}
	// Full bisection of n lines makes exactly 2n-1 batch calls
	if engine.batchCalls != 7 {
		t.Fatalf("batchCalls = %d; want 7", engine.batchCalls)
	}
}

func TestTranslateAll_BatchErrorBisects(t *testing.T) {
	engine := &fakeEngine{
		batchFn: func(lines []string) ([]string, error) {
			if len(lines) > 2 {
				return nil, errors.New("model choked")
			}
			return translated(lines), nil
		},
	}
	lines := makeLines(8)

	got, err := TranslateAll(context.Background(), engine, lines, 60, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, translated(lines)) {
		t.Fatalf("got %v", got)
	}
	if engine.singleCalls != 0 {
		t.Fatalf("singleCalls = %d; want 0, batches of 2 should succeed", engine.singleCalls)
	}
}

func TestTranslateAll_SingleFailureAbortsWithIndex(t *testing.T) {
	cause := errors.New("policy refusal")
	engine := &fakeEngine{
		batchFn: func(lines []string) ([]string, error) {
			return nil, errors.New("mismatch")
		},
		singleErr: map[string]error{"line2": cause},
	}
	lines := makeLines(4)

	_, err := TranslateAll(context.Background(), engine, lines, 60, Options{}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v; want wrapped cause", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v; want offending index in message", err)
	}
}

func TestTranslateAll_ProgressReachesOne(t *testing.T) {
	engine := &fakeEngine{}
	var last float64

	_, err := TranslateAll(context.Background(), engine, makeLines(7), 3, Options{}, func(p float64) {
		if p < last {
			t.Fatalf("progress went backwards: %f after %f", p, last)
		}
		last = p
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != 1.0 {
		t.Fatalf("final progress = %f; want 1.0", last)
	}
}

func TestTranslateAll_EmptyInput(t *testing.T) {
	engine := &fakeEngine{}
	got, err := TranslateAll(context.Background(), engine, nil, 60, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v; want empty", got)
	}
	if engine.batchCalls != 0 || engine.singleCalls != 0 {
		t.Fatal("no engine calls expected for empty input")
	}
}
