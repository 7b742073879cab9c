package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"episode01.mkv", true},
		{"movie.MP4", true},
		{"notes.txt", false},
		{"subs.srt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(tt.name); got != tt.want {
			t.Fatalf("IsVideoFile(%q) = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestListDirectory_FiltersNonMedia(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"a.mkv", "b.srt", "readme.md", ".hidden.mp4"} {
		if err := os.WriteFile(filepath.Join(base, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(base, "season1"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := ListDirectory(base, ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(map[string]bool)
	for _, e := range entries {
		got[e.Name] = true
	}
	for _, want := range []string{"a.mkv", "b.srt", "season1"} {
		if !got[want] {
			t.Fatalf("missing %q in %v", want, got)
		}
	}
	for _, banned := range []string{"readme.md", ".hidden.mp4"} {
		if got[banned] {
			t.Fatalf("%q should be filtered out", banned)
		}
	}
}

func TestListDirectory_BlocksTraversal(t *testing.T) {
	base := t.TempDir()
	if _, err := ListDirectory(base, "../.."); !errors.Is(err, os.ErrPermission) {
		t.Fatalf("err = %v; want os.ErrPermission", err)
	}
}

func TestSearch(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "anime"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"anime/Frieren_01.mkv", "anime/Frieren_02.mkv", "other.mp4"} {
		if err := os.WriteFile(filepath.Join(base, p), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Search(base, "frieren", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results; want 2", len(results))
	}

	limited, err := Search(base, "frieren", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("got %d results; want 1 with maxResults=1", len(limited))
	}
}
