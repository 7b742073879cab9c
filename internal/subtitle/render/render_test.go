package render

import (
	"strings"
	"testing"
)

func TestSRTTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.042, "00:01:01,042"},
		{3661.999, "01:01:01,999"},
		{-2, "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := srtTime(tt.in); got != tt.want {
			t.Fatalf("srtTime(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSRT(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2.5, Text: "你好\nこんにちは"},
		{Start: 3, End: 5, Text: "再見"},
	}
	got := FormatSRT(cues)
	want := "1\n" +
		"00:00:00,000 --> 00:00:02,500\n" +
		"你好\nこんにちは\n\n" +
		"2\n" +
		"00:00:03,000 --> 00:00:05,000\n" +
		"再見\n\n"
	if got != want {
		t.Fatalf("FormatSRT:\ngot  %q\nwant %q", got, want)
	}
}

func TestASSTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00:00.00"},
		{1.87, "0:00:01.87"},
		{61.4, "0:01:01.40"},
		{3661.25, "1:01:01.25"},
	}
	for _, tt := range tests {
		if got := assTime(tt.in); got != tt.want {
			t.Fatalf("assTime(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatASS(t *testing.T) {
	cues := []Cue{
		{Start: 1, End: 2, Text: "中文\n日本語"},
		{Start: 3, End: 4, Text: "braces {override} here"},
	}
	got := FormatASS(cues, "Noto Sans CJK TC", 30)

	if !strings.Contains(got, "Style: Default,Noto Sans CJK TC,30,") {
		t.Fatalf("missing style line:\n%s", got)
	}
	if !strings.Contains(got, `Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,中文\N日本語`) {
		t.Fatalf("missing bilingual dialogue line:\n%s", got)
	}
	// Override braces must be neutralized so libass does not parse them
	if !strings.Contains(got, "braces (override) here") {
		t.Fatalf("braces not escaped:\n%s", got)
	}
	if strings.Contains(got, "{override}") {
		t.Fatalf("raw braces leaked:\n%s", got)
	}
}

func TestFormatASS_FontFallbacks(t *testing.T) {
	got := FormatASS(nil, "", 0)
	if !strings.Contains(got, "Style: Default,Noto Sans CJK TC,36,") {
		t.Fatalf("defaults not applied:\n%s", got)
	}

	// Commas in font names would break the style line
	got = FormatASS(nil, "Weird, Font", 24)
	if !strings.Contains(got, "Style: Default,Weird  Font,24,") {
		t.Fatalf("comma in font name not sanitized:\n%s", got)
	}
}

func TestFormatVTT(t *testing.T) {
	cues := []Cue{{Start: 0.5, End: 2, Text: "你好"}}
	got := FormatVTT(cues)
	want := "WEBVTT\n\n00:00:00.500 --> 00:00:02.000\n你好\n\n"
	if got != want {
		t.Fatalf("FormatVTT:\ngot  %q\nwant %q", got, want)
	}
}

func TestParseSRT_RoundTrip(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2.5, Text: "你好\nこんにちは"},
		{Start: 3.25, End: 5, Text: "再見"},
	}
	parsed := ParseSRT(FormatSRT(cues))
	if len(parsed) != len(cues) {
		t.Fatalf("parsed %d cues; want %d", len(parsed), len(cues))
	}
	for i := range cues {
		if parsed[i].Start != cues[i].Start || parsed[i].End != cues[i].End {
			t.Fatalf("cue %d timing = [%v, %v]; want [%v, %v]",
				i, parsed[i].Start, parsed[i].End, cues[i].Start, cues[i].End)
		}
		if parsed[i].Text != cues[i].Text {
			t.Fatalf("cue %d text = %q; want %q", i, parsed[i].Text, cues[i].Text)
		}
	}
}

func TestParseSRT_CRLFAndJunk(t *testing.T) {
	data := "1\r\n00:00:00,000 --> 00:00:01,000\r\nhello\r\n\r\nnot a cue\r\n\r\n"
	parsed := ParseSRT(data)
	if len(parsed) != 1 {
		t.Fatalf("parsed %d cues; want 1", len(parsed))
	}
	if parsed[0].Text != "hello" {
		t.Fatalf("text = %q", parsed[0].Text)
	}
}
