package render

import (
	"fmt"
	"strings"
)

// FormatVTT renders cues as WebVTT, the format browser <track> elements want.
func FormatVTT(cues []Cue) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, cue := range cues {
		fmt.Fprintf(&b, "%s --> %s\n", vttTime(cue.Start), vttTime(cue.End))
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// vttTime formats seconds as HH:MM:SS.mmm
func vttTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int(seconds*1000 + 0.5)
	h := millis / 3600000
	m := millis / 60000 % 60
	s := millis / 1000 % 60
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ParseSRT reads an SRT document back into cues, tolerant of CRLF endings
// and missing trailing blank lines. Used when serving generated subtitles as
// WebVTT.
func ParseSRT(data string) []Cue {
	var cues []Cue
	blocks := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		// First line is the numeric index, second is the timing line
		timing := lines[1]
		if !strings.Contains(timing, "-->") {
			timing = lines[0]
			lines = append([]string{""}, lines...)
		}
		parts := strings.SplitN(timing, "-->", 2)
		if len(parts) != 2 {
			continue
		}
		start, ok1 := parseSRTTime(strings.TrimSpace(parts[0]))
		end, ok2 := parseSRTTime(strings.TrimSpace(parts[1]))
		if !ok1 || !ok2 || len(lines) < 3 {
			continue
		}
		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues
}

// parseSRTTime parses HH:MM:SS,mmm (or with a dot)
func parseSRTTime(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", ".")
	var h, m int
	var sec float64
	if _, err := fmt.Sscanf(s, "%d:%d:%f", &h, &m, &sec); err != nil {
		return 0, false
	}
	return float64(h)*3600 + float64(m)*60 + sec, true
}
