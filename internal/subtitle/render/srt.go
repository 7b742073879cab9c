package render

import (
	"fmt"
	"strings"
)

// FormatSRT renders cues as an SRT document
func FormatSRT(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTime(cue.Start), srtTime(cue.End))
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// srtTime formats seconds as HH:MM:SS,mmm
func srtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int(seconds*1000 + 0.5)
	h := millis / 3600000
	m := millis / 60000 % 60
	s := millis / 1000 % 60
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
