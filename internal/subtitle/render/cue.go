// Package render writes subtitle cues to SRT, ASS, and WebVTT.
package render

// Cue is one subtitle entry. Text may contain newlines; the writers encode
// the line break per format.
type Cue struct {
	Start float64 // seconds
	End   float64 // seconds
	Text  string
}
