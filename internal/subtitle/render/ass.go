package render

import (
	"fmt"
	"strings"
)

// FormatASS renders cues as an ASS document with a single bottom-center
// style. libass resolves fontName against the fonts directory passed to the
// burn-in filter.
func FormatASS(cues []Cue, fontName string, fontSize int) string {
	if fontName == "" {
		fontName = "Noto Sans CJK TC"
	}
	if fontSize <= 0 {
		fontSize = 36
	}
	// Commas separate style fields
	font := strings.ReplaceAll(fontName, ",", " ")

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("YCbCr Matrix: TV.601\n")
	b.WriteString("\n")
	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	// White text, black outline, translucent shadow, bottom-center
	fmt.Fprintf(&b, "Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H64000000,0,0,0,0,100,100,0,0,1,2,0,2,10,10,20,1\n", font, fontSize)
	b.WriteString("\n")
	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, cue := range cues {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			assTime(cue.Start), assTime(cue.End), assText(cue.Text))
	}
	return b.String()
}

// assText encodes line breaks and neutralizes override braces
func assText(text string) string {
	t := strings.ReplaceAll(text, "\n", `\N`)
	t = strings.ReplaceAll(t, "{", "(")
	t = strings.ReplaceAll(t, "}", ")")
	return t
}

// assTime formats seconds as h:mm:ss.cs (centiseconds)
func assTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalCs := int(seconds*100 + 0.5)
	cs := totalCs % 100
	totalSecs := totalCs / 100
	s := totalSecs % 60
	m := totalSecs / 60 % 60
	h := totalSecs / 3600
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}
