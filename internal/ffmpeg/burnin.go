package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// BurnIn re-encodes a video with the given ASS subtitles rendered into the
// picture. fontsDir, when non-empty, is handed to libass so CJK glyphs
// resolve without depending on system font configuration.
func BurnIn(ctx context.Context, videoPath, subsPath, outPath, fontsDir string) error {
	filter := "subtitles=" + escapeFilterPath(subsPath)
	if fontsDir != "" {
		filter += ":fontsdir=" + escapeFilterPath(fontsDir)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", videoPath,
		"-vf", filter,
		"-c:a", "copy",
		"-y",
		outPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg burn-in: %s: %w", string(output), err)
	}
	return nil
}

// escapeFilterPath escapes characters that the ffmpeg filter parser treats
// specially in filename arguments.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, ":", `\:`)
	path = strings.ReplaceAll(path, "=", `\=`)
	return path
}
