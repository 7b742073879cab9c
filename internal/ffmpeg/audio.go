package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ExtractAudio extracts the audio track as WAV 16kHz mono (the format the
// speech-to-text service expects) and returns the temp file path.
func ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	tmpFile, err := os.CreateTemp("", "captioner-audio-*.wav")
	if err != nil {
		return "", err
	}
	tmpFile.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", videoPath,
		"-vn", // no video
		"-acodec", "pcm_s16le",
		"-ar", "16000", // 16kHz
		"-ac", "1", // mono
		"-y", // overwrite
		tmpFile.Name(),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}

	return tmpFile.Name(), nil
}

// SliceAudio copies the [startSec, startSec+durationSec) range of an audio
// file into outPath without re-encoding.
func SliceAudio(ctx context.Context, audioPath string, startSec, durationSec float64, outPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-ss", strconv.FormatFloat(startSec, 'f', 3, 64),
		"-t", strconv.FormatFloat(durationSec, 'f', 3, 64),
		"-i", audioPath,
		"-c", "copy",
		"-y",
		outPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg slice: %s: %w", string(output), err)
	}
	return nil
}
