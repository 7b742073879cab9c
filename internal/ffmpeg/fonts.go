package ffmpeg

import (
	"os"
	"path/filepath"
	"runtime"
)

// ResolveFontsDir picks a fonts directory for subtitle burn-in. Preference
// order: explicit path, CAPTIONER_FONTS_DIR, a project-local ./fonts
// directory, then common system font locations. Returns "" when nothing
// usable exists; libass then falls back to system font discovery.
func ResolveFontsDir(preferred string) string {
	if preferred != "" && dirExists(preferred) {
		return preferred
	}

	if env := os.Getenv("CAPTIONER_FONTS_DIR"); env != "" && dirExists(env) {
		return env
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, "fonts")
		if dirExists(local) {
			return local
		}
	}

	for _, candidate := range systemFontDirs() {
		if dirExists(candidate) {
			return candidate
		}
	}
	return ""
}

func systemFontDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home := os.Getenv("HOME"); home != "" {
			dirs = append(dirs, filepath.Join(home, "Library/Fonts"))
		}
		return dirs
	case "windows":
		return []string{`C:\Windows\Fonts`}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			"/usr/share/fonts/truetype",
		}
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
