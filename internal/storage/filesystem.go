package storage

import (
	"os"
	"path/filepath"
	"strings"
)

type FileEntry struct {
	Name     string       `json:"name"`
	Path     string       `json:"path"`
	IsDir    bool         `json:"is_dir"`
	Size     int64        `json:"size,omitempty"`
	Children []*FileEntry `json:"children,omitempty"`
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
	".ts": true, ".mpg": true, ".mpeg": true,
}

var subtitleExtensions = map[string]bool{
	".srt": true, ".vtt": true, ".ass": true, ".ssa": true, ".sub": true,
}

func IsVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

func IsSubtitleFile(name string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListDirectory lists one level of the media tree, hiding dotfiles and
// non-media files. Directories always show so the tree stays navigable.
func ListDirectory(basePath, relativePath string) ([]*FileEntry, error) {
	fullPath := filepath.Join(basePath, relativePath)

	// Prevent path traversal
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	absFull, err := filepath.Abs(fullPath)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(absFull, absBase) {
		return nil, os.ErrPermission
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, err
	}

	var result []*FileEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !entry.IsDir() && !IsVideoFile(entry.Name()) && !IsSubtitleFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		fe := &FileEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(relativePath, entry.Name()),
			IsDir: entry.IsDir(),
		}
		if !entry.IsDir() {
			fe.Size = info.Size()
		}
		result = append(result, fe)
	}
	return result, nil
}

// Search walks the media tree for video files whose name contains the query.
func Search(basePath, query string, maxResults int) ([]*FileEntry, error) {
	query = strings.ToLower(query)
	var results []*FileEntry

	err := filepath.Walk(basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if len(results) >= maxResults {
			return filepath.SkipAll
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !IsVideoFile(info.Name()) {
			return nil
		}
		if strings.Contains(strings.ToLower(info.Name()), query) {
			rel, _ := filepath.Rel(basePath, path)
			results = append(results, &FileEntry{
				Name: info.Name(),
				Path: rel,
				Size: info.Size(),
			})
		}
		return nil
	})
	return results, err
}
