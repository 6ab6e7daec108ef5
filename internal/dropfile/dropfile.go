// Package dropfile turns a drag-and-drop payload into local video paths:
// decode the text/uri-list, expand dropped playlists, then keep only files
// that are actually video. Input order is preserved throughout, since it
// drives the order cells appear on the wall.
package dropfile

import (
	"bufio"
	"bytes"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ushis/m3u"
)

// ParseURIList decodes a text/uri-list drag payload into local file paths.
// Comment lines and non-file URIs are skipped.
func ParseURIList(data []byte) []string {
	var paths []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		u, err := url.Parse(line)
		if err != nil {
			log.Printf("failed parsing dropped URI %q: %v\n", line, err)
			continue
		}
		if u.Scheme != "file" {
			log.Println("unknown file scheme (only locals):", u.Scheme)
			continue
		}

		paths = append(paths, u.Path)
	}

	return paths
}

// Expand expands dropped .m3u playlist files into the paths they list,
// resolved against the playlist's directory. Anything else passes through
// untouched. Unreadable playlists are logged and skipped.
func Expand(paths []string) []string {
	var expanded []string

	for _, path := range paths {
		if !strings.EqualFold(filepath.Ext(path), ".m3u") {
			expanded = append(expanded, path)
			continue
		}

		entries, err := expandPlaylist(path)
		if err != nil {
			log.Printf("failed expanding playlist %q: %v\n", path, err)
			continue
		}

		expanded = append(expanded, entries...)
	}

	return expanded
}

func expandPlaylist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pl, err := m3u.Parse(f)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)

	entries := make([]string, 0, len(pl))
	for _, track := range pl {
		p := track.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		entries = append(entries, p)
	}

	return entries, nil
}

// videoExts is the container allowlist used when a file cannot be sniffed.
var videoExts = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".mkv":  true,
	".webm": true,
	".mov":  true,
	".avi":  true,
	".ts":   true,
	".ogv":  true,
}

// FilterVideos keeps only paths whose content sniffs as a video type.
// Non-video files are dropped silently; that is the contract of the drop
// surface, not an error.
func FilterVideos(paths []string) []string {
	var videos []string

	for _, path := range paths {
		if isVideo(path) {
			videos = append(videos, path)
		}
	}

	return videos
}

func isVideo(path string) bool {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		// Can't read it; trust the container extension and let the
		// allocator surface the real error later.
		return videoExts[strings.ToLower(filepath.Ext(path))]
	}

	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "video/") {
			return true
		}
	}

	return false
}
