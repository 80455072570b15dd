// Package metadata derives upload metadata from local video files.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"
	log "github.com/sirupsen/logrus"
)

// VideoInfo is what a release-style file name says about a video.
type VideoInfo struct {
	FileName   string
	Title      string
	Year       int
	Season     int
	Episode    int
	Resolution string
}

// ParseVideoFileName parses the base name of path as a release name
// (e.g. "Some.Movie.2019.1080p.BluRay.x264-GRP.mkv").
// When parsing fails or yields no title, the title falls back to the
// base name without extension, dots replaced by spaces.
func ParseVideoFileName(path string) VideoInfo {
	info := VideoInfo{FileName: filepath.Base(path)}

	parsed, err := ptn.Parse(info.FileName)
	if err == nil && strings.TrimSpace(parsed.Title) != "" {
		info.Title = strings.TrimSpace(parsed.Title)
		info.Year = parsed.Year
		info.Season = parsed.Season
		info.Episode = parsed.Episode
		info.Resolution = parsed.Resolution
		return info
	}

	if err != nil {
		log.Warnf("Failed to parse video filename '%s': %v", info.FileName, err)
	}
	info.Title = fallbackTitle(info.FileName)
	return info
}

// VideoName is the display name for an upload: the title, then the
// episode tag or the year when known.
func VideoName(path string) string {
	info := ParseVideoFileName(path)
	switch {
	case info.Season > 0 && info.Episode > 0:
		return fmt.Sprintf("%s S%02dE%02d", info.Title, info.Season, info.Episode)
	case info.Year > 0:
		return fmt.Sprintf("%s (%d)", info.Title, info.Year)
	default:
		return info.Title
	}
}

func fallbackTitle(fileName string) string {
	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return strings.TrimSpace(strings.ReplaceAll(baseName, ".", " "))
}
