package vocabulary

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Profile is the authenticated user's identity record.
type Profile struct {
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the profile carries the given role.
func (p *Profile) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Subtitle is a single timed cue of a video's subtitles.
type Subtitle struct {
	ID       string    `json:"id"`
	VideoID  uuid.UUID `json:"videoId"`
	Sequence int       `json:"sequence"` // Ordering index within the video
	StartMs  int64     `json:"startMs"`
	EndMs    int64     `json:"endMs"`
	Text     string    `json:"text"`
}

// Start returns the cue's start offset.
func (s Subtitle) Start() time.Duration {
	return time.Duration(s.StartMs) * time.Millisecond
}

// End returns the cue's end offset.
func (s Subtitle) End() time.Duration {
	return time.Duration(s.EndMs) * time.Millisecond
}

// Duration returns how long the cue is displayed.
func (s Subtitle) Duration() time.Duration {
	return s.End() - s.Start()
}

// SearchSubtitlesParams are the query parameters of the subtitle search endpoint.
type SearchSubtitlesParams struct {
	Query string `url:"query"`
}

// ManifestParams are the query parameters of the manifest endpoint.
type ManifestParams struct {
	SubtitleID string `url:"subtitleId"`
}

// Manifest is a DASH (MPD) manifest covering the clip around one subtitle cue.
// Segment URLs inside are presigned and expire.
type Manifest struct {
	SubtitleID  string
	ContentType string
	Data        []byte
}

// UploadFile is one file of an upload. Reader is consumed exactly once.
type UploadFile struct {
	FileName    string
	ContentType string // Optional: defaults to application/octet-stream
	Reader      io.Reader
}

// UploadVideoParams is the body of the admin video upload.
type UploadVideoParams struct {
	VideoName string
	Video     UploadFile
	Subtitles UploadFile
}

// UploadVideoResponse is returned once the backend has stored a video and queued its export.
type UploadVideoResponse struct {
	VideoID uuid.UUID `json:"videoId"`
}

// Query pairs a cache key with the function that fetches the value, so a
// caller's own state layer can cache and refetch it.
type Query[T any] struct {
	Key   []string
	Fetch func(ctx context.Context) (T, error)
}
