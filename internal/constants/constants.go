package constants

// BaseURLEnv is the environment variable holding the public API base URL.
const BaseURLEnv = "PUBLIC_API_BASE_URL"

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "VocabularyClient/0.1"

// Endpoint paths, relative to the base URL.
const (
	ProfilePath         = "/auth/profile"
	SubtitlesSearchPath = "/api/subtitles/search"
	VideoManifestPath   = "/api/videos/manifest.mpd"
	VideoUploadPath     = "/api/admin/videos/upload"
)

// Form fields of the video upload request.
const (
	UploadFieldVideo     = "video"
	UploadFieldSubtitles = "subtitles"
	UploadFieldVideoName = "videoName"
)

// DashContentType is the media type of a DASH manifest.
const DashContentType = "application/dash+xml"

// ProfileQueryKey identifies the profile query for callers keeping their own query cache.
const ProfileQueryKey = "profile"
