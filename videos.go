package vocabulary

import (
	"context"
	"fmt"
	"strings"

	"github.com/dewarrum/vocabulary-client/internal/constants"
	"github.com/dewarrum/vocabulary-client/internal/httpclient"
	coreErrors "github.com/dewarrum/vocabulary-client/pkg/core/errors"
	log "github.com/sirupsen/logrus"
)

// Methods related to videos (playback manifest, admin upload)

// GetManifest fetches the DASH manifest for the clip surrounding a subtitle cue,
// as returned by SearchSubtitles. The manifest is returned undecoded.
func (c *Client) GetManifest(ctx context.Context, subtitleID string) (*Manifest, error) {
	if subtitleID == "" {
		return nil, fmt.Errorf("%w: subtitle ID is required", coreErrors.ErrInvalidParameter)
	}

	data, contentType, err := c.httpClient.GetRaw(ctx, constants.VideoManifestPath, ManifestParams{SubtitleID: subtitleID}, constants.DashContentType)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty manifest for subtitle %s", subtitleID)
	}

	c.logger.WithFields(log.Fields{
		"subtitle_id": subtitleID,
		"bytes":       len(data),
	}).Debug("Manifest fetched")

	return &Manifest{
		SubtitleID:  subtitleID,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// UploadVideo uploads a video together with its subtitles file.
// Requires a session with the Admin role.
func (c *Client) UploadVideo(ctx context.Context, params UploadVideoParams) (*UploadVideoResponse, error) {
	if strings.TrimSpace(params.VideoName) == "" {
		return nil, fmt.Errorf("%w: video name is required", coreErrors.ErrInvalidParameter)
	}
	if params.Video.Reader == nil {
		return nil, fmt.Errorf("%w: video file is required", coreErrors.ErrInvalidParameter)
	}
	if params.Subtitles.Reader == nil {
		return nil, fmt.Errorf("%w: subtitles file is required", coreErrors.ErrInvalidParameter)
	}

	fields := map[string]string{constants.UploadFieldVideoName: params.VideoName}
	files := []httpclient.FormFile{
		{
			Field:       constants.UploadFieldVideo,
			FileName:    params.Video.FileName,
			ContentType: params.Video.ContentType,
			Reader:      params.Video.Reader,
		},
		{
			Field:       constants.UploadFieldSubtitles,
			FileName:    params.Subtitles.FileName,
			ContentType: params.Subtitles.ContentType,
			Reader:      params.Subtitles.Reader,
		},
	}

	var response UploadVideoResponse
	if err := c.httpClient.PostMultipart(ctx, constants.VideoUploadPath, fields, files, &response); err != nil {
		return nil, err
	}

	c.logger.WithFields(log.Fields{
		"video_name": params.VideoName,
		"video_id":   response.VideoID.String(),
	}).Info("Video uploaded")

	return &response, nil
}
