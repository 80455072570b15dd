package vocabulary

import (
	"context"

	"github.com/dewarrum/vocabulary-client/internal/constants"
	log "github.com/sirupsen/logrus"
)

// SearchSubtitles runs a full-text search over subtitle cues.
// An empty query returns an empty result without contacting the backend.
// Results are returned in the order the backend sent them.
func (c *Client) SearchSubtitles(ctx context.Context, query string) ([]Subtitle, error) {
	if query == "" {
		return []Subtitle{}, nil
	}

	var subtitles []Subtitle
	params := SearchSubtitlesParams{Query: query}
	err := c.httpClient.Get(ctx, constants.SubtitlesSearchPath, params, &subtitles)
	if err != nil {
		return nil, err
	}
	if subtitles == nil {
		subtitles = []Subtitle{}
	}

	c.logger.WithFields(log.Fields{
		"query":   query,
		"results": len(subtitles),
	}).Debug("Subtitle search completed")

	return subtitles, nil
}
