package vocabulary

import (
	"context"
	"errors"

	"github.com/dewarrum/vocabulary-client/internal/constants"
	coreErrors "github.com/dewarrum/vocabulary-client/pkg/core/errors"
)

// GetProfile retrieves the profile of the user owning the current session.
// When the backend answers 401 (or 2xx with a null body) there is no signed-in
// user: GetProfile then returns a nil profile and a nil error. Any other
// failure is returned as is.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile *Profile
	err := c.httpClient.Get(ctx, constants.ProfilePath, nil, &profile)
	if err != nil {
		if errors.Is(err, coreErrors.ErrUnauthorized) {
			c.logger.Debug("No active session, profile is absent")
			return nil, nil
		}
		return nil, err
	}
	if profile == nil {
		c.logger.Debug("Backend returned a null profile")
	}
	return profile, nil
}

// ProfileQuery describes GetProfile as a keyed query.
func (c *Client) ProfileQuery() Query[*Profile] {
	return Query[*Profile]{
		Key:   []string{constants.ProfileQueryKey},
		Fetch: c.GetProfile,
	}
}
