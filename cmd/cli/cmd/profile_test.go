package cmd_test

import (
	"net/http"
	"testing"

	vocabulary "github.com/dewarrum/vocabulary-client"
	"github.com/dewarrum/vocabulary-client/internal/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileCommand_Success(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetProfile", mock.Anything).Return(
		&vocabulary.Profile{Name: "Ann Example", Username: "ann", Roles: []string{"admin", "editor"}},
		nil,
	).Once()

	output, _, err := executeCommand(t, mockClient, "profile")

	require.NoError(t, err)
	assert.Contains(t, output, "Name: Ann Example")
	assert.Contains(t, output, "Username: ann")
	assert.Contains(t, output, "Roles: admin, editor")
	mockClient.AssertExpectations(t)
}

func TestProfileCommand_NoRoles(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetProfile", mock.Anything).Return(&vocabulary.Profile{Name: "B", Username: "b"}, nil).Once()

	output, _, err := executeCommand(t, mockClient, "profile")

	require.NoError(t, err)
	assert.Contains(t, output, "Roles: (none)")
}

func TestProfileCommand_NotSignedIn(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetProfile", mock.Anything).Return(nil, nil).Once()

	output, _, err := executeCommand(t, mockClient, "profile")

	require.NoError(t, err)
	assert.Contains(t, output, "Not signed in.")
	mockClient.AssertExpectations(t)
}

func TestProfileCommand_APIError(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetProfile", mock.Anything).Return(nil, assert.AnError).Once()

	_, errOutput, err := executeCommand(t, mockClient, "profile")

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError, "Expected the underlying API error to be wrapped")
	assert.Contains(t, err.Error(), "profile request failed:")
	assert.Contains(t, errOutput, "Profile request failed")
	mockClient.AssertExpectations(t)
}

func TestProfileCommand_RejectsArgs(t *testing.T) {
	mockClient := new(MockClient)

	_, _, err := executeCommand(t, mockClient, "profile", "extra")

	assert.Error(t, err)
	mockClient.AssertNotCalled(t, "GetProfile", mock.Anything)
}

func TestProfileCommand_AgainstBackend(t *testing.T) {
	server := fakeapi.New(t, "")
	server.HandleProfile(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "session=abc" {
			fakeapi.JSON(http.StatusUnauthorized, `{}`)(w, r)
			return
		}
		fakeapi.JSON(http.StatusOK, `{"name":"Ann","username":"ann","roles":["x"]}`)(w, r)
	})

	output, _, err := executeCommand(t, nil, "profile", "--base-url", server.URL, "--cookie", "session=abc")
	require.NoError(t, err)
	assert.Contains(t, output, "Username: ann")

	output, _, err = executeCommand(t, nil, "profile", "--base-url", server.URL, "--cookie", "session=stale")
	require.NoError(t, err)
	assert.Contains(t, output, "Not signed in.")

	assert.Equal(t, 2, server.RequestCount())
}

func TestProfileCommand_MissingBaseURL(t *testing.T) {
	t.Setenv("PUBLIC_API_BASE_URL", "")
	t.Setenv("VLCLI_API_BASEURL", "")

	// resetFlags leaves --base-url changed to "", which takes precedence over env and config.
	_, _, err := executeCommand(t, nil, "profile")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize client")
	assert.Contains(t, err.Error(), "base URL is not configured")
}
