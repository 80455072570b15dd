package cmd_test

import (
	"net/http"
	"testing"

	vocabulary "github.com/dewarrum/vocabulary-client"
	"github.com/dewarrum/vocabulary-client/internal/fakeapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchCommand_Success_Args(t *testing.T) {
	mockClient := new(MockClient)
	videoID := uuid.MustParse("6f1c2c1e-8a7d-4b53-9d2f-0a1b2c3d4e5f")

	mockClient.On("SearchSubtitles", mock.Anything, "hello there").Return(
		[]vocabulary.Subtitle{
			{ID: "c-1", VideoID: videoID, Sequence: 3, StartMs: 4000, EndMs: 5250, Text: "hello there"},
			{ID: "c-2", VideoID: videoID, Sequence: 912, StartMs: 3723004, EndMs: 3725000, Text: "well, hello there"},
		},
		nil,
	).Once()

	output, errOutput, err := executeCommand(t, mockClient, "search", "hello", "there")

	require.NoError(t, err)
	assert.Empty(t, errOutput, "StdErr should be empty on success")
	assert.Contains(t, output, "Found 2 subtitles:")
	assert.Contains(t, output, "[00:00:04.000 -> 00:00:05.250] hello there (video 6f1c2c1e-8a7d-4b53-9d2f-0a1b2c3d4e5f, #3)")
	assert.Contains(t, output, "[01:02:03.004 -> 01:02:05.000] well, hello there (video 6f1c2c1e-8a7d-4b53-9d2f-0a1b2c3d4e5f, #912)")
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_Success_QueryFlag(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("SearchSubtitles", mock.Anything, "rock & roll").Return([]vocabulary.Subtitle{}, nil).Once()

	output, _, err := executeCommand(t, mockClient, "search", "--query", "rock & roll")

	require.NoError(t, err)
	assert.Contains(t, output, "No subtitles found.")
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_Fail_NoQuery(t *testing.T) {
	mockClient := new(MockClient) // No calls expected

	_, _, err := executeCommand(t, mockClient, "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "a search query is required")
	mockClient.AssertNotCalled(t, "SearchSubtitles", mock.Anything, mock.Anything)
}

func TestSearchCommand_Fail_APIError(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("SearchSubtitles", mock.Anything, "API Fail").Return(nil, assert.AnError).Once()

	_, _, err := executeCommand(t, mockClient, "search", "API Fail")

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError, "Expected the underlying API error to be wrapped")
	assert.Contains(t, err.Error(), "subtitle search failed:")
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_AgainstBackend(t *testing.T) {
	server := fakeapi.New(t, "/backend")
	server.HandleSearch(fakeapi.JSON(http.StatusOK, `[
		{"id":"c-1","videoId":"6f1c2c1e-8a7d-4b53-9d2f-0a1b2c3d4e5f","sequence":1,"startMs":0,"endMs":1500,"text":"100% sure"}
	]`))

	output, _, err := executeCommand(t, nil, "search", "--base-url", server.URL, "100%", "sure")

	require.NoError(t, err)
	assert.Contains(t, output, "[00:00:00.000 -> 00:00:01.500] 100% sure")

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/backend/api/subtitles/search", requests[0].Path)
	assert.Equal(t, "100% sure", requests[0].Query.Get("query"))
}

func TestSearchCommand_DebugLogging(t *testing.T) {
	server := fakeapi.New(t, "")

	_, errOutput, err := executeCommand(t, nil, "search", "--base-url", server.URL, "--debug", "hello")

	require.NoError(t, err)
	assert.Contains(t, errOutput, "Searching subtitles...")
	assert.Contains(t, errOutput, "Received response")
	assert.Contains(t, errOutput, "Subtitle search completed")
}
