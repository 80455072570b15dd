package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "my holiday clip", fallbackTitle("my.holiday.clip.mp4"))
	assert.Equal(t, "clip", fallbackTitle("clip"))
	assert.Equal(t, "", fallbackTitle(".mp4"))
}
