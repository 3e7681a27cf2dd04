package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GoVersion, info.GoVersion)
	assert.False(t, info.BuildTime.IsZero())
}

func TestString(t *testing.T) {
	out := Info().String()

	assert.True(t, strings.HasPrefix(out, "pygdf columnar library\n"))
	assert.Contains(t, out, "Version: ")
	assert.Contains(t, out, "Go Version: ")
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "pygdf/"+Version, UserAgent())
}

func TestIsRelease(t *testing.T) {
	assert.False(t, IsRelease(), "the default dev version is not a release")
}
