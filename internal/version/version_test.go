package version

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withVars(t *testing.T, version, commit, built string) {
	t.Helper()
	oldV, oldC, oldB := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, built
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldB })
}

func TestGet_LinkedValues(t *testing.T) {
	withVars(t, "v1.2.0", "abc1234def", "2024-05-01T10:00:00Z")

	info := Get()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "abc1234def", info.GitCommit)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), info.BuildTime)
	assert.True(t, strings.Contains(info.Platform, "/"))
	assert.True(t, info.IsRelease())
	assert.Equal(t, "v1.2.0 (abc1234)", info.Short())
}

func TestBuildInfo_String(t *testing.T) {
	info := &BuildInfo{
		Version:   "v1.0.0",
		GitCommit: "abcdef0123",
		BuildTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Dirty:     true,
	}
	assert.Equal(t, "Version: v1.0.0\nCommit: abcdef0123 (dirty)\nBuilt: 2024-01-02T03:04:05Z\nGo: go1.24.4\nPlatform: linux/amd64", info.String())

	bare := &BuildInfo{Version: "dev", GitCommit: "unknown", GoVersion: "go1.24.4", Platform: "linux/amd64"}
	assert.Equal(t, "Version: dev\nGo: go1.24.4\nPlatform: linux/amd64", bare.String())
	assert.Equal(t, "dev", bare.Short())
	assert.False(t, bare.IsRelease())
}

func TestShort_DevCommit(t *testing.T) {
	info := &BuildInfo{Version: "dev-abc1234", GitCommit: "abc1234ffff"}
	assert.Equal(t, "dev-abc1234", info.Short())
	assert.False(t, info.IsRelease())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		zero bool
	}{
		{"2024-05-01T10:00:00Z", false},
		{"2024-05-01T10:00:00", false},
		{"2024-05-01 10:00:00", false},
		{"unknown", true},
		{"", true},
		{"yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.zero, parseTime(tt.in).IsZero())
		})
	}
}
