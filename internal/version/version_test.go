package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	assert.Equal(t, "dev", Get())
}

func TestGet_WithCustomVersion(t *testing.T) {
	originalVersion := Version
	defer func() {
		Version = originalVersion
	}()

	Version = "1.2.3"

	assert.Equal(t, "1.2.3", Get())
}

func TestInfo_Defaults(t *testing.T) {
	info := Info()

	assert.Equal(t, "evalportal", info.Service)
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.BuildTime)
	// test binaries carry no vcs stamp, so the commit stays unknown
	revision, _ := readVCS()
	if revision == "" {
		assert.Equal(t, "unknown", info.GitCommit)
		assert.False(t, info.Modified)
	} else {
		assert.Equal(t, revision, info.GitCommit)
	}
}

func TestInfo_LinkerValuesWin(t *testing.T) {
	originalVersion := Version
	originalBuildTime := BuildTime
	originalGitCommit := GitCommit
	defer func() {
		Version = originalVersion
		BuildTime = originalBuildTime
		GitCommit = originalGitCommit
	}()

	Version = "2.1.0"
	BuildTime = "2026-03-02T10:00:00Z"
	GitCommit = "abc123def456"

	expected := BuildInfo{
		Service:   "evalportal",
		Version:   "2.1.0",
		BuildTime: "2026-03-02T10:00:00Z",
		GitCommit: "abc123def456",
	}

	assert.Equal(t, expected, Info())
}

func BenchmarkInfo(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Info()
	}
}
