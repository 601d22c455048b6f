package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_DefaultsToVersion(t *testing.T) {
	assert.Equal(t, Version, String())
}

func TestString_WithBuildInfo(t *testing.T) {
	oldV, oldC, oldT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldT })

	Version, GitCommit, BuildTime = "v1.2.0", "abc123", "2024-03-01"
	assert.Equal(t, "v1.2.0 (commit abc123, built 2024-03-01)", String())
}
