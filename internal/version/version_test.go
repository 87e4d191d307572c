package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfoDefaults(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2024-05-01"
	assert.Equal(t, "blogcontent v1.2.3 (commit abc123, built 2024-05-01)", String())
}
