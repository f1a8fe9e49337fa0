package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()
	v, bt, gc, gv := Version, BuildTime, GitCommit, GoVersion
	t.Cleanup(func() {
		Version, BuildTime, GitCommit, GoVersion = v, bt, gc, gv
	})
}

func TestSetInfo(t *testing.T) {
	restore(t)

	SetInfo("1.0.0", "2024-01-01T00:00:00Z", "abc123", "go1.21")

	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "2024-01-01T00:00:00Z", BuildTime)
	assert.Equal(t, "abc123", GitCommit)
	assert.Equal(t, "go1.21", GoVersion)
}

func TestSetInfoEmptyValuesKeepCurrent(t *testing.T) {
	restore(t)

	SetInfo("2.0.0", "", "", "")
	SetInfo("", "", "", "")

	assert.Equal(t, "2.0.0", Version)
	assert.Equal(t, "unknown", GitCommit)
}

func TestBannerAndDetails(t *testing.T) {
	restore(t)
	SetInfo("1.2.3", "today", "deadbeef", "go1.26")

	assert.Contains(t, Banner(), "PurgeTemp v1.2.3")
	assert.Contains(t, Banner(), RepositoryURL)
	assert.Contains(t, Details(), "Git commit: deadbeef")
	assert.Contains(t, Details(), "Go version: go1.26")
}
