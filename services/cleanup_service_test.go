package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileWithAge(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("media"), 0o644))

	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	return path
}

func TestCleanupKeepsYoungAndRemovesOldFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewCleanupService([]string{dir}, 24*time.Hour, time.Hour)

	young := writeFileWithAge(t, dir, "young.mp3", 23*time.Hour)
	old := writeFileWithAge(t, dir, "old.mp3", 25*time.Hour)

	svc.Cleanup()

	_, err := os.Stat(young)
	assert.NoError(t, err, "file younger than the retention age must survive")

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err), "file older than the retention age must be removed")
}

func TestCleanupSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	svc := NewCleanupService([]string{dir}, time.Hour, time.Hour)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	stamp := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(sub, stamp, stamp))

	svc.Cleanup()

	_, err := os.Stat(sub)
	assert.NoError(t, err)
}

func TestCleanupSurvivesMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	svc := NewCleanupService([]string{filepath.Join(dir, "audio")}, time.Hour, time.Hour)

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "audio")))

	// a vanished directory is logged and skipped, never a panic
	svc.Cleanup()
}

func TestCleanupCreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio")
	NewCleanupService([]string{dir}, time.Hour, time.Hour)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCleanupStartStop(t *testing.T) {
	dir := t.TempDir()
	svc := NewCleanupService([]string{dir}, 24*time.Hour, 10*time.Millisecond)

	old := writeFileWithAge(t, dir, "old.png", 25*time.Hour)

	svc.Start()
	defer svc.Stop()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(old)
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond)
}
