package uploadController

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	uploadValidator "lms/validators/upload"
)

func stageChunks(t *testing.T, chunkDir string, chunks ...[]byte) {
	t.Helper()

	require.NoError(t, os.MkdirAll(chunkDir, 0755))
	for i, data := range chunks {
		path := filepath.Join(chunkDir, fmt.Sprintf("chunk_%d", i+1))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}
}

func TestAssembleChunksConcatenatesInOrder(t *testing.T) {
	config.AppConfig = &config.Config{UploadDir: t.TempDir()}
	chunkDir := filepath.Join(t.TempDir(), "staging")
	stageChunks(t, chunkDir, []byte("first-"), []byte("second-"), []byte("third"))

	meta := &uploadValidator.ChunkMeta{Filename: "intro.mp4", TotalChunks: 3}
	videoPath, err := assembleChunks(chunkDir, meta, 1024)
	require.NoError(t, err)

	data, err := os.ReadFile(videoPath)
	require.NoError(t, err)
	assert.Equal(t, "first-second-third", string(data))
	assert.Equal(t, ".mp4", filepath.Ext(videoPath))

	_, err = os.Stat(chunkDir)
	assert.True(t, os.IsNotExist(err), "staging dir should be removed after assembly")
}

func TestAssembleChunksRejectsOversizedUpload(t *testing.T) {
	config.AppConfig = &config.Config{UploadDir: t.TempDir()}
	chunkDir := filepath.Join(t.TempDir(), "staging")

	// the declared total is irrelevant: the received bytes exceed the cap
	stageChunks(t, chunkDir, bytes.Repeat([]byte("a"), 40), bytes.Repeat([]byte("b"), 40))

	meta := &uploadValidator.ChunkMeta{Filename: "intro.mp4", TotalChunks: 2, TotalSize: 10}
	_, err := assembleChunks(chunkDir, meta, 64)
	assert.ErrorIs(t, err, errUploadTooLarge)

	// no assembled file may be left behind
	destDir := filepath.Join(config.AppConfig.UploadDir, "videos", "courses")
	entries, readErr := os.ReadDir(destDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
