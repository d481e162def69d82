package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loupe.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
title = "test viewer"

[camera]
speed = 9.5

[import]
scene_path = "model.gltf"
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test viewer", c.Window.Title)
	assert.Equal(t, float32(9.5), c.Camera.Speed)
	assert.Equal(t, "model.gltf", c.Import.ScenePath)

	// Unset fields keep their defaults.
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, float32(0.4), c.Camera.Sensitivity)
	assert.Equal(t, 4, c.Import.Workers)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\ntitle ="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
