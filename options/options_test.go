package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/gocube/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "gocube.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	o := Default()
	assert.Equal(t, 640, o.Width)
	assert.Equal(t, 480, o.Height)
	assert.Equal(t, 60, o.FPS)
	assert.InDelta(t, 640.0/480.0, o.AspectRatio(), 1e-6)
	assert.NoError(t, o.Validate())
	assert.Equal(t, assets.FS, o.Assets())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	o, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), o)

	o, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), o)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, "width: 800\nfps: 30\nasset_dir: /srv/cube\ntexture: gfx/cat.jpg\n")
	o, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 480, o.Height)
	assert.Equal(t, 30, o.FPS)
	assert.Equal(t, "gfx/cat.jpg", o.Texture)
	assert.Equal(t, assets.VertexShader, o.VertexShader)
	assert.NotEqual(t, assets.FS, o.Assets())
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "fps: 0\n"))
	assert.ErrorContains(t, err, "frame rate")

	_, err = Load(writeConfig(t, "width: -1\n"))
	assert.ErrorContains(t, err, "window size")

	_, err = Load(writeConfig(t, "width: [\n"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvConfig, writeConfig(t, "title: spinning\n"))
	o, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "spinning", o.Title)
}
