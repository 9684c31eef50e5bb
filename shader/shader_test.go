package shader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gocube/assets"
	"github.com/richinsley/gocube/gpu"
	"github.com/richinsley/gocube/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLinksAndReleasesStages(t *testing.T) {
	dev := gputest.New()
	p, err := Compile(dev, "vs", "fs")
	require.NoError(t, err)

	assert.Equal(t, 2, dev.Created(gputest.KindShader))
	assert.Equal(t, 2, dev.Deleted(gputest.KindShader))
	assert.Equal(t, []gputest.Kind{gputest.KindProgram}, dev.LiveKinds())
	assert.True(t, dev.IsLive(p.program))
	assert.Empty(t, dev.Faults())
}

func TestCompileFailureLeavesNothingAllocated(t *testing.T) {
	for _, stage := range []gpu.Stage{gpu.StageVertex, gpu.StageFragment, gpu.StageLink} {
		t.Run(stage.String(), func(t *testing.T) {
			dev := gputest.New()
			dev.FailStage = gputest.Fail(stage)

			p, err := Compile(dev, "vs", "fs")
			assert.Nil(t, p)

			var ce *gpu.CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, stage, ce.Stage)
			assert.NotEmpty(t, ce.Log)
			assert.Contains(t, err.Error(), stage.String())

			assert.Zero(t, dev.Live())
			assert.Empty(t, dev.Faults())
		})
	}
}

func TestUniformLocationIsResolvedOnce(t *testing.T) {
	dev := gputest.New()
	p, err := Compile(dev, "vs", "fs")
	require.NoError(t, err)
	p.Activate()

	m := mgl32.Translate3D(1, 2, 3)
	for i := 0; i < 5; i++ {
		p.SetUniformMatrix(UniformModel, m)
	}

	assert.Len(t, dev.Find("UniformLocation"), 1)
	assert.Len(t, dev.Find("UniformMatrix4"), 5)
	got, ok := dev.Matrix(gputest.UniformLocationOf(UniformModel))
	require.True(t, ok)
	assert.Equal(t, [16]float32(m), got)
}

func TestUnknownUniformIsSkipped(t *testing.T) {
	dev := gputest.New()
	p, err := Compile(dev, "vs", "fs")
	require.NoError(t, err)
	p.Activate()

	p.SetUniformMatrix("view", mgl32.Ident4())
	p.SetUniformMatrix("view", mgl32.Ident4())
	p.SetUniformInt("missing", 3)

	assert.Len(t, dev.Find("UniformLocation"), 2)
	assert.Empty(t, dev.Find("UniformMatrix4"))
	assert.Empty(t, dev.Find("Uniform1i"))
}

func TestSetUniformInt(t *testing.T) {
	dev := gputest.New()
	p, err := Compile(dev, "vs", "fs")
	require.NoError(t, err)
	p.Activate()

	p.SetUniformInt(UniformTexture, 0)
	v, ok := dev.Int(gputest.UniformLocationOf(UniformTexture))
	require.True(t, ok)
	assert.Equal(t, int32(0), v)
}

func TestDestroyIsIdempotent(t *testing.T) {
	dev := gputest.New()
	p, err := Compile(dev, "vs", "fs")
	require.NoError(t, err)

	p.Destroy()
	p.Destroy()
	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.Faults())

	var never *Program
	assert.NotPanics(t, never.Destroy)
}

func TestLoadSources(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/vertex.txt":   {Data: []byte("vertex")},
		"shaders/fragment.txt": {Data: []byte("fragment")},
	}
	vs, fs, err := LoadSources(fsys, "shaders/vertex.txt", "shaders/fragment.txt")
	require.NoError(t, err)
	assert.Equal(t, "vertex", vs)
	assert.Equal(t, "fragment", fs)

	_, _, err = LoadSources(fsys, "shaders/vertex.txt", "shaders/missing.txt")
	assert.ErrorContains(t, err, "fragment")
	_, _, err = LoadSources(fsys, "shaders/missing.txt", "shaders/fragment.txt")
	assert.ErrorContains(t, err, "vertex")
}

func TestEmbeddedSourcesDeclareUniforms(t *testing.T) {
	vs, fs, err := LoadSources(assets.FS, assets.VertexShader, assets.FragmentShader)
	require.NoError(t, err)

	for _, name := range []string{UniformModel, UniformProjection} {
		assert.True(t, strings.Contains(vs, "uniform mat4 "+name), name)
	}
	assert.Contains(t, fs, "uniform sampler2D "+UniformTexture)
	assert.True(t, strings.HasPrefix(vs, "#version 410 core"))
}
