package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var cubePosition = mgl32.Vec3{0, 0, -3}

func TestRotationWrapsAfterFullTurn(t *testing.T) {
	var r Rotation
	for n := 1; n <= 1000; n++ {
		r.Advance(1)
		assert.Equal(t, float32(n%360), r.Degrees(), "after %d frames", n)
	}
}

func TestRotationStaysInRange(t *testing.T) {
	var r Rotation
	r.Advance(725)
	assert.Equal(t, float32(5), r.Degrees())
	r.Advance(-10)
	assert.Equal(t, float32(355), r.Degrees())
}

func TestModelAtZeroIsTranslation(t *testing.T) {
	got := Model(cubePosition, Yaw(0))
	want := mgl32.Translate3D(0, 0, -3)
	assert.True(t, got.ApproxEqual(want), "got %v", got)
}

func TestModelTranslatesAfterRotating(t *testing.T) {
	for _, deg := range []float32{1, 45, 90, 180, 271.5} {
		e := Yaw(deg)
		got := Model(cubePosition, e)

		want := mgl32.Translate3D(0, 0, -3).Mul4(Rotate(e))
		assert.True(t, got.ApproxEqual(want), "yaw %v", deg)

		reversed := Rotate(e).Mul4(mgl32.Translate3D(0, 0, -3))
		assert.False(t, got.ApproxEqual(reversed), "yaw %v must not match rotate·translate", deg)
	}
}

func TestModelKeepsCubeCentreAtPosition(t *testing.T) {
	m := Model(cubePosition, Yaw(123))
	centre := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, centre.Vec3().ApproxEqual(cubePosition), "centre %v", centre)
}

func TestRotateAxes(t *testing.T) {
	const deg = 30
	rad := mgl32.DegToRad(deg)

	assert.True(t, Rotate(Yaw(deg)).ApproxEqualThreshold(mgl32.HomogRotate3DY(-rad), 1e-6))
	assert.True(t, Rotate(Eulers{Roll: deg}).ApproxEqualThreshold(mgl32.HomogRotate3DX(-rad), 1e-6))
	assert.True(t, Rotate(Eulers{Pitch: deg}).ApproxEqualThreshold(mgl32.HomogRotate3DZ(-rad), 1e-6))
	assert.True(t, Rotate(Eulers{}).ApproxEqual(mgl32.Ident4()))
}

func TestProjection(t *testing.T) {
	got := Projection(45, 640.0/480.0, 0.1, 10)
	want := mgl32.Perspective(mgl32.DegToRad(45), 640.0/480.0, 0.1, 10)
	assert.True(t, got.ApproxEqual(want))

	// A point on the near plane maps to NDC depth -1, the far plane to +1.
	near := got.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := got.Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	assert.InDelta(t, -1, near.Z()/near.W(), 1e-4)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}
