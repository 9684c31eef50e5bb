// Package transform builds the model and projection matrices. Nothing here
// touches the GPU.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rotation is an angle in degrees kept in [0, 360).
type Rotation struct {
	degrees float32
}

// Advance adds step degrees and wraps the result back into [0, 360).
func (r *Rotation) Advance(step float32) {
	d := float32(math.Mod(float64(r.degrees+step), 360))
	if d < 0 {
		d += 360
	}
	r.degrees = d
}

func (r Rotation) Degrees() float32 {
	return r.degrees
}

// Eulers are roll, pitch and yaw in degrees.
type Eulers struct {
	Roll, Pitch, Yaw float32
}

// Yaw returns Eulers with only the yaw component set.
func Yaw(degrees float32) Eulers {
	return Eulers{Yaw: degrees}
}

// Rotate builds the rotation matrix for e. Roll turns about X, pitch about Z
// and yaw about Y, combined into a single 3x3 block.
func Rotate(e Eulers) mgl32.Mat4 {
	r := float64(mgl32.DegToRad(e.Roll))
	p := float64(mgl32.DegToRad(e.Pitch))
	y := float64(mgl32.DegToRad(e.Yaw))
	sR, cR := float32(math.Sin(r)), float32(math.Cos(r))
	sP, cP := float32(math.Sin(p)), float32(math.Cos(p))
	sY, cY := float32(math.Sin(y)), float32(math.Cos(y))

	// Columns, in mgl32's column-major order.
	return mgl32.Mat4{
		cY * cP, -cY*sP*cR + sY*sR, cY*sP*sR + sY*cR, 0,
		sP, cP * cR, -cP * sR, 0,
		-sY * cP, sY*sP*cR + cY*sR, -sY*sP*sR + cY*cR, 0,
		0, 0, 0, 1,
	}
}

// Model rotates by e first and then translates by position:
// translate(position) · rotate(e). Swapping the two would orbit the cube
// around the origin instead of spinning it in place.
func Model(position mgl32.Vec3, e Eulers) mgl32.Mat4 {
	m := mgl32.Ident4()
	m = Rotate(e).Mul4(m)
	m = mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(m)
	return m
}

// Projection is a perspective projection with fovDegrees of vertical field of view.
func Projection(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}
