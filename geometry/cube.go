package geometry

// cubeVertices is a unit cube centred on the origin: six faces, two
// triangles each, as x, y, z, s, t.
var cubeVertices = []float32{
	-0.5, -0.5, -0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,

	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	-0.5, -0.5, -0.5, 0, 0,

	-0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 1,

	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,

	-0.5, 0.5, 0.5, 1, 0,
	-0.5, 0.5, -0.5, 1, 1,
	-0.5, -0.5, -0.5, 0, 1,

	-0.5, -0.5, -0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, 0.5, 0.5, 1, 0,

	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, -0.5, -0.5, 0, 1,

	0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 0,

	-0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, -0.5, 1, 1,
	0.5, -0.5, 0.5, 1, 0,

	0.5, -0.5, 0.5, 1, 0,
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, -0.5, -0.5, 0, 1,

	-0.5, 0.5, -0.5, 0, 1,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, 0.5, 1, 0,

	0.5, 0.5, 0.5, 1, 0,
	-0.5, 0.5, 0.5, 0, 0,
	-0.5, 0.5, -0.5, 0, 1,
}

// Cube returns the descriptor for the textured unit cube.
func Cube() *Descriptor {
	d, err := NewDescriptor(cubeVertices)
	if err != nil {
		panic(err)
	}
	return d
}
