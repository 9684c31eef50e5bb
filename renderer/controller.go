package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gocube/geometry"
	"github.com/richinsley/gocube/gpu"
	"github.com/richinsley/gocube/graphics"
	"github.com/richinsley/gocube/inputs"
	"github.com/richinsley/gocube/options"
	"github.com/richinsley/gocube/shader"
	"github.com/richinsley/gocube/transform"
)

// State is a step in the controller lifecycle. It only ever moves forward.
type State int

const (
	Uninitialized State = iota
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	case ShuttingDown:
		return "ShuttingDown"
	case Terminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// rotationStep is added every frame, independent of elapsed time.
	rotationStep = 1

	fieldOfView = 45
	nearPlane   = 0.1
	farPlane    = 10
)

var (
	clearColor   = [4]float32{0.2, 0.2, 0.2, 1}
	cubePosition = mgl32.Vec3{0, 0, -3}
)

// Controller owns the window context and every GPU resource, and drives the
// frame loop. All methods must be called from the thread that owns the context.
type Controller struct {
	context graphics.Context
	dev     gpu.Device
	clock   graphics.Clock
	opts    *options.Options

	state      State
	rotation   transform.Rotation
	frames     uint64
	projection mgl32.Mat4

	program  *shader.Program
	geometry *geometry.Buffer
	texture  *inputs.Texture
}

// NewController takes ownership of ctx; Shutdown releases it.
func NewController(ctx graphics.Context, dev gpu.Device, clock graphics.Clock, opts *options.Options) *Controller {
	if opts == nil {
		opts = options.Default()
	}
	return &Controller{
		context: ctx,
		dev:     dev,
		clock:   clock,
		opts:    opts,
	}
}

// Init acquires the context and builds the program, geometry and texture.
// On failure the controller moves to ShuttingDown; Shutdown releases
// whatever was acquired.
func (c *Controller) Init() error {
	if c.state != Uninitialized {
		return fmt.Errorf("cannot initialize controller in state %s", c.state)
	}
	if err := c.acquire(); err != nil {
		c.state = ShuttingDown
		log.Printf("Startup failed: %v", err)
		return err
	}
	c.state = Running
	return nil
}

func (c *Controller) acquire() error {
	c.context.MakeCurrent()
	if err := c.dev.Init(); err != nil {
		return &StartupError{Resource: ResourceContext, Err: err}
	}
	log.Printf("OpenGL %s", c.dev.Version())

	width, height := c.context.GetFramebufferSize()
	c.dev.Viewport(0, 0, int32(width), int32(height))
	c.dev.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	c.dev.Enable(gpu.Blend)
	c.dev.Enable(gpu.DepthTest)
	c.dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)

	assets := c.opts.Assets()

	vertexSource, fragmentSource, err := shader.LoadSources(assets, c.opts.VertexShader, c.opts.FragmentShader)
	if err != nil {
		return &StartupError{Resource: ResourceShader, Err: err}
	}
	program, err := shader.Compile(c.dev, vertexSource, fragmentSource)
	if err != nil {
		return &StartupError{Resource: ResourceShader, Err: err}
	}
	c.program = program

	c.program.Activate()
	c.program.SetUniformInt(shader.UniformTexture, 0)
	c.projection = transform.Projection(fieldOfView, c.opts.AspectRatio(), nearPlane, farPlane)
	c.program.SetUniformMatrix(shader.UniformProjection, c.projection)

	buffer, err := geometry.Create(c.dev, geometry.Cube())
	if err != nil {
		return &StartupError{Resource: ResourceGeometry, Err: err}
	}
	c.geometry = buffer

	img, err := inputs.LoadImage(assets, c.opts.Texture)
	if err != nil {
		return &StartupError{Resource: ResourceTexture, Err: err}
	}
	texture, err := inputs.NewTextureFromImage(c.dev, img)
	if err != nil {
		return &StartupError{Resource: ResourceTexture, Err: err}
	}
	c.texture = texture

	return nil
}

// Frame renders one frame. It returns false once a quit has been observed,
// or if the controller is not running.
func (c *Controller) Frame() bool {
	if c.state != Running {
		return false
	}
	if c.context.PollQuit() {
		log.Printf("Quit requested after %d frames", c.frames)
		c.state = ShuttingDown
		return false
	}

	c.rotation.Advance(rotationStep)
	model := transform.Model(cubePosition, transform.Yaw(c.rotation.Degrees()))

	c.dev.Clear(gpu.ColorBuffer | gpu.DepthBuffer)
	c.program.Activate()
	c.texture.Use()
	c.program.SetUniformMatrix(shader.UniformModel, model)
	c.geometry.Bind()
	c.geometry.Draw()

	c.context.Present()
	c.clock.Tick()
	c.frames++

	if fps, ok := c.clock.FPS(); ok {
		c.context.SetTitle(fmt.Sprintf("%s | FPS: %d", c.opts.Title, fps))
	}
	return true
}

// Shutdown releases GPU resources in reverse order of acquisition, then the
// context. Resources never created are skipped; calling it again is a no-op.
func (c *Controller) Shutdown() {
	if c.state == Terminated {
		return
	}
	c.state = ShuttingDown

	c.texture.Destroy()
	c.texture = nil
	c.geometry.Destroy()
	c.geometry = nil
	c.program.Destroy()
	c.program = nil

	if c.context != nil {
		c.context.Shutdown()
	}
	c.state = Terminated
	log.Printf("Shut down after %d frames", c.frames)
}

// Run initializes, renders until quit, and shuts down on every exit path,
// including a panic inside a frame.
func (c *Controller) Run() error {
	defer c.Shutdown()
	if err := c.Init(); err != nil {
		return err
	}
	for c.Frame() {
	}
	return nil
}

func (c *Controller) State() State {
	return c.state
}

// Rotation is the current angle in degrees.
func (c *Controller) Rotation() float32 {
	return c.rotation.Degrees()
}

func (c *Controller) Frames() uint64 {
	return c.frames
}

func (c *Controller) Projection() mgl32.Mat4 {
	return c.projection
}
