package graphics

// Context defines the interface for a window with a current OpenGL context.
type Context interface {
	MakeCurrent()
	// PollQuit processes pending window events and reports whether the user
	// asked to quit.
	PollQuit() bool
	// Present swaps the back buffer to the screen.
	Present()
	SetTitle(title string)
	GetFramebufferSize() (int, int)
	// Shutdown destroys the window and its context.
	Shutdown()
}

// Clock paces the frame loop.
type Clock interface {
	// Tick blocks until the next frame boundary.
	Tick()
	// FPS returns the frame rate measured over the last whole second, and
	// whether that value is new since the previous call.
	FPS() (fps int, updated bool)
}
