package main

import (
	"log"
	"os"
	"runtime"

	"github.com/richinsley/gocube/clock"
	"github.com/richinsley/gocube/glfwcontext"
	"github.com/richinsley/gocube/gpu/gldevice"
	options "github.com/richinsley/gocube/options"
	renderer "github.com/richinsley/gocube/renderer"
)

func init() {
	runtime.LockOSThread()
}

func run() int {
	opts, err := options.FromEnv()
	if err != nil {
		log.Printf("Failed to load options: %v", err)
		return 1
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Printf("Failed to initialize GLFW: %v", err)
		return 1
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		return 1
	}

	c := renderer.NewController(ctx, gldevice.New(), clock.New(opts.FPS), opts)
	log.Println("Starting render loop...")
	if err := c.Run(); err != nil {
		log.Printf("Render loop stopped: %v", err)
		return renderer.ExitCode(err)
	}
	return 0
}

func main() {
	os.Exit(run())
}
