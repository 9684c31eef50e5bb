package renderer

import (
	"errors"
	"fmt"
)

// Resource names what was being acquired when startup failed.
type Resource string

const (
	ResourceContext  Resource = "context"
	ResourceShader   Resource = "shader"
	ResourceGeometry Resource = "geometry"
	ResourceTexture  Resource = "texture"
)

// StartupError is returned when a resource could not be acquired before the
// frame loop started. It is always fatal.
type StartupError struct {
	Resource Resource
	Err      error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed acquiring %s: %v", e.Resource, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *StartupError
	if errors.As(err, &se) {
		return 1
	}
	return 2
}
