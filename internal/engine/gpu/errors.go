package gpu

import (
	"errors"
	"fmt"
)

// ErrDeviceLost is returned for work attempted while the device is lost.
var ErrDeviceLost = errors.New("gpu: device lost")

// UnsupportedDeviceError reports that no compatible rendering device exists.
type UnsupportedDeviceError struct {
	Reason string
	Err    error
}

func (e *UnsupportedDeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported rendering device: %s: %v", e.Reason, e.Err)
	}
	return "unsupported rendering device: " + e.Reason
}

func (e *UnsupportedDeviceError) Unwrap() error {
	return e.Err
}

// ShaderCompileError carries the compiler diagnostic for one shader stage.
type ShaderCompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

// LinkError carries the linker diagnostic for a program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link: " + e.Log
}

// TextureLoadError reports a background image that could not be read,
// decoded or uploaded.
type TextureLoadError struct {
	Path string
	Err  error
}

func (e *TextureLoadError) Error() string {
	return fmt.Sprintf("texture %s: %v", e.Path, e.Err)
}

func (e *TextureLoadError) Unwrap() error {
	return e.Err
}
