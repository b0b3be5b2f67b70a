package gpu

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorsMatchThroughWrapping(t *testing.T) {
	compile := fmt.Errorf("resources: %w", &ShaderCompileError{Stage: "fragment", Log: "0:12: syntax error"})
	var ce *ShaderCompileError
	if !errors.As(compile, &ce) {
		t.Fatal("errors.As should find ShaderCompileError")
	}
	if ce.Stage != "fragment" {
		t.Errorf("stage = %q, want fragment", ce.Stage)
	}

	link := fmt.Errorf("resources: %w", &LinkError{Log: "varying mismatch"})
	var le *LinkError
	if !errors.As(link, &le) {
		t.Fatal("errors.As should find LinkError")
	}

	tex := &TextureLoadError{Path: "texture.jpg", Err: fs.ErrNotExist}
	if !errors.Is(tex, fs.ErrNotExist) {
		t.Error("TextureLoadError should unwrap to its cause")
	}

	dev := fmt.Errorf("init: %w", &UnsupportedDeviceError{Reason: "no GL 4.1"})
	var ue *UnsupportedDeviceError
	if !errors.As(dev, &ue) {
		t.Error("errors.As should find UnsupportedDeviceError")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ShaderCompileError{Stage: "vertex", Log: "bad"}, "vertex shader: bad"},
		{&LinkError{Log: "bad"}, "link: bad"},
		{&UnsupportedDeviceError{Reason: "no context"}, "unsupported rendering device: no context"},
		{&TextureLoadError{Path: "a.png", Err: errors.New("eof")}, "texture a.png: eof"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
