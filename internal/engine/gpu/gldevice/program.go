package gldevice

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
)

// CompileProgram compiles vertex and fragment shaders and links them into a
// program. Stage objects are always released; a failed link deletes the
// program so no partial state escapes.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, &gpu.LinkError{Log: log}
	}

	gl.DetachShader(program, vertShader)
	gl.DetachShader(program, fragShader)
	return gpu.Program(program), nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, &gpu.ShaderCompileError{Stage: stage, Log: log}
	}

	return shader, nil
}

func infoLog(length int32, read func(buf *uint8)) string {
	if length <= 0 {
		return "(no diagnostic)"
	}
	log := make([]byte, length)
	read(&log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

func (d *Device) AttribLocation(p gpu.Program, name string) gpu.Attrib {
	return gpu.Attrib(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) DeleteProgram(p gpu.Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}
