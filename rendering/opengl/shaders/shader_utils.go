package shaders

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// CompileError reports a failed compile or link together with the GL info
// log and the offending source, numbered so log line references can be
// matched by eye
type CompileError struct {
	Variant Variant
	Stage   string // vertex, fragment or link
	Log     string
	Source  string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s %s failed: %s", e.Variant, e.Stage, strings.TrimRight(e.Log, "\x00\r\n "))
	if e.Source == "" {
		return msg
	}
	return msg + "\n" + NumberLines(e.Source)
}

// NumberLines prefixes every line of src with its 1-based line number
func NumberLines(src string) string {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d: %s\n", width, i+1, line)
	}
	return b.String()
}

// compileShader compiles a single shader stage
func compileShader(v Variant, source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)

		stage := "vertex"
		if shaderType == gl.FRAGMENT_SHADER {
			stage = "fragment"
		}
		return 0, &CompileError{Variant: v, Stage: stage, Log: string(log), Source: source}
	}

	return shader, nil
}

// linkProgram links vertex and fragment shaders into a program
func linkProgram(v Variant, vertShader, fragShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &CompileError{Variant: v, Stage: "link", Log: string(log)}
	}

	return program, nil
}
