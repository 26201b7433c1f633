package viewer

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Display owns a GLFW window and presents resolved frames on a fullscreen
// textured quad. All methods must be called from the thread that created it.
type Display struct {
	window *glfw.Window

	shaderProgram uint32
	quadVAO       uint32
	quadVBO       uint32
	frameTexture  uint32
	texWidth      int
	texHeight     int

	movingLocation int32

	// Pending window size, reported once by Resized.
	resized       bool
	width, height int
}

// NewDisplay initialises GLFW, opens a window and prepares the GL resources.
func NewDisplay(width, height int, title string) (*Display, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	d := &Display{
		window: window,
		width:  width,
		height: height,
	}

	d.shaderProgram, err = createShaderProgram(presentVertexShaderSource, presentFragmentShaderSource)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.movingLocation = gl.GetUniformLocation(d.shaderProgram, gl.Str("moving\x00"))

	d.setupQuad()
	gl.GenTextures(1, &d.frameTexture)
	d.updateViewport()

	window.SetSizeCallback(d.resizeCallback)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		d.updateViewport()
	})

	return d, nil
}

// Window exposes the underlying window for input polling.
func (d *Display) Window() *glfw.Window {
	return d.window
}

// ShouldClose reports whether the user asked to close the window.
func (d *Display) ShouldClose() bool {
	return d.window.ShouldClose()
}

// RequestClose marks the window for closing.
func (d *Display) RequestClose() {
	d.window.SetShouldClose(true)
}

// SetTitle updates the window title.
func (d *Display) SetTitle(title string) {
	d.window.SetTitle(title)
}

// Resized returns the new window size once after every resize.
func (d *Display) Resized() (int, int, bool) {
	if !d.resized {
		return 0, 0, false
	}
	d.resized = false
	return d.width, d.height, true
}

func (d *Display) resizeCallback(_ *glfw.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.width, d.height = width, height
	d.resized = true
}

func (d *Display) updateViewport() {
	fbWidth, fbHeight := d.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
}

// quadStrip is a viewport-filling triangle strip, interleaved as clip-space
// x, y followed by texture u, v. Row 0 of the frame maps to the top edge.
var quadStrip = [...]float32{
	-1, 1, 0, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	1, -1, 1, 1,
}

// quadAttribs lists the float count of each vertex attribute in quadStrip,
// indexed by shader location.
var quadAttribs = [...]int32{2, 2}

const floatSize = 4

func (d *Display) setupQuad() {
	gl.GenVertexArrays(1, &d.quadVAO)
	gl.BindVertexArray(d.quadVAO)
	defer gl.BindVertexArray(0)

	gl.GenBuffers(1, &d.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadStrip)*floatSize, gl.Ptr(&quadStrip[0]), gl.STATIC_DRAW)

	var stride int32
	for _, n := range quadAttribs {
		stride += n * floatSize
	}
	offset := 0
	for loc, n := range quadAttribs {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), n, gl.FLOAT, false, stride, gl.PtrOffset(offset))
		offset += int(n) * floatSize
	}
}

// Present uploads img and draws it. moving adds a thin border while the
// camera is in motion.
func (d *Display) Present(img *image.RGBA, moving bool) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if width == 0 || height == 0 {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.frameTexture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	if width != d.texWidth || height != d.texHeight {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		d.texWidth, d.texHeight = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	var flag float32
	if moving {
		flag = 1
	}

	gl.UseProgram(d.shaderProgram)
	gl.Uniform1f(d.movingLocation, flag)
	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, int32(len(quadStrip))/4)
	gl.BindVertexArray(0)
}

// SwapBuffers shows the frame drawn by the last Present.
func (d *Display) SwapBuffers() {
	d.window.SwapBuffers()
}

// PollEvents processes pending window events, including the callbacks that
// feed Resized.
func (d *Display) PollEvents() {
	glfw.PollEvents()
}

// Close releases GL resources and terminates GLFW.
func (d *Display) Close() {
	if d.frameTexture != 0 {
		gl.DeleteTextures(1, &d.frameTexture)
	}
	if d.quadVBO != 0 {
		gl.DeleteBuffers(1, &d.quadVBO)
	}
	if d.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &d.quadVAO)
	}
	if d.shaderProgram != 0 {
		gl.DeleteProgram(d.shaderProgram)
	}
	d.window.Destroy()
	glfw.Terminate()
}

func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	var shaders [2]uint32
	for i, src := range [...]struct {
		kind uint32
		text string
	}{{gl.VERTEX_SHADER, vertexSource}, {gl.FRAGMENT_SHADER, fragmentSource}} {
		shader, err := compileShader(src.kind, src.text)
		if err != nil {
			for _, prev := range shaders[:i] {
				gl.DeleteShader(prev)
			}
			return 0, err
		}
		shaders[i] = shader
	}

	program := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(program, shader)
	}
	gl.LinkProgram(program)
	for _, shader := range shaders {
		gl.DeleteShader(shader)
	}

	if err := statusError(program, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link present program: %w", err)
	}
	return program, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)

	src, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, src, nil)
	gl.CompileShader(shader)

	if err := statusError(shader, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog); err != nil {
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader 0x%x: %w", kind, err)
	}
	return shader, nil
}

// statusError reads the given status of a shader or program object and, when
// it reports failure, returns the object's info log as an error.
func statusError(
	object, status uint32,
	getiv func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
) error {
	var ok int32
	getiv(object, status, &ok)
	if ok != gl.FALSE {
		return nil
	}

	var length int32
	getiv(object, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return errors.New("no info log")
	}
	buf := make([]byte, length)
	getLog(object, length, nil, &buf[0])
	return errors.New(strings.TrimRight(string(buf), "\x00\n"))
}
