// Package scene holds the CPU side of the triangle scene: vertex data, the
// per-frame color pulse, the time uniform and the texture upload
// description. Issuing the actual graphics calls is left to the caller.
package scene

import (
	"fmt"
	"log"
	"math"
	"os"

	"TextureLoader/bmp"
	"TextureLoader/config"
)

// Window and shader defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Shader Tutorial --- Triangle"

	VertexShaderFile   = "vertex_shader.txt"
	FragmentShaderFile = "fragment_shader.txt"
	TextureFile        = "texture.bmp"

	// TimeUniform is the name of the float uniform set every frame.
	TimeUniform = "time_value"
)

// ClearColor is the dark blue background.
var ClearColor = [4]float32{0, 0, 0.4, 0}

// FloatsPerVertex is position (3) + color (3) + uv (2).
const FloatsPerVertex = 8

// Stride is the byte distance between vertices.
const Stride = FloatsPerVertex * 4

// Attribute describes one vertex attribute pointer.
type Attribute struct {
	Index  uint32
	Size   int32 // components
	Offset int   // bytes from the start of a vertex
}

var Attributes = []Attribute{
	{Index: 0, Size: 3, Offset: 0},  // position
	{Index: 1, Size: 3, Offset: 12}, // color
	{Index: 2, Size: 2, Offset: 24}, // uv
}

const colorOffset = 3

// TriangleVertices is a red/green/blue triangle with uvs.
var TriangleVertices = []float32{
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0,
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0, 0.5, 1.0,
}

// pulseRate is the angular speed of the color pulse, in radians per second.
const pulseRate = 3.14

// ColorDelta is the brightness factor at time t seconds, in [0.5, 1].
func ColorDelta(t float64) float32 {
	return float32(0.25*math.Cos(t*pulseRate) + 0.75)
}

// Scene is the state the render loop needs each frame.
type Scene struct {
	Vertices []float32
	Texture  *bmp.Image
	Upload   *TextureUpload
}

// Options configure New.
type Options struct {
	Texture config.TextureConfig
	// Strict forces strict parsing even when the texture config does not
	// ask for it.
	Strict bool
	// MaxBytes bounds the texture payload. Zero means bmp.DefaultMaxBytes.
	MaxBytes uint64
}

// New builds the triangle scene and loads its texture. A texture that fails
// to load is logged and the scene continues without one.
func New(opts Options) *Scene {
	s := &Scene{Vertices: append([]float32(nil), TriangleVertices...)}

	path := opts.Texture.Path
	if path == "" {
		path = TextureFile
	}
	log.Printf("Reading image %s", path)
	img, err := bmp.ParseWithOptions(path, bmp.Options{
		Strict:   opts.Strict || opts.Texture.Strict,
		MaxBytes: opts.MaxBytes,
	})
	if err != nil {
		log.Printf("Continuing without texture: %v", err)
		return s
	}
	if img.Truncated {
		log.Printf("Warning: '%s' ended early, %d byte payload is zero padded", path, img.ByteSize)
	}
	upload, err := NewTextureUpload(img, opts.Texture)
	if err != nil {
		log.Printf("Continuing without texture: %v", err)
		return s
	}
	s.Texture = img
	s.Upload = upload
	return s
}

// UpdateColors writes the base vertices into dst with every color channel
// scaled by ColorDelta(t). dst must hold len(s.Vertices) floats.
func (s *Scene) UpdateColors(dst []float32, t float64) error {
	if len(dst) < len(s.Vertices) {
		return fmt.Errorf("vertex buffer holds %d floats, need %d", len(dst), len(s.Vertices))
	}
	copy(dst, s.Vertices)
	delta := ColorDelta(t)
	for v := 0; v+FloatsPerVertex <= len(s.Vertices); v += FloatsPerVertex {
		for c := colorOffset; c < colorOffset+3; c++ {
			dst[v+c] = s.Vertices[v+c] * delta
		}
	}
	return nil
}

// Frame is everything that changes between two draws.
type Frame struct {
	Time       float32
	ColorDelta float32
	Vertices   []float32
}

// Frame computes the vertex buffer contents and uniform for time t.
func (s *Scene) Frame(t float64) Frame {
	f := Frame{
		Time:       float32(t),
		ColorDelta: ColorDelta(t),
		Vertices:   make([]float32, len(s.Vertices)),
	}
	// Cannot fail: the buffer is sized from s.Vertices.
	_ = s.UpdateColors(f.Vertices, t)
	return f
}

// VertexCount is the number of vertices drawn per frame.
func (s *Scene) VertexCount() int {
	return len(s.Vertices) / FloatsPerVertex
}

// LoadShaderSource reads a shader file. Compiling it is up to the caller.
func LoadShaderSource(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("impossible to open shader '%s': %w", path, err)
	}
	log.Printf("shader file %s size: %d", path, len(src))
	return string(src), nil
}
