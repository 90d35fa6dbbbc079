package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"TextureLoader/bmp"
	"TextureLoader/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngMagic is enough for file type detection to call it a PNG.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestGenerateTestBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texture.bmp")
	require.NoError(t, generateTestBMP(path, 5, 3))

	img, err := bmp.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), img.Width)
	assert.Equal(t, uint32(3), img.Height)
	// Width 5 pads each row from 15 to 16 bytes.
	assert.Equal(t, uint32(48), img.ByteSize)
	assert.Equal(t, uint32(16), img.Stride)

	top, err := img.ToNRGBA()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), top.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(255), top.NRGBAAt(4, 0).R)
	assert.Equal(t, uint8(255), top.NRGBAAt(0, 0).G)
	assert.Equal(t, uint8(0), top.NRGBAAt(0, 2).G)
}

func TestRunImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texture.bmp")
	require.NoError(t, generateTestBMP(path, 4, 4))

	var out strings.Builder
	require.NoError(t, runImage(&out, path, bmp.Options{}))
	assert.Contains(t, out.String(), "4x4, 24 bpp, 48 payload bytes at offset 54")
	assert.Contains(t, out.String(), "BitsPerPixel")

	err := runImage(&out, filepath.Join(t.TempDir(), "missing.bmp"), bmp.Options{})
	assert.True(t, bmp.IsIOError(err))
}

func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, generateTestBMP(filepath.Join(dir, "Wall.bmp"), 2, 2))
	require.NoError(t, generateTestBMP(filepath.Join(dir, "brick.BMP"), 3, 3))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.bmp"), pngMagic, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	return dir
}

func TestRunBootstrap(t *testing.T) {
	sources := writeSources(t)
	configPath := filepath.Join(t.TempDir(), "textures.json")

	var out strings.Builder
	require.NoError(t, RunBootstrap(configPath, sources, false, strings.NewReader("\n"), &out))
	assert.Contains(t, out.String(), "Available source BMP files")
	assert.NotContains(t, out.String(), "notes.txt")

	configs, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	require.Len(t, configs, 2, "broken.bmp must be skipped")
	assert.Equal(t, "brick", configs[0].Name)
	assert.Equal(t, "wall", configs[1].Name)
	assert.Equal(t, filepath.Join(sources, "Wall.bmp"), configs[1].Path)

	// Re-running in strict mode updates the existing entries.
	require.NoError(t, RunBootstrap(configPath, sources, true, strings.NewReader("1,2\n"), &out))
	configs, err = config.LoadConfig(configPath)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.True(t, configs[0].Strict)
	assert.True(t, configs[1].Strict)
}

func TestRunBootstrapMissingDir(t *testing.T) {
	err := RunBootstrap(filepath.Join(t.TempDir(), "t.json"), filepath.Join(t.TempDir(), "nope"), false, strings.NewReader(""), &strings.Builder{})
	assert.Error(t, err)
}

func TestValidateTextures(t *testing.T) {
	sources := writeSources(t)
	configs := []config.TextureConfig{
		{Name: "wall", Path: filepath.Join(sources, "Wall.bmp"), Strict: true},
		{Name: "broken", Path: filepath.Join(sources, "broken.bmp")},
		{Name: "gone", Path: filepath.Join(sources, "gone.bmp")},
	}

	results, failures := ValidateTextures(configs, bmp.Options{})
	require.Len(t, results, 3)
	assert.Equal(t, 2, failures)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, uint32(2), results[0].Image.Width)

	assert.ErrorIs(t, results[1].Err, bmp.ErrTruncatedHeader)
	assert.Empty(t, results[1].Hint, "too short for a magic check")

	assert.True(t, bmp.IsIOError(results[2].Err))

	var out strings.Builder
	PrintResults(&out, results)
	assert.Contains(t, out.String(), "OK   wall")
	assert.Contains(t, out.String(), "FAIL broken")
}

func TestValidateTextureHint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.bmp")
	data := append(append([]byte(nil), pngMagic...), make([]byte, 64)...)
	require.NoError(t, os.WriteFile(path, data, 0644))

	r := ValidateTexture(config.TextureConfig{Name: "photo", Path: path}, bmp.Options{})
	assert.ErrorIs(t, r.Err, bmp.ErrBadMagic)
	assert.Contains(t, r.Hint, "png")

	var out strings.Builder
	PrintResults(&out, []ValidationResult{r})
	assert.Contains(t, out.String(), "file looks like png")
}

func TestRunTextures(t *testing.T) {
	sources := writeSources(t)
	configs := []config.TextureConfig{
		{Name: "wall", Path: filepath.Join(sources, "Wall.bmp")},
		{Name: "broken", Path: filepath.Join(sources, "broken.bmp")},
	}

	var out strings.Builder
	failures, err := runTextures(&out, strings.NewReader("1\n"), configs, false, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, failures)
	assert.NotContains(t, out.String(), "FAIL")

	failures, err = runTextures(&out, strings.NewReader(""), configs, true, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, failures)

	failures, err = runTextures(&out, strings.NewReader("9\n"), configs, false, bmp.Options{})
	assert.Error(t, err)
	assert.Equal(t, 0, failures)

	failures, err = runTextures(&out, strings.NewReader(""), nil, false, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, failures)
}

func TestRunFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texture.bmp")
	require.NoError(t, generateTestBMP(path, 4, 2))

	var out strings.Builder
	runFrames(&out, []config.TextureConfig{{Name: "t", Path: path}}, 3, bmp.Options{})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "texture 4x2 BGR->RGB align 4", lines[0])
	assert.Equal(t, "frame 0 time_value=0.0000 delta=1.0000", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "frame 2 time_value=0.0333"), lines[3])
}

// writeTightBMP writes a 3x2 texture whose rows lack the 4-byte padding.
func writeTightBMP(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tight.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.WriteHeader(f, bmp.Header{
		Signature: "BM", DataOffset: bmp.HeaderSize, InfoSize: 40,
		Width: 3, Height: 2, Planes: 1, BitsPerPixel: 24, ImageSize: 18,
	}))
	_, err = f.Write(make([]byte, 18))
	require.NoError(t, err)
	return path
}

func TestCommandLineOptionsOverrideConfig(t *testing.T) {
	configs := []config.TextureConfig{{Name: "tight", Path: writeTightBMP(t)}}

	var out strings.Builder
	failures, err := runTextures(&out, strings.NewReader(""), configs, true, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, failures)

	failures, err = runTextures(&out, strings.NewReader(""), configs, true, bmp.Options{Strict: true})
	require.NoError(t, err)
	assert.Equal(t, 1, failures)

	failures, err = runTextures(&out, strings.NewReader(""), configs, true, bmp.Options{MaxBytes: 17})
	require.NoError(t, err)
	assert.Equal(t, 1, failures)

	out.Reset()
	runFrames(&out, configs, 1, bmp.Options{})
	assert.Contains(t, out.String(), "texture 3x2 BGR->RGB align 1")

	out.Reset()
	runFrames(&out, configs, 1, bmp.Options{Strict: true})
	assert.NotContains(t, out.String(), "texture")
	assert.Contains(t, out.String(), "frame 0")
}

func TestLoadTextures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: a\n  path: a.bmp\n  filter: cubic\n"), 0644))
	_, err := loadTextures(path)
	assert.Error(t, err)

	configs, err := loadTextures(filepath.Join(dir, "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, configs)
}
