package scene

import (
	"fmt"
	"math"

	"TextureLoader/bmp"
	"TextureLoader/config"
)

// Sampler parameter values, spelled like the GL enums.
const (
	Repeat             = "REPEAT"
	ClampToEdge        = "CLAMP_TO_EDGE"
	MirroredRepeat     = "MIRRORED_REPEAT"
	Linear             = "LINEAR"
	Nearest            = "NEAREST"
	LinearMipmapLinear = "LINEAR_MIPMAP_LINEAR"
	NearestMipmap      = "NEAREST_MIPMAP_NEAREST"
)

// TextureUpload is what gets handed to the texture upload call.
type TextureUpload struct {
	Width, Height  int32
	InternalFormat string // RGB
	Format         string // BGR, as stored in the file
	Type           string // UNSIGNED_BYTE
	// UnpackAlignment is the row alignment of Data: 4 for padded rows, 1
	// for tightly packed ones.
	UnpackAlignment int32
	Data            []byte

	WrapS, WrapT    string
	MagFilter       string
	MinFilter       string
	GenerateMipmaps bool
}

// NewTextureUpload describes img with the sampling settings from c.
// Defaults are repeat wrapping and trilinear filtering with mipmaps.
// Dimensions must fit the signed 32-bit sizes the upload call takes.
func NewTextureUpload(img *bmp.Image, c config.TextureConfig) (*TextureUpload, error) {
	if img.Width > math.MaxInt32 || img.Height > math.MaxInt32 {
		return nil, fmt.Errorf("texture %dx%d exceeds the maximum upload size: %w", img.Width, img.Height, bmp.ErrTooLarge)
	}
	u := &TextureUpload{
		Width:           int32(img.Width),
		Height:          int32(img.Height),
		InternalFormat:  "RGB",
		Format:          "BGR",
		Type:            "UNSIGNED_BYTE",
		UnpackAlignment: 1,
		Data:            img.Pixels,
		WrapS:           Repeat,
		WrapT:           Repeat,
		MagFilter:       Linear,
		MinFilter:       LinearMipmapLinear,
		GenerateMipmaps: true,
	}
	if img.Stride%4 == 0 {
		u.UnpackAlignment = 4
	}

	switch c.Wrap {
	case config.WrapClamp:
		u.WrapS, u.WrapT = ClampToEdge, ClampToEdge
	case config.WrapMirror:
		u.WrapS, u.WrapT = MirroredRepeat, MirroredRepeat
	}
	if c.Filter == config.FilterNearest {
		u.MagFilter = Nearest
		u.MinFilter = NearestMipmap
	}
	return u, nil
}
