package bmp

import (
	"image"
	"image/color"
	"math/bits"
)

// At returns the color of pixel (x, y), with y = 0 at the top of the image
// as in image.Image. Pixels outside the payload are transparent black.
func (img *Image) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || uint64(x) >= uint64(img.Width) || uint64(y) >= uint64(img.Height) {
		return color.NRGBA{}
	}
	// Rows are stored bottom-up.
	hi, i := bits.Mul64(uint64(img.Height)-1-uint64(y), uint64(img.Stride))
	i, carry := bits.Add64(i, uint64(x)*3, 0)
	n := uint64(len(img.Pixels))
	if hi != 0 || carry != 0 || n < 3 || i > n-3 {
		return color.NRGBA{}
	}
	p := img.Pixels[i : i+3 : i+3]
	return color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xFF}
}

// ToNRGBA converts the bottom-up BGR payload into a top-down image. Images
// with more than DefaultMaxBytes pixels fail with ErrTooLarge.
func (img *Image) ToNRGBA() (*image.NRGBA, error) {
	if pixels, ok := mulSize(uint64(img.Width), uint64(img.Height)); !ok || pixels > DefaultMaxBytes {
		return nil, ErrTooLarge
	}
	w, h := int(img.Width), int(img.Height)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, y, img.At(x, y))
		}
	}
	return out, nil
}
