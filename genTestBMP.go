package main

import (
	"image"
	"image/color"
	"log"

	"TextureLoader/bmp"
)

const (
	sampleWidth  = 256
	sampleHeight = 256
)

// generateTestBMP writes the sample texture: red grows left to right, green
// grows bottom to top, blue is constant.
func generateTestBMP(path string, width, height int) error {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(width-1, 1)),
				G: uint8((height - 1 - y) * 255 / max(height-1, 1)),
				B: 0x80,
				A: 0xFF,
			})
		}
	}

	if err := bmp.WriteFile(path, img); err != nil {
		return err
	}
	log.Printf("Successfully generated %s (%dx%d)", path, width, height)
	return nil
}
