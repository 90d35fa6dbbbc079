package bmp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
)

// Encode writes img as an uncompressed 24bpp BMP with 4-byte aligned rows.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bmp: cannot encode empty image %dx%d", width, height)
	}

	rowSize := (width*3 + 3) &^ 3
	imageSize := uint32(rowSize * height)
	h := Header{
		Signature:       "BM",
		FileSize:        HeaderSize + imageSize,
		DataOffset:      HeaderSize,
		InfoSize:        HeaderSize - 14,
		Width:           uint32(width),
		Height:          uint32(height),
		Planes:          1,
		BitsPerPixel:    24,
		ImageSize:       imageSize,
		XPixelsPerMeter: 2835, // ~72 DPI
		YPixelsPerMeter: 2835,
	}
	if err := WriteHeader(w, h); err != nil {
		return err
	}

	row := make([]byte, rowSize)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x*3] = byte(bl >> 8)
			row[x*3+1] = byte(g >> 8)
			row[x*3+2] = byte(r >> 8)
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("failed writing pixel row %d: %w", y, err)
		}
	}
	return nil
}

// WriteHeader writes h as the 54-byte header, field by field.
func WriteHeader(w io.Writer, h Header) error {
	if len(h.Signature) != 2 {
		return fmt.Errorf("bmp: signature must be 2 bytes, got %q", h.Signature)
	}
	if _, err := io.WriteString(w, h.Signature); err != nil {
		return fmt.Errorf("failed writing signature: %w", err)
	}
	fields := []interface{}{
		h.FileSize, h.Reserved, h.DataOffset,
		h.InfoSize, h.Width, h.Height, h.Planes, h.BitsPerPixel,
		h.Compression, h.ImageSize, h.XPixelsPerMeter, h.YPixelsPerMeter,
		h.ColorsUsed, h.ImportantColors,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("binary.Write failed for header field: %w", err)
		}
	}
	return nil
}

// WriteFile encodes img into a new file at path.
func WriteFile(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing '%s': %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, img); err != nil {
		return err
	}
	return bw.Flush()
}
