// Package bmp loads uncompressed 24-bit BMP files into a raw BGR payload
// ready to hand to a texture upload.
package bmp

import (
	"io"
	"math"
	"math/bits"
	"os"

	"TextureLoader/utils"
)

// DefaultMaxBytes caps the payload allocation when Options.MaxBytes is zero.
const DefaultMaxBytes = 256 << 20

// Options controls how the payload is located and sized.
type Options struct {
	// Strict seeks to the declared pixel data offset, expects 4-byte aligned
	// rows and rejects short payloads. The default reads the payload right
	// after the header exactly like the tutorial loader.
	Strict bool

	// MaxBytes bounds the payload size. Zero means DefaultMaxBytes.
	MaxBytes uint64

	// Layout overrides the header layout used for fallbacks.
	Layout *Layout
}

func (o Options) maxBytes() uint64 {
	if o.MaxBytes == 0 {
		return DefaultMaxBytes
	}
	return o.MaxBytes
}

func (o Options) layout() *Layout {
	if o.Layout == nil {
		return DefaultLayout()
	}
	return o.Layout
}

// Image is a decoded BMP: header metadata plus the raw bottom-up BGR payload.
type Image struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint16
	DataOffset   uint32
	ByteSize     uint32
	// Stride is the number of payload bytes per row.
	Stride uint32
	Pixels []byte
	// Truncated is set when the file ended before ByteSize payload bytes
	// were read. The missing tail is zero. Never set in strict mode.
	Truncated bool

	Header Header
}

// Parse loads the BMP at path with default options.
func Parse(path string) (*Image, error) {
	return ParseWithOptions(path, Options{})
}

// ParseWithOptions loads the BMP at path. Errors are *IOError or *FormatError.
func ParseWithOptions(path string, opts Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := decode(f, opts)
	if err != nil {
		return nil, wrapErr(path, err)
	}
	return img, nil
}

// Decode reads a BMP from r.
func Decode(r io.Reader, opts Options) (*Image, error) {
	img, err := decode(r, opts)
	if err != nil {
		return nil, wrapErr("", err)
	}
	return img, nil
}

func decode(r io.Reader, opts Options) (*Image, error) {
	var b [HeaderSize]byte
	if err := readHeaderBytes(r, &b); err != nil {
		return nil, err
	}
	if err := checkEncoding(b[:]); err != nil {
		return nil, err
	}

	h := decodeHeader(b[:])
	img := &Image{
		Width:        h.Width,
		Height:       h.Height,
		BitsPerPixel: h.BitsPerPixel,
		DataOffset:   h.DataOffset,
		Header:       h,
	}

	layout := opts.layout()
	values, err := layout.Values(b[:])
	if err != nil {
		return nil, err
	}

	size := uint64(h.ImageSize)
	if size == 0 {
		if size, _, err = layout.Fallback("ImageSize", opts.Strict, values); err != nil {
			return nil, err
		}
	}
	if img.DataOffset == 0 {
		off, _, err := layout.Fallback("DataOffset", opts.Strict, values)
		if err != nil {
			return nil, err
		}
		img.DataOffset = uint32(off)
	}

	tight := uint64(h.Width) * 3
	row, err := utils.RowSize(float64(h.Width), float64(h.BitsPerPixel))
	if err != nil {
		return nil, err
	}
	padded := uint64(row)
	// Both strides must fit Image.Stride; padded >= tight.
	if padded > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	rows, rowsOK := mulSize(padded, uint64(h.Height))

	if opts.Strict {
		// Negative (top-down) heights are not supported.
		if h.Height > math.MaxInt32 {
			return nil, ErrUnsupportedEncoding
		}
		if img.DataOffset < HeaderSize {
			return nil, ErrBadOffset
		}
		if !rowsOK || size < rows {
			return nil, ErrBadSize
		}
	}
	if size > opts.maxBytes() || size > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	img.ByteSize = uint32(size)
	img.Stride = uint32(tight)
	if opts.Strict || (h.Height > 0 && rowsOK && size >= rows) {
		img.Stride = uint32(padded)
	}

	if opts.Strict {
		if skip := int64(img.DataOffset) - HeaderSize; skip > 0 {
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				if err == io.EOF {
					return nil, ErrTruncatedPixels
				}
				return nil, err
			}
		}
	}

	img.Pixels = make([]byte, size)
	if _, err := io.ReadFull(r, img.Pixels); err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		if opts.Strict {
			return nil, ErrTruncatedPixels
		}
		img.Truncated = true
	}
	return img, nil
}

// mulSize returns a*b, or false when the product does not fit in 64 bits.
func mulSize(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
