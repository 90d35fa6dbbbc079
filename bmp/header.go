package bmp

import (
	"io"
)

// HeaderSize is the size of BITMAPFILEHEADER (14) plus BITMAPINFOHEADER (40).
const HeaderSize = 54

// Byte offsets of the header fields.
const (
	offSignature       = 0x00
	offFileSize        = 0x02
	offReserved        = 0x06
	offDataOffset      = 0x0A
	offInfoSize        = 0x0E
	offWidth           = 0x12
	offHeight          = 0x16
	offPlanes          = 0x1A
	offBitsPerPixel    = 0x1C
	offCompression     = 0x1E
	offImageSize       = 0x22
	offXPixelsPerMeter = 0x26
	offYPixelsPerMeter = 0x2A
	offColorsUsed      = 0x2E
	offImportantColors = 0x32
)

// Header mirrors the 54-byte BMP header.
type Header struct {
	Signature       string // "BM"
	FileSize        uint32 // Total file size
	Reserved        uint32 // Reserved (0)
	DataOffset      uint32 // Offset to pixel data
	InfoSize        uint32 // Size of the info header (40)
	Width           uint32
	Height          uint32
	Planes          uint16 // Always 1
	BitsPerPixel    uint16
	Compression     uint32 // 0 for BI_RGB
	ImageSize       uint32 // May be 0 for uncompressed images
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ImportantColors uint32
}

func le16(b []byte, off int) uint16 {
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func le32(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func decodeHeader(b []byte) Header {
	return Header{
		Signature:       string(b[offSignature : offSignature+2]),
		FileSize:        le32(b, offFileSize),
		Reserved:        le32(b, offReserved),
		DataOffset:      le32(b, offDataOffset),
		InfoSize:        le32(b, offInfoSize),
		Width:           le32(b, offWidth),
		Height:          le32(b, offHeight),
		Planes:          le16(b, offPlanes),
		BitsPerPixel:    le16(b, offBitsPerPixel),
		Compression:     le32(b, offCompression),
		ImageSize:       le32(b, offImageSize),
		XPixelsPerMeter: int32(le32(b, offXPixelsPerMeter)),
		YPixelsPerMeter: int32(le32(b, offYPixelsPerMeter)),
		ColorsUsed:      le32(b, offColorsUsed),
		ImportantColors: le32(b, offImportantColors),
	}
}

// readHeaderBytes reads exactly HeaderSize bytes into b.
func readHeaderBytes(r io.Reader, b *[HeaderSize]byte) error {
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncatedHeader
		}
		return err
	}
	return nil
}

// ReadHeader reads and decodes the header without checking the signature or
// the encoding.
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	if err := readHeaderBytes(r, &b); err != nil {
		return Header{}, wrapErr("", err)
	}
	return decodeHeader(b[:]), nil
}

// checkEncoding applies the signature and 24bpp uncompressed checks in order.
func checkEncoding(b []byte) error {
	if b[offSignature] != 'B' || b[offSignature+1] != 'M' {
		return ErrBadMagic
	}
	// bpp is 16 bits wide; with compression == 0 the upper half of a 32-bit
	// read at 0x1C is zero, so this matches the 32-bit check.
	if le32(b, offCompression) != 0 || le16(b, offBitsPerPixel) != 24 {
		return ErrUnsupportedEncoding
	}
	return nil
}
