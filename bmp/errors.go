package bmp

import (
	"errors"
	"fmt"
)

var (
	ErrTruncatedHeader     = errors.New("truncated header")
	ErrBadMagic            = errors.New("bad magic")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrTooLarge            = errors.New("payload too large")
	ErrLayout              = errors.New("header layout evaluation failed")

	// Strict mode only.
	ErrBadOffset       = errors.New("pixel data offset inside header")
	ErrBadSize         = errors.New("declared size smaller than padded rows")
	ErrTruncatedPixels = errors.New("truncated pixel data")
)

// IOError reports a file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("bmp: cannot read '%s': %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a file that is not an uncompressed 24bpp BMP.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bmp: not a correct BMP file: %v", e.Err)
	}
	return fmt.Sprintf("bmp: '%s' is not a correct BMP file: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Reason is the short description of the failed check, e.g. "bad magic".
func (e *FormatError) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func isFormatErr(err error) bool {
	switch {
	case errors.Is(err, ErrTruncatedHeader),
		errors.Is(err, ErrBadMagic),
		errors.Is(err, ErrUnsupportedEncoding),
		errors.Is(err, ErrTooLarge),
		errors.Is(err, ErrLayout),
		errors.Is(err, ErrBadOffset),
		errors.Is(err, ErrBadSize),
		errors.Is(err, ErrTruncatedPixels):
		return true
	}
	return false
}

// wrapErr sorts a decode failure into FormatError or IOError.
func wrapErr(path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FormatError
	var ie *IOError
	if errors.As(err, &fe) || errors.As(err, &ie) {
		if fe != nil && fe.Path == "" {
			fe.Path = path
		}
		if ie != nil && ie.Path == "" {
			ie.Path = path
		}
		return err
	}
	if isFormatErr(err) {
		return &FormatError{Path: path, Err: err}
	}
	return &IOError{Path: path, Err: err}
}

// IsFormatError reports whether err is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsIOError reports whether err is an IOError.
func IsIOError(err error) bool {
	var ie *IOError
	return errors.As(err, &ie)
}
