// validator.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"TextureLoader/bmp"
	"TextureLoader/config"

	"github.com/h2non/filetype"
)

// ValidationResult is the outcome of loading one configured texture.
type ValidationResult struct {
	Texture config.TextureConfig
	Image   *bmp.Image
	Err     error
	// Hint names the detected file type when the file is not a BMP at all.
	Hint string
}

// ValidateTexture parses the texture. Strict parsing applies when either
// opts or the texture config asks for it.
func ValidateTexture(c config.TextureConfig, opts bmp.Options) ValidationResult {
	result := ValidationResult{Texture: c}
	opts.Strict = opts.Strict || c.Strict
	img, err := bmp.ParseWithOptions(c.Path, opts)
	if err != nil {
		result.Err = err
		if errors.Is(err, bmp.ErrBadMagic) {
			result.Hint = detectFileType(c.Path)
		}
		return result
	}
	result.Image = img
	return result
}

// ValidateTextures loads every texture and returns the results along with
// the number of failures.
func ValidateTextures(configs []config.TextureConfig, opts bmp.Options) ([]ValidationResult, int) {
	results := make([]ValidationResult, 0, len(configs))
	failures := 0
	for _, c := range configs {
		log.Printf("Validating texture '%s' (%s)", c.Name, c.Path)
		r := ValidateTexture(c, opts)
		if r.Err != nil {
			failures++
			log.Printf("ERROR: %v", r.Err)
		}
		results = append(results, r)
	}
	return results, failures
}

func detectFileType(path string) string {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return fmt.Sprintf("%s (%s)", kind.Extension, kind.MIME.Value)
}

// PrintResults writes one line per texture.
func PrintResults(w io.Writer, results []ValidationResult) {
	for _, r := range results {
		switch {
		case r.Err != nil && r.Hint != "":
			fmt.Fprintf(w, "FAIL %-16s %v (file looks like %s)\n", r.Texture.Name, r.Err, r.Hint)
		case r.Err != nil:
			fmt.Fprintf(w, "FAIL %-16s %v\n", r.Texture.Name, r.Err)
		default:
			img := r.Image
			note := ""
			if img.Truncated {
				note = " truncated"
			}
			fmt.Fprintf(w, "OK   %-16s %dx%d %d bytes offset %d stride %d%s\n",
				r.Texture.Name, img.Width, img.Height, img.ByteSize, img.DataOffset, img.Stride, note)
		}
	}
}
