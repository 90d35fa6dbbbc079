// project/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"TextureLoader/bmp"
	"TextureLoader/config"
	"TextureLoader/dialogue"
	"TextureLoader/scene"
)

func main() {
	// Define flags
	configPath := flag.String("config", "textures.json", "Texture configuration file (.json, .yaml or .toml)")
	bootstrap := flag.Bool("bootstrap", false, "Add BMP files from the sources directory to the configuration")
	sourceDir := flag.String("sources", "sources", "Directory scanned by -bootstrap")
	genPath := flag.String("gen", "", "Write a sample texture to this path and exit")
	imagePath := flag.String("image", "", "Parse a single BMP file and print its header")
	strict := flag.Bool("strict", false, "Seek to the declared pixel offset and require padded rows (overrides per-texture mode)")
	all := flag.Bool("all", false, "Load every configured texture without prompting")
	frames := flag.Int("frames", 0, "Print this many simulated frames of the triangle scene")
	maxBytes := flag.Uint64("max-bytes", bmp.DefaultMaxBytes, "Largest pixel payload to allocate")

	flag.Parse() // Parse command-line arguments

	opts := bmp.Options{Strict: *strict, MaxBytes: *maxBytes}

	switch {
	case *genPath != "":
		if err := generateTestBMP(*genPath, sampleWidth, sampleHeight); err != nil {
			log.Fatalf("Error generating %s: %v", *genPath, err)
		}
	case *imagePath != "":
		if err := runImage(os.Stdout, *imagePath, opts); err != nil {
			log.Fatalf("Error reading %s: %v", *imagePath, err)
		}
	case *bootstrap:
		if err := RunBootstrap(*configPath, *sourceDir, *strict, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("Bootstrap failed: %v", err)
		}
	default:
		configs, err := loadTextures(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if *frames > 0 {
			runFrames(os.Stdout, configs, *frames, opts)
			return
		}
		failures, err := runTextures(os.Stdout, os.Stdin, configs, *all, opts)
		if err != nil {
			log.Fatalf("Texture selection failed: %v", err)
		}
		if failures > 0 {
			log.Printf("%d texture(s) failed to load.", failures)
			os.Exit(1)
		}
	}
}

func loadTextures(configPath string) ([]config.TextureConfig, error) {
	configs, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(configs); err != nil {
		return nil, fmt.Errorf("invalid configuration '%s': %w", configPath, err)
	}
	return configs, nil
}

func runImage(w io.Writer, path string, opts bmp.Options) error {
	img, err := bmp.ParseWithOptions(path, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %dx%d, %d bpp, %d payload bytes at offset %d, stride %d\n",
		path, img.Width, img.Height, img.BitsPerPixel, img.ByteSize, img.DataOffset, img.Stride)
	if img.Truncated {
		fmt.Fprintln(w, "warning: file ends before the payload does; missing bytes are zero")
	}
	return dumpHeader(w, path)
}

func dumpHeader(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b := make([]byte, bmp.HeaderSize)
	if _, err := io.ReadFull(f, b); err != nil {
		return fmt.Errorf("error reading header of '%s': %w", path, err)
	}
	return bmp.DefaultLayout().Dump(w, b)
}

func runTextures(w io.Writer, in io.Reader, configs []config.TextureConfig, all bool, opts bmp.Options) (int, error) {
	if len(configs) == 0 {
		log.Println("No textures configured. Nothing to load.")
		log.Println("Hint: Run with -bootstrap to configure textures from the 'sources' directory.")
		return 0, nil
	}

	selected := configs
	if !all {
		var err error
		selected, err = dialogue.ShowConfigSelection(configs, in, w)
		if err != nil {
			return 0, err
		}
	}
	log.Printf("Processing %d selected texture(s).", len(selected))

	results, failures := ValidateTextures(selected, opts)
	PrintResults(w, results)
	return failures, nil
}

// runFrames prints n frames of the scene at 60 frames per second.
func runFrames(w io.Writer, configs []config.TextureConfig, n int, opts bmp.Options) {
	sceneOpts := scene.Options{Strict: opts.Strict, MaxBytes: opts.MaxBytes}
	if len(configs) > 0 {
		sceneOpts.Texture = configs[0]
	}
	s := scene.New(sceneOpts)
	if s.Upload != nil {
		fmt.Fprintf(w, "texture %dx%d %s->%s align %d\n",
			s.Upload.Width, s.Upload.Height, s.Upload.Format, s.Upload.InternalFormat, s.Upload.UnpackAlignment)
	}
	for i := 0; i < n; i++ {
		f := s.Frame(float64(i) / 60)
		fmt.Fprintf(w, "frame %d %s=%.4f delta=%.4f\n", i, scene.TimeUniform, f.Time, f.ColorDelta)
	}
}
