package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"TextureLoader/bmp"
	"TextureLoader/config"
	"TextureLoader/dialogue"
)

// --- Bootstrap Function ---
func RunBootstrap(configPath, sourceDir string, strict bool, in io.Reader, out io.Writer) error {
	log.Printf("Scanning '%s' directory for source BMP files...", sourceDir)
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to read source directory '%s': %w", sourceDir, err)
	}

	var bmpFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".bmp") {
			bmpFiles = append(bmpFiles, filepath.Join(sourceDir, entry.Name()))
		}
	}
	sort.Strings(bmpFiles) // Sort for consistent display

	if len(bmpFiles) == 0 {
		log.Printf("No BMP files found in '%s'. Nothing to bootstrap.", sourceDir)
		return nil
	}

	selectedFiles, err := dialogue.ShowSourceFileSelection(bmpFiles, in, out)
	if err != nil {
		return fmt.Errorf("texture selection failed: %w", err)
	}
	if len(selectedFiles) == 0 {
		log.Println("No textures selected for bootstrapping.")
		return nil
	}

	log.Printf("Processing %d selected source file(s) for bootstrap...", len(selectedFiles))

	currentConfigs, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	configMap := make(map[string]int) // Map texture path to index in currentConfigs
	for i, cfg := range currentConfigs {
		configMap[cfg.Path] = i
	}

	configUpdated := false
	for _, bmpFile := range selectedFiles {
		log.Printf("--- Bootstrapping from: %s ---", bmpFile)

		name := strings.ToLower(strings.TrimSuffix(filepath.Base(bmpFile), filepath.Ext(bmpFile)))
		candidate := config.TextureConfig{Name: name, Path: bmpFile, Strict: strict}

		result := ValidateTexture(candidate, bmp.Options{})
		if result.Err != nil {
			log.Printf("ERROR: Failed to validate %s: %v. Skipping configuration update.", bmpFile, result.Err)
			continue
		}

		if index, exists := configMap[bmpFile]; exists {
			log.Printf("Texture for '%s' already exists in configuration. Updating mode.", bmpFile)
			currentConfigs[index].Strict = strict
		} else {
			if _, taken := config.Find(currentConfigs, name); taken {
				name = fmt.Sprintf("%s-%d", name, len(currentConfigs)+1)
				candidate.Name = name
			}
			log.Printf("Adding new texture '%s' (%dx%d) to configuration.", name, result.Image.Width, result.Image.Height)
			currentConfigs = append(currentConfigs, candidate)
			configMap[bmpFile] = len(currentConfigs) - 1
		}
		configUpdated = true
	}

	if configUpdated {
		if err := config.SaveConfig(configPath, currentConfigs); err != nil {
			return err
		}
		log.Println("Configuration file updated.")
	} else {
		log.Println("No configuration changes needed.")
	}

	return nil
}
