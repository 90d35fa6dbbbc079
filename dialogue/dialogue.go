package dialogue

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"TextureLoader/config"
)

// ShowSourceFileSelection prompts the user to select from available BMP files.
func ShowSourceFileSelection(bmpFiles []string, in io.Reader, out io.Writer) ([]string, error) {
	if len(bmpFiles) == 0 {
		return []string{}, nil
	}

	fmt.Fprintln(out, "\nAvailable source BMP files:")
	for i, file := range bmpFiles {
		fmt.Fprintf(out, "%d. %s\n", i+1, file)
	}

	fmt.Fprint(out, "\nSelect file(s) to bootstrap (e.g., 1,3,4), or press Enter for all: ")
	indexes, err := readSelection(in, len(bmpFiles))
	if err != nil {
		return nil, err
	}
	if indexes == nil {
		return bmpFiles, nil // Return all if no selection
	}

	selected := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		selected = append(selected, bmpFiles[idx])
	}
	return selected, nil
}

// ShowConfigSelection prompts the user to select from configured textures.
func ShowConfigSelection(textureConfigs []config.TextureConfig, in io.Reader, out io.Writer) ([]config.TextureConfig, error) {
	if len(textureConfigs) == 0 {
		return []config.TextureConfig{}, nil
	}

	fmt.Fprintln(out, "\nConfigured textures:")
	for i, c := range textureConfigs {
		mode := "compat"
		if c.Strict {
			mode = "strict"
		}
		fmt.Fprintf(out, "%d. %s (%s, %s)\n", i+1, c.Name, c.Path, mode)
	}

	fmt.Fprint(out, "\nSelect texture(s) to load (e.g., 1,3,4), or press Enter for all: ")
	indexes, err := readSelection(in, len(textureConfigs))
	if err != nil {
		return nil, err
	}
	if indexes == nil {
		return textureConfigs, nil
	}

	selected := make([]config.TextureConfig, 0, len(indexes))
	for _, idx := range indexes {
		selected = append(selected, textureConfigs[idx])
	}
	return selected, nil
}

// readSelection reads one line of 1-based, comma separated numbers and
// returns unique 0-based indexes in input order. A blank line returns nil;
// a line of bare commas is an error.
func readSelection(in io.Reader, n int) ([]int, error) {
	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		if err == io.EOF {
			return nil, nil // Treat closed input like Enter
		}
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	var indexes []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		trimmedPart := strings.TrimSpace(part)
		if trimmedPart == "" {
			continue
		}
		idx, err := strconv.Atoi(trimmedPart)
		if err != nil || idx < 1 || idx > n {
			return nil, fmt.Errorf("invalid selection '%s': please enter numbers between 1 and %d, separated by commas", trimmedPart, n)
		}
		if !seen[idx] {
			indexes = append(indexes, idx-1)
			seen[idx] = true
		}
	}
	if indexes == nil {
		// Only separators: not the same as pressing Enter.
		return nil, fmt.Errorf("invalid selection '%s': please enter numbers between 1 and %d, separated by commas", input, n)
	}
	return indexes, nil
}
