// project/structs/structs.go
package structs

import (
	"fmt"
	"strconv"
)

// FileFormat describes the fixed-size header of a binary file format.
type FileFormat struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Size        int     `yaml:"size"`
	Fields      []Field `yaml:"fields"`
}

type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Offset      int    `yaml:"offset"`
	// Length is only used for fixed-size strings and byte slices.
	Length string `yaml:"length,omitempty"`
	// Fallback is an expression evaluated when the stored value is zero,
	// e.g. "Width * Height * 3". StrictFallback replaces it in strict mode.
	Fallback       string `yaml:"fallback,omitempty"`
	StrictFallback string `yaml:"strictFallback,omitempty"`
}

func (f *Field) GetLength() (int, error) {
	// If Length is empty, return 0
	if f.Length == "" {
		return 0, nil
	}

	length, err := strconv.Atoi(f.Length)
	if err != nil {
		return 0, fmt.Errorf("invalid length for field %s: %w", f.Name, err)
	}

	return length, nil
}

// Size returns the number of bytes the field occupies in the header.
func (f *Field) Size() (int, error) {
	switch f.Type {
	case "uint8", "int8":
		return 1, nil
	case "uint16", "int16":
		return 2, nil
	case "uint32", "int32":
		return 4, nil
	case "string", "[]byte":
		n, err := f.GetLength()
		if err != nil {
			return 0, err
		}
		if n <= 0 {
			return 0, fmt.Errorf("field %s of type %s requires a positive length", f.Name, f.Type)
		}
		return n, nil
	}
	return 0, fmt.Errorf("field %s has unsupported type '%s'", f.Name, f.Type)
}
