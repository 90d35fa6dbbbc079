package utils

import (
	"fmt"
	"strings"

	"github.com/knetic/govaluate"
)

// GetExpressionFunctions defines functions usable in header fallback expressions.
func GetExpressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// RowSize(width, bitsPerPixel): bytes per scanline, aligned to 4.
		"RowSize": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("RowSize expects 2 arguments (width, bitsPerPixel)")
			}
			vals, err := floatArgs("RowSize", args)
			if err != nil {
				return nil, err
			}
			row, err := RowSize(vals[0], vals[1])
			if err != nil {
				return nil, err
			}
			return row, nil
		},
		// PaddedSize(width, height, bitsPerPixel): total payload with row padding.
		"PaddedSize": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("PaddedSize expects 3 arguments (width, height, bitsPerPixel)")
			}
			vals, err := floatArgs("PaddedSize", args)
			if err != nil {
				return nil, err
			}
			row, err := RowSize(vals[0], vals[2])
			if err != nil {
				return nil, err
			}
			return row * vals[1], nil
		},
	}
}

// RowSize returns the 4-byte aligned size of one scanline. Values are
// float64 because that is what govaluate hands to expression functions.
func RowSize(width, bitsPerPixel float64) (float64, error) {
	if bitsPerPixel == 0 {
		return 0, fmt.Errorf("bitsPerPixel cannot be zero")
	}
	bytesPerPixel := int64(bitsPerPixel / 8)
	if bytesPerPixel <= 0 {
		return 0, fmt.Errorf("unsupported bitsPerPixel for simple calculation: %v", bitsPerPixel)
	}
	bytesPerRow := int64(width) * bytesPerPixel
	padding := (4 - bytesPerRow%4) % 4
	return float64(bytesPerRow + padding), nil
}

// govaluate often passes numbers as float64, but be lenient with ints.
func floatArgs(name string, args []interface{}) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case float64:
			out[i] = v
		case int:
			out[i] = float64(v)
		case uint32:
			out[i] = float64(v)
		default:
			return nil, fmt.Errorf("arg %d must be numeric for %s", i+1, name)
		}
		if out[i] < 0 {
			return nil, fmt.Errorf("arg %d must not be negative for %s", i+1, name)
		}
	}
	return out, nil
}

// IsValidExpression performs basic sanity checks on an expression string.
func IsValidExpression(expr string) bool {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "..." {
		return false
	}
	return true
}

// CompileExpression parses expr with the functions above.
func CompileExpression(expr string) (*govaluate.EvaluableExpression, error) {
	if !IsValidExpression(expr) {
		return nil, fmt.Errorf("invalid expression '%s'", expr)
	}
	return govaluate.NewEvaluableExpressionWithFunctions(expr, GetExpressionFunctions())
}
