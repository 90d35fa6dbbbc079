package bmp

import (
	_ "embed"
	"fmt"
	"io"
	"math"

	"TextureLoader/structs"
	"TextureLoader/utils"

	"github.com/knetic/govaluate"
	"gopkg.in/yaml.v2"
)

//go:embed layout.yml
var layoutYAML []byte

// Layout is a header description loaded from YAML, with its fallback
// expressions compiled.
type Layout struct {
	Format structs.FileFormat

	fallbacks       map[string]*govaluate.EvaluableExpression
	strictFallbacks map[string]*govaluate.EvaluableExpression
}

var defaultLayout = mustLoadLayout(layoutYAML)

// DefaultLayout returns the layout of the 54-byte BMP header.
func DefaultLayout() *Layout { return defaultLayout }

func mustLoadLayout(data []byte) *Layout {
	l, err := LoadLayout(data)
	if err != nil {
		panic(fmt.Sprintf("bmp: embedded layout: %v", err))
	}
	return l
}

// LoadLayout parses a YAML header description and compiles its fallbacks.
func LoadLayout(data []byte) (*Layout, error) {
	var format structs.FileFormat
	if err := yaml.Unmarshal(data, &format); err != nil {
		return nil, fmt.Errorf("error unmarshaling layout YAML: %w", err)
	}
	if format.Size <= 0 {
		return nil, fmt.Errorf("layout '%s' has invalid size %d", format.Name, format.Size)
	}

	l := &Layout{
		Format:          format,
		fallbacks:       make(map[string]*govaluate.EvaluableExpression),
		strictFallbacks: make(map[string]*govaluate.EvaluableExpression),
	}
	seen := make(map[string]bool)
	for i := range format.Fields {
		field := &format.Fields[i]
		if seen[field.Name] {
			return nil, fmt.Errorf("layout '%s': duplicate field '%s'", format.Name, field.Name)
		}
		seen[field.Name] = true

		size, err := field.Size()
		if err != nil {
			return nil, fmt.Errorf("layout '%s': %w", format.Name, err)
		}
		if field.Offset < 0 || field.Offset+size > format.Size {
			return nil, fmt.Errorf("layout '%s': field '%s' at offset %d overruns header of %d bytes", format.Name, field.Name, field.Offset, format.Size)
		}

		if field.Fallback != "" {
			expr, err := utils.CompileExpression(field.Fallback)
			if err != nil {
				return nil, fmt.Errorf("layout '%s': field '%s' fallback '%s': %w", format.Name, field.Name, field.Fallback, err)
			}
			l.fallbacks[field.Name] = expr
		}
		if field.StrictFallback != "" {
			expr, err := utils.CompileExpression(field.StrictFallback)
			if err != nil {
				return nil, fmt.Errorf("layout '%s': field '%s' strict fallback '%s': %w", format.Name, field.Name, field.StrictFallback, err)
			}
			l.strictFallbacks[field.Name] = expr
		}
	}
	return l, nil
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (structs.Field, bool) {
	for _, f := range l.Format.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return structs.Field{}, false
}

// Values decodes every field of the header in b.
func (l *Layout) Values(b []byte) (map[string]interface{}, error) {
	if len(b) < l.Format.Size {
		return nil, ErrTruncatedHeader
	}
	values := make(map[string]interface{}, len(l.Format.Fields))
	for _, f := range l.Format.Fields {
		v, err := fieldValue(f, b)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}
	return values, nil
}

func fieldValue(f structs.Field, b []byte) (interface{}, error) {
	switch f.Type {
	case "uint8":
		return b[f.Offset], nil
	case "int8":
		return int8(b[f.Offset]), nil
	case "uint16":
		return le16(b, f.Offset), nil
	case "int16":
		return int16(le16(b, f.Offset)), nil
	case "uint32":
		return le32(b, f.Offset), nil
	case "int32":
		return int32(le32(b, f.Offset)), nil
	case "string", "[]byte":
		n, err := f.Size()
		if err != nil {
			return nil, err
		}
		if f.Type == "string" {
			return string(b[f.Offset : f.Offset+n]), nil
		}
		out := make([]byte, n)
		copy(out, b[f.Offset:f.Offset+n])
		return out, nil
	}
	return nil, fmt.Errorf("field %s has unsupported type '%s'", f.Name, f.Type)
}

// Fallback evaluates the fallback of the named field against the header
// values. ok is false when the field has no fallback for this mode.
func (l *Layout) Fallback(name string, strict bool, values map[string]interface{}) (v uint64, ok bool, err error) {
	expr := l.fallbacks[name]
	if strict {
		if s, found := l.strictFallbacks[name]; found {
			expr = s
		}
	}
	if expr == nil {
		return 0, false, nil
	}

	params := map[string]interface{}{"HeaderSize": float64(l.Format.Size)}
	for k, val := range values {
		if f, isNum := toFloat(val); isNum {
			params[k] = f
		}
	}
	result, err := expr.Evaluate(params)
	if err != nil {
		return 0, true, fmt.Errorf("%w: fallback for %s: %v", ErrLayout, name, err)
	}
	f, isNum := result.(float64)
	if !isNum {
		return 0, true, fmt.Errorf("%w: fallback for %s is not numeric: %v", ErrLayout, name, result)
	}
	if f < 0 || f > math.MaxUint32 {
		return 0, true, ErrTooLarge
	}
	return uint64(f), true, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case uint8:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case int16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Dump writes one line per field of the header in b.
func (l *Layout) Dump(w io.Writer, b []byte) error {
	values, err := l.Values(b)
	if err != nil {
		return err
	}
	for _, f := range l.Format.Fields {
		v := values[f.Name]
		if s, isStr := v.(string); isStr {
			v = fmt.Sprintf("%q", s)
		}
		if _, err := fmt.Fprintf(w, "0x%02X  %-16s %-7s %-12v %s\n", f.Offset, f.Name, f.Type, v, f.Description); err != nil {
			return err
		}
	}
	return nil
}
