package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowSize(t *testing.T) {
	tests := []struct {
		width, bpp float64
		want       float64
	}{
		{1, 24, 4},
		{2, 24, 8},
		{3, 24, 12},
		{4, 24, 12},
		{5, 24, 16},
		{3, 32, 12},
		{0, 24, 0},
	}
	for _, tt := range tests {
		got, err := RowSize(tt.width, tt.bpp)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "RowSize(%v, %v)", tt.width, tt.bpp)
	}

	_, err := RowSize(4, 0)
	assert.Error(t, err)
	_, err = RowSize(4, 4)
	assert.Error(t, err)
}

func TestExpressions(t *testing.T) {
	params := map[string]interface{}{"Width": 3.0, "Height": 2.0, "BitsPerPixel": 24.0}

	tests := []struct {
		expr string
		want float64
	}{
		{"Width * Height * 3", 18},
		{"PaddedSize(Width, Height, BitsPerPixel)", 24},
		{"RowSize(Width, BitsPerPixel)", 12},
	}
	for _, tt := range tests {
		expr, err := CompileExpression(tt.expr)
		require.NoError(t, err, tt.expr)
		got, err := expr.Evaluate(params)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}
}

func TestExpressionErrors(t *testing.T) {
	_, err := CompileExpression("...")
	assert.Error(t, err)
	_, err = CompileExpression("  ")
	assert.Error(t, err)

	expr, err := CompileExpression("PaddedSize(Width, Height)")
	require.NoError(t, err)
	_, err = expr.Evaluate(map[string]interface{}{"Width": 1.0, "Height": 1.0})
	assert.Error(t, err)

	expr, err = CompileExpression("RowSize(Width, 24)")
	require.NoError(t, err)
	_, err = expr.Evaluate(map[string]interface{}{"Width": "wide"})
	assert.Error(t, err)
}

func TestIsValidExpression(t *testing.T) {
	assert.True(t, IsValidExpression("Width*Height*3"))
	assert.False(t, IsValidExpression(""))
	assert.False(t, IsValidExpression(" ... "))
}
