package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := ParseScaling("LOG")
	require.NoError(t, err)
	assert.Equal(t, Log, s)
	s, err = ParseScaling("")
	require.NoError(t, err)
	assert.Equal(t, Linear, s)

	i, err := ParseInterpolation("cubic")
	require.NoError(t, err)
	assert.Equal(t, Bicubic, i)
	i, err = ParseInterpolation("")
	require.NoError(t, err)
	assert.Equal(t, Bilinear, i)

	b, err := ParseBorder("transparent")
	require.NoError(t, err)
	assert.Equal(t, BorderTransparent, b)

	_, err = ParseScaling("polar")
	assert.ErrorIs(t, err, ErrInvalidParameters)
	_, err = ParseInterpolation("lanczos")
	assert.ErrorIs(t, err, ErrInvalidParameters)
	// wrap is never a per-pixel choice
	_, err = ParseBorder("wrap")
	assert.ErrorIs(t, err, ErrInvalidParameters)

	assert.Equal(t, "bicubic", Bicubic.String())
	assert.Equal(t, "inverse", Inverse.String())
	assert.Equal(t, "Scaling(7)", Scaling(7).String())
}
