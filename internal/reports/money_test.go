package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncar2(t *testing.T) {
	assert.Equal(t, 19.99, Truncar2(19.9999))
	assert.Equal(t, 0.0, Truncar2(0))
	assert.Equal(t, 10.0, Truncar2(10.009))
	assert.Equal(t, -3.14, Truncar2(-3.1459))
}

func TestFormatearImporte(t *testing.T) {
	// Truncated, never rounded, with German-style separators.
	assert.Equal(t, "19,99", FormatearImporte(19.9999))
	assert.Equal(t, "0,00", FormatearImporte(0))
	assert.Equal(t, "1.234,50", FormatearImporte(1234.5))
}
