package gauge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTareAccumulatesOnlyWhenActive(t *testing.T) {
	tare := NewTareState(10)

	tare.Add(1.0, 2.0)
	_, ok := tare.Baseline()
	assert.False(t, ok, "inactive tare must not accumulate")

	require.True(t, tare.Toggle())
	tare.Add(1.0, 2.0)
	tare.Add(1.2, 2.2)

	b, ok := tare.Baseline()
	require.True(t, ok)
	assert.Equal(t, 2, b.Samples)
	assert.InDelta(t, 1.1, b.ThetaBlack, 1e-9)
	assert.InDelta(t, 2.1, b.ThetaRed, 1e-9)
}

func TestTareToggleClears(t *testing.T) {
	tare := NewTareState(10)
	tare.Toggle()
	tare.Add(0.5, 1.5)

	// Toggling off clears; toggling back on starts from empty.
	assert.False(t, tare.Toggle())
	_, ok := tare.Baseline()
	assert.False(t, ok)

	assert.True(t, tare.Toggle())
	_, ok = tare.Baseline()
	assert.False(t, ok)
}

func TestTareBounded(t *testing.T) {
	tare := NewTareState(5)
	tare.Toggle()
	for i := 0; i < 50; i++ {
		tare.Add(0.1, 0.2)
	}
	b, ok := tare.Baseline()
	require.True(t, ok)
	assert.Equal(t, 5, b.Samples)
}
