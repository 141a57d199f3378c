package gpio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryInput(t *testing.T) {
	var p MemoryInput
	require.False(t, p.Read())
	p.Set(true)
	require.True(t, p.Read())
	p.Set(false)
	require.False(t, p.Read())
}

func TestMemoryOutputCountsWrites(t *testing.T) {
	var p MemoryOutput
	require.Zero(t, p.Writes())

	p.Write(true)
	require.True(t, p.High())
	p.Write(true)
	p.Write(false)
	require.False(t, p.High())
	require.Equal(t, 3, p.Writes())
}
