package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
	"realtime-edge/internal/opencv/safe"
)

func TestAllocateOutput(t *testing.T) {
	m := NewManager(1024)

	buf, err := m.AllocateOutput(64)
	require.NoError(t, err)
	assert.Len(t, buf, 64)

	stats := m.GetStats()
	assert.EqualValues(t, 1, stats.Outputs)
	assert.Zero(t, stats.ActiveBytes)
}

func TestAllocateOutputOverLimit(t *testing.T) {
	m := NewManager(32)

	_, err := m.AllocateOutput(64)
	assert.ErrorContains(t, err, "memory limit exceeded")
	assert.EqualValues(t, 1, m.GetStats().Rejected)
	assert.Zero(t, m.GetStats().Outputs)

	_, err = m.AllocateOutput(0)
	assert.Error(t, err)
}

func TestAllocateOutputAllocatorFailure(t *testing.T) {
	m := NewManager(1024, WithOutputAllocator(func(int) ([]byte, error) {
		return nil, errors.New("malloc returned NULL")
	}, nil))

	_, err := m.AllocateOutput(16)
	assert.ErrorContains(t, err, "malloc returned NULL")
	assert.Zero(t, m.GetStats().ActiveBytes)
}

func TestDiscardOutputUsesFree(t *testing.T) {
	var freed []byte
	m := NewManager(1024, WithOutputAllocator(func(n int) ([]byte, error) {
		return make([]byte, n), nil
	}, func(buf []byte) {
		freed = buf
	}))

	buf, err := m.AllocateOutput(8)
	require.NoError(t, err)
	m.DiscardOutput(buf)
	m.DiscardOutput(nil)

	assert.Len(t, freed, 8)
	assert.Zero(t, m.GetStats().Outputs)
}

func TestNewManagerDefaultsCeiling(t *testing.T) {
	assert.Equal(t, DefaultMaxAllowed, NewManager(0).GetStats().MaxAllowed)
}

func TestScopeReleasesOnClose(t *testing.T) {
	m := NewManager(1 << 20)
	scope := m.NewScope()

	a, err := scope.NewMat(8, 8, gocv.MatTypeCV8UC1, "a")
	require.NoError(t, err)
	b, err := scope.NewMat(8, 8, gocv.MatTypeCV8UC4, "b")
	require.NoError(t, err)

	assert.EqualValues(t, 64+256, m.GetStats().ActiveBytes)
	assert.Equal(t, 2, scope.Len())

	a.Close()
	scope.Close()
	scope.Close()

	assert.False(t, b.IsValid())
	assert.Zero(t, m.GetStats().ActiveBytes)
	assert.EqualValues(t, 2, m.GetStats().MatsCreated)

	_, err = scope.NewMat(1, 1, gocv.MatTypeCV8UC1, "late")
	assert.ErrorContains(t, err, "scope closed")
}

func TestScopeRejectsPastCeiling(t *testing.T) {
	m := NewManager(100)
	scope := m.NewScope()
	defer scope.Close()

	_, err := scope.NewMat(10, 10, gocv.MatTypeCV8UC4, "big")
	assert.ErrorContains(t, err, "memory limit exceeded")
	assert.Zero(t, m.GetStats().ActiveBytes)
}

func TestScopeAdopt(t *testing.T) {
	m := NewManager(1 << 20)
	scope := m.NewScope()

	mat, err := safe.NewMat(4, 4, gocv.MatTypeCV8UC3, "input")
	require.NoError(t, err)
	require.NoError(t, scope.Adopt(mat))
	assert.EqualValues(t, 48, m.GetStats().ActiveBytes)

	scope.Close()
	assert.False(t, mat.IsValid())
	assert.Zero(t, m.GetStats().ActiveBytes)

	assert.Error(t, scope.Adopt(nil))
}

func TestScopeAdoptOverLimitClosesMat(t *testing.T) {
	m := NewManager(10)
	scope := m.NewScope()
	defer scope.Close()

	mat, err := safe.NewMat(4, 4, gocv.MatTypeCV8UC1, "input")
	require.NoError(t, err)

	assert.Error(t, scope.Adopt(mat))
	assert.False(t, mat.IsValid())
}
