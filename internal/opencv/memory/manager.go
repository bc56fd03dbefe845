package memory

import (
	"fmt"
	"sync/atomic"
)

// DefaultMaxAllowed matches the config default ceiling.
const DefaultMaxAllowed int64 = 2 * 1024 * 1024 * 1024

// OutputAllocator hands out the buffer that is returned to the caller.
type OutputAllocator func(n int) ([]byte, error)

// OutputFree gives back a buffer from OutputAllocator that was never handed out.
type OutputFree func(buf []byte)

// Manager accounts for the bytes held by in-flight calls and refuses
// allocations past its ceiling. It keeps counters only, never pixels.
type Manager struct {
	maxAllowed int64
	allocate   OutputAllocator
	free       OutputFree

	active         atomic.Int64
	totalAllocated atomic.Int64
	matsCreated    atomic.Int64
	outputs        atomic.Int64
	rejected       atomic.Int64
}

type Stats struct {
	MaxAllowed     int64
	ActiveBytes    int64
	TotalAllocated int64
	MatsCreated    int64
	Outputs        int64
	Rejected       int64
}

type Option func(*Manager)

// WithOutputAllocator replaces the Go heap allocator used by AllocateOutput.
// free may be nil when discarded buffers need no explicit release.
func WithOutputAllocator(alloc OutputAllocator, free OutputFree) Option {
	return func(m *Manager) {
		if alloc != nil {
			m.allocate = alloc
			m.free = free
		}
	}
}

func NewManager(maxAllowed int64, opts ...Option) *Manager {
	if maxAllowed <= 0 {
		maxAllowed = DefaultMaxAllowed
	}

	m := &Manager{
		maxAllowed: maxAllowed,
		allocate:   heapAllocator,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func heapAllocator(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (m *Manager) reserve(size int64) error {
	for {
		current := m.active.Load()
		if current+size > m.maxAllowed {
			m.rejected.Add(1)
			return fmt.Errorf("memory limit exceeded: %d bytes requested, %d of %d in use",
				size, current, m.maxAllowed)
		}
		if m.active.CompareAndSwap(current, current+size) {
			m.totalAllocated.Add(size)
			return nil
		}
	}
}

func (m *Manager) release(size int64) {
	m.active.Add(-size)
}

// AllocateOutput returns a fresh buffer of n bytes. The buffer is not tracked
// after it is returned; ownership passes to the caller.
func (m *Manager) AllocateOutput(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid output size: %d", n)
	}

	if err := m.reserve(int64(n)); err != nil {
		return nil, err
	}
	defer m.release(int64(n))

	buf, err := m.allocate(n)
	if err != nil {
		m.rejected.Add(1)
		return nil, fmt.Errorf("output allocation of %d bytes: %w", n, err)
	}
	if len(buf) != n {
		m.rejected.Add(1)
		return nil, fmt.Errorf("output allocator returned %d bytes, want %d", len(buf), n)
	}

	m.outputs.Add(1)
	return buf, nil
}

// DiscardOutput returns a buffer from AllocateOutput that will not reach the caller.
func (m *Manager) DiscardOutput(buf []byte) {
	if buf == nil {
		return
	}
	m.outputs.Add(-1)
	if m.free != nil {
		m.free(buf)
	}
}

func (m *Manager) GetStats() Stats {
	return Stats{
		MaxAllowed:     m.maxAllowed,
		ActiveBytes:    m.active.Load(),
		TotalAllocated: m.totalAllocated.Load(),
		MatsCreated:    m.matsCreated.Load(),
		Outputs:        m.outputs.Load(),
		Rejected:       m.rejected.Load(),
	}
}
