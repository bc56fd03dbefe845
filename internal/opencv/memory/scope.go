package memory

import (
	"fmt"

	"gocv.io/x/gocv"
	"realtime-edge/internal/opencv/safe"
)

// Scope owns every Mat created during one call and closes them together.
// A Scope is used by a single goroutine.
type Scope struct {
	mgr      *Manager
	mats     []*safe.Mat
	reserved int64
	closed   bool
}

func (m *Manager) NewScope() *Scope {
	return &Scope{mgr: m}
}

func (s *Scope) NewMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	if s.closed {
		return nil, fmt.Errorf("scope closed")
	}

	size := int64(rows * cols * safe.MatTypeSize(matType))
	if err := s.mgr.reserve(size); err != nil {
		return nil, err
	}

	mat, err := safe.NewMat(rows, cols, matType, tag)
	if err != nil {
		s.mgr.release(size)
		return nil, err
	}

	s.track(mat, size)
	return mat, nil
}

// Adopt takes ownership of a Mat created elsewhere. On error the Mat is closed.
func (s *Scope) Adopt(mat *safe.Mat) error {
	if mat == nil {
		return fmt.Errorf("cannot adopt nil Mat")
	}
	if s.closed {
		mat.Close()
		return fmt.Errorf("scope closed")
	}

	size := mat.Size()
	if err := s.mgr.reserve(size); err != nil {
		mat.Close()
		return err
	}

	s.track(mat, size)
	return nil
}

func (s *Scope) track(mat *safe.Mat, size int64) {
	s.mats = append(s.mats, mat)
	s.reserved += size
	s.mgr.matsCreated.Add(1)
}

func (s *Scope) Len() int {
	return len(s.mats)
}

// Close closes all tracked Mats and returns their bytes to the manager.
// Mats already closed by their users are skipped.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, mat := range s.mats {
		mat.Close()
	}
	s.mats = nil

	s.mgr.release(s.reserved)
	s.reserved = 0
}

// Allocator is what pipeline steps need to create their destination Mats.
type Allocator interface {
	NewMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error)
}

var _ Allocator = (*Scope)(nil)
