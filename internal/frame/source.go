package frame

import (
	"errors"
	"sync"
)

// Source is a borrowed input buffer. Acquire pins it for reading; Release hands
// it back to its owner without committing changes.
type Source interface {
	Acquire() ([]byte, error)
	Release()
}

var errNilBuffer = errors.New("input buffer is nil")

// Bytes wraps a Go slice as a Source. A nil slice cannot be acquired.
func Bytes(data []byte) Source {
	return byteSource{data: data}
}

type byteSource struct {
	data []byte
}

func (s byteSource) Acquire() ([]byte, error) {
	if s.data == nil {
		return nil, errNilBuffer
	}
	return s.data, nil
}

func (byteSource) Release() {}

// borrow releases its source at most once.
type borrow struct {
	src  Source
	once sync.Once
}

func (b *borrow) release() {
	b.once.Do(b.src.Release)
}
