package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesSource(t *testing.T) {
	_, err := Bytes(nil).Acquire()
	assert.Error(t, err)

	data, err := Bytes([]byte{}).Acquire()
	assert.NoError(t, err)
	assert.NotNil(t, data)
}

func TestBorrowReleasesOnce(t *testing.T) {
	src := &countingSource{}
	b := &borrow{src: src}

	b.release()
	b.release()

	assert.Equal(t, 1, src.releases)
}
