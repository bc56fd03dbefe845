// Command edgebridge builds the frame processor as a C shared library:
//
//	go build -buildmode=c-shared -o libedgebridge.so ./cmd/edgebridge
//
// Managed runtimes call ProcessFrame with a pinned RGBA buffer and release the
// returned frame with FreeFrame.
package main

/*
#include <stdlib.h>

static unsigned char* edge_alloc(size_t n) {
	return (unsigned char*)malloc(n);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"realtime-edge/internal/config"
	"realtime-edge/internal/frame"
	"realtime-edge/internal/logger"
	"realtime-edge/internal/opencv/memory"
)

var processor = newProcessor(config.Default())

func newProcessor(cfg config.Config) *frame.Processor {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level, _ = logger.ParseLevel("")
	}

	mgr := memory.NewManager(cfg.MemoryLimitBytes, memory.WithOutputAllocator(cAlloc, cFree))
	return frame.NewProcessor(
		frame.WithLogger(logger.New(os.Stderr, cfg.LogFormat, level)),
		frame.WithMemoryManager(mgr),
	)
}

// cAlloc returns C memory so the frame can cross the boundary without a copy.
func cAlloc(n int) ([]byte, error) {
	ptr := C.edge_alloc(C.size_t(n))
	if ptr == nil {
		return nil, errors.New("malloc returned NULL")
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n), nil
}

func cFree(buf []byte) {
	C.free(unsafe.Pointer(unsafe.SliceData(buf)))
}

// cSource reads the caller's buffer in place. The caller owns and pins it, so
// Release has nothing to hand back on the Go side.
type cSource struct {
	ptr    *C.uchar
	length C.int
}

func (s cSource) Acquire() ([]byte, error) {
	if s.ptr == nil {
		return nil, errors.New("input pointer is NULL")
	}
	if s.length < 0 {
		return nil, fmt.Errorf("negative input length %d", int(s.length))
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(s.ptr)), int(s.length)), nil
}

func (cSource) Release() {}

// ProcessFrame returns a width*height*4 RGBA edge frame allocated with malloc,
// or NULL on any failure. outLength receives the frame size, or 0.
//
//export ProcessFrame
func ProcessFrame(input *C.uchar, length C.int, width C.int, height C.int, outLength *C.int) *C.uchar {
	if outLength != nil {
		*outLength = 0
	}

	out := processor.Process(cSource{ptr: input, length: length}, int(width), int(height))
	if out == nil {
		return nil
	}

	if outLength != nil {
		*outLength = C.int(len(out))
	}
	return (*C.uchar)(unsafe.Pointer(unsafe.SliceData(out)))
}

// FreeFrame releases a frame returned by ProcessFrame. NULL is ignored.
//
//export FreeFrame
func FreeFrame(frame *C.uchar) {
	if frame != nil {
		C.free(unsafe.Pointer(frame))
	}
}

func main() {}
