package main

import "C"

import "unsafe"

// frameArgs views a Go slice through the pointer and length ProcessFrame
// expects. The slice must stay reachable for the duration of the call.
func frameArgs(b []byte) (*C.uchar, C.int) {
	if len(b) == 0 {
		return nil, 0
	}
	return (*C.uchar)(unsafe.Pointer(unsafe.SliceData(b))), C.int(len(b))
}

func newCLength() *C.int {
	return new(C.int)
}

func cLength(n *C.int) int {
	return int(*n)
}

// frameBytes views n bytes at frame without copying.
func frameBytes(frame *C.uchar, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(frame)), n)
}
