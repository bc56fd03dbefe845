package filters

import (
	"fmt"

	"gocv.io/x/gocv"
	"realtime-edge/internal/opencv/memory"
	"realtime-edge/internal/opencv/safe"
)

const (
	CannyLowThreshold  = 50
	CannyHighThreshold = 150
)

// CannyDetector produces a binary 0/255 edge map with hysteresis linking.
type CannyDetector struct{}

func NewCannyDetector() *CannyDetector {
	return &CannyDetector{}
}

func (c *CannyDetector) Name() string {
	return "canny"
}

func (c *CannyDetector) Apply(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error) {
	if err := safe.ValidateChannels(input, 1, c.Name()); err != nil {
		return nil, err
	}

	dst, err := alloc.NewMat(input.Rows(), input.Cols(), gocv.MatTypeCV8UC1, "edges")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	if err := gocv.Canny(srcMat, &dstMat, CannyLowThreshold, CannyHighThreshold); err != nil {
		return nil, fmt.Errorf("canny: %w", err)
	}

	return dst, nil
}
