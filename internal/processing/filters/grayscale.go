package filters

import (
	"fmt"

	"realtime-edge/internal/opencv/memory"
	"realtime-edge/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GrayscaleConverter reduces BGR to luma (0.299 R + 0.587 G + 0.114 B).
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "bgr_to_gray"
}

func (g *GrayscaleConverter) Apply(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error) {
	if err := safe.ValidateChannels(input, 3, g.Name()); err != nil {
		return nil, err
	}

	dst, err := alloc.NewMat(input.Rows(), input.Cols(), gocv.MatTypeCV8UC1, "gray")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	if err := gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRToGray); err != nil {
		return nil, fmt.Errorf("cvtColor BGR to gray: %w", err)
	}

	return dst, nil
}
