package filters

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"realtime-edge/internal/opencv/memory"
	"realtime-edge/internal/opencv/safe"
)

const (
	BlurKernelSize = 5
	BlurSigma      = 1.5
)

type GaussianFilter struct{}

func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_blur"
}

func (g *GaussianFilter) Apply(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error) {
	if err := safe.ValidateChannels(input, 1, g.Name()); err != nil {
		return nil, err
	}

	dst, err := alloc.NewMat(input.Rows(), input.Cols(), input.Type(), "blurred")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()

	// sigmaY of zero means "same as sigmaX".
	ksize := image.Point{X: BlurKernelSize, Y: BlurKernelSize}
	if err := gocv.GaussianBlur(srcMat, &dstMat, ksize, BlurSigma, 0, gocv.BorderDefault); err != nil {
		return nil, fmt.Errorf("gaussian blur: %w", err)
	}

	return dst, nil
}
