package filters

import (
	"fmt"

	"realtime-edge/internal/opencv/memory"
	"realtime-edge/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// RGBAToBGR reorders channels and drops alpha.
type RGBAToBGR struct{}

func NewRGBAToBGR() *RGBAToBGR {
	return &RGBAToBGR{}
}

func (c *RGBAToBGR) Name() string {
	return "rgba_to_bgr"
}

func (c *RGBAToBGR) Apply(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error) {
	if err := safe.ValidateChannels(input, 4, c.Name()); err != nil {
		return nil, err
	}

	dst, err := alloc.NewMat(input.Rows(), input.Cols(), gocv.MatTypeCV8UC3, "bgr")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	if err := gocv.CvtColor(srcMat, &dstMat, gocv.ColorRGBAToBGR); err != nil {
		return nil, fmt.Errorf("cvtColor RGBA to BGR: %w", err)
	}

	return dst, nil
}

// GrayToRGBA broadcasts a single channel into R, G, B and A.
// Alpha follows the intensity, so non-edge pixels come out transparent.
type GrayToRGBA struct {
	merge func(mv []gocv.Mat, dst *gocv.Mat) error
}

func NewGrayToRGBA() *GrayToRGBA {
	return &GrayToRGBA{merge: gocv.Merge}
}

func (c *GrayToRGBA) Name() string {
	return "gray_to_rgba"
}

func (c *GrayToRGBA) Apply(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error) {
	if err := safe.ValidateChannels(input, 1, c.Name()); err != nil {
		return nil, err
	}

	dst, err := alloc.NewMat(input.Rows(), input.Cols(), gocv.MatTypeCV8UC4, "rgba_out")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	if err := c.merge([]gocv.Mat{srcMat, srcMat, srcMat, srcMat}, &dstMat); err != nil {
		return nil, fmt.Errorf("merge gray to RGBA: %w", err)
	}

	if dst.Channels() != 4 || dst.Rows() != input.Rows() || dst.Cols() != input.Cols() {
		return nil, fmt.Errorf("merge produced %dx%d with %d channels", dst.Cols(), dst.Rows(), dst.Channels())
	}

	return dst, nil
}
