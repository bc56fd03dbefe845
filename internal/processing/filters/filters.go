package filters

import (
	"realtime-edge/internal/processing/chain"
)

// EdgeSteps returns the frame pipeline in its only valid order.
func EdgeSteps() []chain.ProcessingStep {
	return []chain.ProcessingStep{
		NewRGBAToBGR(),
		NewGrayscaleConverter(),
		NewGaussianFilter(),
		NewCannyDetector(),
		NewGrayToRGBA(),
	}
}
