// Package imageio moves frames between image files and raw RGBA buffers.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Frame is a dense, straight-alpha RGBA buffer.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// FromImage copies any decoded image into a dense RGBA frame.
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok {
		return copyNRGBA(src)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return Frame{Pix: dst.Pix, Width: b.Dx(), Height: b.Dy()}
}

// copyNRGBA keeps straight-alpha pixels exact; draw would round-trip them
// through premultiplied color.
func copyNRGBA(src *image.NRGBA) Frame {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
	}
	return Frame{Pix: pix, Width: w, Height: h}
}

// Image views the frame as an image without copying.
func (f Frame) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Fit scales the frame down so it is at most maxWidth wide, keeping the aspect
// ratio. Frames already narrow enough, or maxWidth <= 0, come back unchanged.
func Fit(f Frame, maxWidth int) Frame {
	if maxWidth <= 0 || f.Width <= maxWidth {
		return f
	}

	height := f.Height * maxWidth / f.Width
	if height < 1 {
		height = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), f.Image(), f.Image().Bounds(), draw.Src, nil)
	return Frame{Pix: dst.Pix, Width: maxWidth, Height: height}
}

// Decode reads any registered format and returns the frame and the format name.
func Decode(r io.Reader) (Frame, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Frame{}, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return FromImage(img), format, nil
}

func Load(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	frame, _, err := Decode(f)
	if err != nil {
		return Frame{}, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}
