// Package debug holds small export helpers used by conformance test
// harnesses to inspect emulator output outside of Go assertions.
package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/kaelstrom/pocketcore/core/video"
)

const (
	blackPixel     = 0x000000FF
	darkGrayPixel  = 0x4C4C4CFF
	lightGrayPixel = 0x989898FF
	whitePixel     = 0xFFFFFFFF
)

// SaveFrameGrayPNG writes the framebuffer's current contents to a grayscale
// PNG, used to eyeball golden-file mismatches from conformance test runs.
func SaveFrameGrayPNG(fb *video.FrameBuffer, path string) error {
	img := image.NewGray(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))

	pixels := fb.ToSlice()
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			pixel := pixels[y*video.FramebufferWidth+x]

			var gray uint8
			switch pixel {
			case blackPixel:
				gray = 0
			case darkGrayPixel:
				gray = 85
			case lightGrayPixel:
				gray = 170
			case whitePixel:
				gray = 255
			default:
				gray = 0
			}

			img.SetGray(x, y, color.Gray{Y: gray})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
