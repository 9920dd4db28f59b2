package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-inpaint/controller"
	"github.com/nvr-ai/go-inpaint/diffusion"
	"github.com/nvr-ai/go-inpaint/images"
)

func main() {
	// set to use a video capture device 0
	deviceID := 0

	// open webcam
	webcam, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer webcam.Close()

	// open display window
	window := gocv.NewWindow("Live Eraser")
	defer window.Close()

	// prepare image matrices
	img := gocv.NewMat()
	defer img.Close()
	rgba := gocv.NewMat()
	defer rgba.Close()

	// color for the rect around the erased region
	green := color.RGBA{0, 255, 0, 0}

	filler, err := diffusion.NewFiller(diffusion.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer filler.Close()

	analyzer := controller.NewStandardHoleAnalyzer()
	ctx := context.Background()

	// FPS tracking variables
	fps := 0.0
	frameCount := 0
	lastTime := time.Now()

	fmt.Printf("start reading camera device: %v\n", deviceID)
	for {
		if ok := webcam.Read(&img); !ok {
			fmt.Printf("cannot read device %v\n", deviceID)
			return
		}
		if img.Empty() {
			continue
		}

		// Update FPS calculation
		frameCount++
		currentTime := time.Now()
		elapsed := currentTime.Sub(lastTime).Seconds()

		// Calculate FPS every second
		if elapsed >= 1.0 {
			fps = float64(frameCount) / elapsed
			frameCount = 0
			lastTime = currentTime
		}

		gocv.CvtColor(img, &rgba, gocv.ColorBGRToRGBA)
		frame := images.New(img.Cols(), img.Rows())
		copy(frame.Pix, rgba.ToBytes())

		// The mask is consumed by the fill, so rebuild it every frame.
		hole := centeredHole(frame.Width, frame.Height)
		mask := images.New(frame.Width, frame.Height)
		images.SetMaskRect(mask, hole)

		metrics, err := analyzer.AnalyzeHoles(mask)
		if err != nil {
			fmt.Println(err)
			return
		}

		if err := filler.Fill(ctx, frame, mask); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("erased %d pixels in %d regions | FPS: %.2f\n", metrics.MaskedPixels, metrics.TotalHoles, fps)

		filled, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC4, frame.Pix)
		if err != nil {
			fmt.Println(err)
			return
		}
		gocv.CvtColor(filled, &img, gocv.ColorRGBAToBGR)
		filled.Close()

		// draw a rectangle around the erased region
		gocv.Rectangle(&img, hole, green, 1)

		// show the image in the window, and wait 1 millisecond
		window.IMShow(img)
		window.WaitKey(1)
	}
}

// centeredHole is the demo's erase target: a box one fifth of the short
// side, centered in the frame.
func centeredHole(w, h int) image.Rectangle {
	side := min(w, h) / 5
	if side < 1 {
		side = 1
	}
	x0 := (w - side) / 2
	y0 := (h - side) / 2
	return image.Rect(x0, y0, x0+side, y0+side)
}
