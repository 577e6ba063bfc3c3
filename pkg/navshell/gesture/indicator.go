package gesture

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/back_chevron.svg
var backChevronSVG []byte

// indicatorSteps is how finely scale and opacity are quantised for caching.
const indicatorSteps = 20

// Indicator rasterises the back indicator shown under the finger while a
// swipe is tracked. Sprites are kept per quantised (scale, opacity) cell.
// The grid is finite and a drag walks a single line through it, so nothing
// is ever evicted.
type Indicator struct {
	mu       sync.Mutex
	icon     []byte
	baseSize int
	sprites  [indicatorSteps + 1][indicatorSteps + 1]*image.RGBA
	rendered int
}

// NewIndicator creates an indicator whose full-scale sprite is baseSize
// pixels square, using the built-in chevron.
func NewIndicator(baseSize int) *Indicator {
	return NewIndicatorFromSVG(backChevronSVG, baseSize)
}

// NewIndicatorFromSVG creates an indicator from custom SVG markup.
func NewIndicatorFromSVG(svg []byte, baseSize int) *Indicator {
	if baseSize < 1 {
		baseSize = 48
	}
	return &Indicator{
		icon:     svg,
		baseSize: baseSize,
	}
}

// Render returns the sprite for the given signals. A zero-opacity signal
// returns nil: nothing needs drawing.
func (ind *Indicator) Render(sig Signals) (*image.RGBA, error) {
	scaleStep := quantise(sig.IndicatorScale)
	opacityStep := quantise(sig.IndicatorOpacity)
	if opacityStep == 0 {
		return nil, nil
	}

	ind.mu.Lock()
	defer ind.mu.Unlock()

	cell := &ind.sprites[scaleStep][opacityStep]
	if *cell != nil {
		return *cell, nil
	}

	size := int(math.Round(float64(ind.baseSize) * float64(scaleStep) / indicatorSteps))
	if size < 1 {
		size = 1
	}

	sprite, err := ind.rasterise(size, float64(opacityStep)/indicatorSteps)
	if err != nil {
		return nil, err
	}
	*cell = sprite
	ind.rendered++
	return sprite, nil
}

// Rendered returns how many distinct sprites have been rasterised.
func (ind *Indicator) Rendered() int {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.rendered
}

func (ind *Indicator) rasterise(size int, opacity float64) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(ind.icon))
	if err != nil {
		return nil, fmt.Errorf("gesture: parse indicator svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, opacity)
	return img, nil
}

func quantise(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * indicatorSteps))
}
