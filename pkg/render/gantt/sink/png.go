package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
)

var (
	colorBackground  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorTaskFill    = color.RGBA{0xcf, 0xe2, 0xf3, 0xff}
	colorTaskStroke  = color.RGBA{0x1c, 0x45, 0x87, 0xff}
	colorTransFill   = color.RGBA{0xfc, 0xe5, 0xcd, 0xff}
	colorTransStroke = color.RGBA{0xb4, 0x5f, 0x06, 0xff}
	colorSeparator   = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colorLabel       = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

const (
	separatorDash   = 4
	separatorGap    = 3
	maxCanvasPixels = 64 << 20
)

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      int
	labels     bool
	separators bool
}

// WithScale multiplies the canvas size by s (default 1). Values below 1
// are treated as 1.
func WithScale(s int) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGLabels toggles rect labels (default on).
func WithPNGLabels(on bool) PNGOption { return func(r *pngRenderer) { r.labels = on } }

// WithPNGSeparators toggles dashed lane separators (default on).
func WithPNGSeparators(on bool) PNGOption { return func(r *pngRenderer) { r.separators = on } }

// RenderPNG rasterizes the layout without external tools. Labels use the
// built-in 7x13 bitmap face and are drawn only where they fit.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, labels: true, separators: true}
	for _, opt := range opts {
		opt(&r)
	}
	r.scale = max(1, r.scale)

	// Size in float64 so huge canvases cannot wrap around int.
	fw := math.Ceil(l.CanvasWidth) * float64(r.scale)
	fh := math.Ceil(l.CanvasHeight) * float64(r.scale)
	if !(fw >= 1) || !(fh >= 1) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png canvas must be positive, got %gx%g", fw, fh)
	}
	if fw*fh > maxCanvasPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png canvas too large: %gx%g", fw, fh)
	}
	w, h := int(fw), int(fh)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	s := float64(r.scale)
	if r.separators {
		for _, y := range l.Separators {
			drawDashedHLine(img, int(math.Round(y*s)), colorSeparator)
		}
	}

	for _, rect := range l.Rects {
		fill, stroke := colorTaskFill, colorTaskStroke
		if rect.IsTransmission() {
			fill, stroke = colorTransFill, colorTransStroke
		}
		box := image.Rect(
			int(math.Round(rect.X*s)), int(math.Round(rect.Y*s)),
			int(math.Round(rect.Right()*s)), int(math.Round(rect.Bottom()*s)),
		).Intersect(img.Bounds())
		if box.Empty() {
			continue
		}
		draw.Draw(img, box, image.NewUniform(fill), image.Point{}, draw.Src)
		drawOutline(img, box, stroke)
	}

	if r.labels {
		for _, rect := range l.Rects {
			drawLabel(img, rect, s)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawOutline(img *image.RGBA, b image.Rectangle, c color.Color) {
	for x := b.Min.X; x < b.Max.X; x++ {
		img.Set(x, b.Min.Y, c)
		img.Set(x, b.Max.Y-1, c)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.Set(b.Min.X, y, c)
		img.Set(b.Max.X-1, y, c)
	}
}

func drawDashedHLine(img *image.RGBA, y int, c color.Color) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		if (x-b.Min.X)%(separatorDash+separatorGap) < separatorDash {
			img.Set(x, y, c)
		}
	}
}

// drawLabel centers rect's label when the bitmap face fits inside it.
func drawLabel(img *image.RGBA, rect layout.Rect, s float64) {
	if rect.Label == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, rect.Label).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	if float64(width+4) > rect.Width*s || float64(height+2) > rect.Height*s {
		return
	}

	cx := int(math.Round(rect.CenterX() * s))
	cy := int(math.Round(rect.CenterY() * s))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(cx - width/2),
			Y: fixed.I(cy + height/2 - m.Descent.Ceil()),
		},
	}
	d.DrawString(rect.Label)
}
