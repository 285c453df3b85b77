package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/desktop-relay/internal/model"
)

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate draws each element's bounding box and "[id]" label onto a copy
// of img. windowBounds is the captured area in screen pixels; element
// bounds are screen-absolute and get mapped into image pixels.
func Annotate(img image.Image, elements []model.Element, windowBounds [4]int) *image.RGBA {
	rgba := ToRGBA(img)
	ib := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if windowBounds[2] > 0 {
		scaleX = float64(ib.Dx()) / float64(windowBounds[2])
	}
	if windowBounds[3] > 0 {
		scaleY = float64(ib.Dy()) / float64(windowBounds[3])
	}
	for _, el := range elements {
		annotateTree(rgba, el, windowBounds[0], windowBounds[1], scaleX, scaleY)
	}
	return rgba
}

func annotateTree(img *image.RGBA, el model.Element, winX, winY int, scaleX, scaleY float64) {
	if b := el.Bounds; b[2] > 0 && b[3] > 0 && el.ID != "" {
		x := int(float64(b[0]-winX) * scaleX)
		y := int(float64(b[1]-winY) * scaleY)
		w := int(float64(b[2]) * scaleX)
		h := int(float64(b[3]) * scaleY)
		drawRectangle(img, x, y, x+w, y+h, boxColor)
		drawLabel(img, "["+el.ID+"]", x+w/2, y+h/2)
	}
	for _, child := range el.Children {
		annotateTree(img, child, winX, winY, scaleX, scaleY)
	}
}

// ToRGBA copies img into a new RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel centres text on (x, y) with a one pixel outline.
// basicfont.Face7x13 glyphs are 7px wide and 13px tall.
func drawLabel(img *image.RGBA, text string, x, y int) {
	ox := x - len(text)*7/2
	oy := y + 13/2
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, ox+dx, oy+dy, outlineColor)
		}
	}
	drawString(img, text, ox, oy, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
