package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-relay/internal/model"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDownscale_HalvesDimensions(t *testing.T) {
	b64, err := EncodeJPEG(solid(200, 100, color.White), 90)
	require.NoError(t, err)

	out, err := Downscale(b64, 0.5, 80)
	require.NoError(t, err)

	img, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestDownscale_NoopFactors(t *testing.T) {
	for _, f := range []float64{1, 1.5, 0, -1} {
		out, err := Downscale("not even base64", f, 80)
		require.NoError(t, err)
		assert.Equal(t, "not even base64", out)
	}
}

func TestDownscale_InvalidInput(t *testing.T) {
	_, err := Downscale("%%%", 0.5, 80)
	assert.Error(t, err)
}

func TestScale_MinimumOnePixel(t *testing.T) {
	img := Scale(solid(3, 3, color.Black), 0.01)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
}

func TestAnnotate_DrawsBoxForElement(t *testing.T) {
	img := solid(100, 100, color.White)
	elements := []model.Element{{
		ID: "w", Bounds: [4]int{0, 0, 100, 100},
		Children: []model.Element{{ID: "e1", Bounds: [4]int{10, 10, 40, 20}}},
	}}

	out := Annotate(img, elements, [4]int{0, 0, 100, 100})

	r, g, b, _ := out.At(10, 15).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	// The input is left untouched.
	r, g, _, _ = img.At(10, 15).RGBA()
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), r)
}

func TestAnnotate_SkipsElementsWithoutBounds(t *testing.T) {
	img := solid(20, 20, color.White)
	out := Annotate(img, []model.Element{{ID: "x"}}, [4]int{0, 0, 20, 20})
	assert.Equal(t, img.Pix, out.Pix)
}
