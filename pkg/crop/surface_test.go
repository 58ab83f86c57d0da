package crop

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointFramer always answers with a fixed focus.
type pointFramer struct {
	p  image.Point
	ok bool
}

func (f pointFramer) Focus(image.Image, image.Point) (image.Point, bool) {
	return f.p, f.ok
}

func defaultSurfaceOptions(ratio float64) SurfaceOptions {
	return SurfaceOptions{AspectRatio: ratio, ViewMode: 1, AutoCropArea: 1, Movable: true, Zoomable: true}
}

func TestNewSurface_InitialSelection(t *testing.T) {
	img := createTestImage(1000, 500)

	t.Run("LargestCentered", func(t *testing.T) {
		s, err := NewSurface(img, defaultSurfaceOptions(1), nil, imaging.Lanczos)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(250, 0, 750, 500), s.Selection())
	})

	t.Run("WideRatio", func(t *testing.T) {
		s, err := NewSurface(img, defaultSurfaceOptions(16.0/9.0), nil, imaging.Lanczos)
		require.NoError(t, err)
		sel := s.Selection()
		assert.Equal(t, 889, sel.Dx())
		assert.Equal(t, 500, sel.Dy())
		assert.True(t, sel.In(img.Bounds()))
	})

	t.Run("FramerFocusClamped", func(t *testing.T) {
		s, err := NewSurface(img, defaultSurfaceOptions(1), pointFramer{image.Pt(990, 10), true}, imaging.Lanczos)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(500, 0, 1000, 500), s.Selection())
	})

	t.Run("FramerMissFallsBackToCenter", func(t *testing.T) {
		s, err := NewSurface(img, defaultSurfaceOptions(1), pointFramer{}, imaging.Lanczos)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(250, 0, 750, 500), s.Selection())
	})

	t.Run("AutoCropArea", func(t *testing.T) {
		opts := defaultSurfaceOptions(1)
		opts.AutoCropArea = 0.25
		s, err := NewSurface(img, opts, nil, imaging.Lanczos)
		require.NoError(t, err)
		assert.Equal(t, 250, s.Selection().Dx())
		assert.Equal(t, 250, s.Selection().Dy())
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := NewSurface(img, defaultSurfaceOptions(0), nil, imaging.Lanczos)
		assert.Error(t, err)
		_, err = NewSurface(image.NewRGBA(image.Rect(0, 0, 0, 0)), defaultSurfaceOptions(1), nil, imaging.Lanczos)
		assert.Error(t, err)
	})
}

func TestSurface_MoveAndZoom(t *testing.T) {
	img := createTestImage(1000, 500)
	s, err := NewSurface(img, defaultSurfaceOptions(1), nil, imaging.Lanczos)
	require.NoError(t, err)

	s.Move(1000, 1000)
	assert.Equal(t, image.Rect(500, 0, 1000, 500), s.Selection(), "view mode 1 keeps the selection inside")

	s.Zoom(2)
	assert.Equal(t, image.Pt(250, 250), s.Selection().Size())
	assert.True(t, s.Selection().In(img.Bounds()))

	s.Zoom(0.1)
	assert.Equal(t, image.Pt(500, 500), s.Selection().Size(), "zooming out is capped by the image")

	opts := defaultSurfaceOptions(1)
	opts.Movable = false
	opts.Zoomable = false
	fixed, err := NewSurface(img, opts, nil, imaging.Lanczos)
	require.NoError(t, err)
	before := fixed.Selection()
	fixed.Move(10, 10)
	fixed.Zoom(2)
	assert.Equal(t, before, fixed.Selection())
}

func TestSurface_Bake(t *testing.T) {
	img := createTestImage(1000, 500)
	s, err := NewSurface(img, defaultSurfaceOptions(1), nil, imaging.Lanczos)
	require.NoError(t, err)

	out, err := s.Bake(400, 400)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 400), out.Bounds())

	// Output size is honoured even when it does not match the selection ratio.
	out, err = s.Bake(300, 100)
	require.NoError(t, err)
	assert.Equal(t, 300, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())

	_, err = s.Bake(0, 10)
	assert.Error(t, err)

	s.Destroy()
	_, err = s.Bake(400, 400)
	assert.ErrorIs(t, err, ErrSurfaceDestroyed)
}

func TestSurface_BakeOutsideImage(t *testing.T) {
	img := createTestImage(100, 100)
	opts := defaultSurfaceOptions(1)
	opts.ViewMode = 0
	s, err := NewSurface(img, opts, nil, imaging.NearestNeighbor)
	require.NoError(t, err)

	s.Move(50, 0)
	assert.Equal(t, image.Rect(50, 0, 150, 100), s.Selection())

	out, err := s.Bake(100, 100)
	require.NoError(t, err)
	_, _, _, a := out.At(90, 50).RGBA()
	assert.Zero(t, a, "area outside the image is transparent")
	r, _, _, _ := out.At(10, 50).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	opts.Background = true
	s, err = NewSurface(img, opts, nil, imaging.NearestNeighbor)
	require.NoError(t, err)
	s.Move(50, 0)
	out, err = s.Bake(100, 100)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBAModel.Convert(color.White), color.NRGBAModel.Convert(out.At(90, 50)))
}

func TestChainFramer(t *testing.T) {
	img := createTestImage(100, 100)
	chain := ChainFramer{nil, pointFramer{}, pointFramer{image.Pt(7, 7), true}, CenterFramer{}}
	p, ok := chain.Focus(img, image.Pt(10, 10))
	assert.True(t, ok)
	assert.Equal(t, image.Pt(7, 7), p)

	_, ok = ChainFramer{pointFramer{}}.Focus(img, image.Pt(10, 10))
	assert.False(t, ok)
}

func TestSmartFramer(t *testing.T) {
	img := createTestImage(320, 160)
	// A bright detail on the right half should pull the focus right.
	for y := 60; y < 100; y++ {
		for x := 250; x < 290; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	f := NewSmartFramer(imaging.Lanczos)
	p, ok := f.Focus(img, image.Pt(160, 160))
	require.True(t, ok)
	assert.True(t, p.In(img.Bounds()))

	_, ok = f.Focus(img, image.Pt(0, 10))
	assert.False(t, ok)
}

func TestNewFaceFramer_RejectsShortCascade(t *testing.T) {
	_, err := NewFaceFramer([]byte{1, 2, 3}, DefaultTuning().Face)
	assert.Error(t, err)

	_, err = LoadFaceFramer("does/not/exist", DefaultTuning().Face)
	assert.Error(t, err)
}

func TestResampleFilter(t *testing.T) {
	assert.Equal(t, imaging.Lanczos.Support, ResampleFilter("unknown").Support)
	assert.Equal(t, imaging.Linear.Support, ResampleFilter("Linear").Support)
	assert.Equal(t, imaging.NearestNeighbor.Support, ResampleFilter("nearest").Support)
}
