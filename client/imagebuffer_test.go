package wl

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageBuffer(t *testing.T) {
	display, _ := connect(t)
	shm := BindShm(display, 1)

	buf, err := NewImageBuffer(shm, 4, 2)
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, int32(16), buf.Stride())

	img := buf.Image()
	assert.Equal(t, buf.Bounds(), img.Bounds())
	img.Set(1, 1, color.NRGBA{R: 0xFF, A: 0xFF})
	assert.Equal(t, []byte{0, 0, 0xFF, 0xFF}, []byte(buf.mmap[20:24]), "pixel not stored as ARGB8888")

	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, [4]uint32{0xFFFF, 0, 0, 0xFFFF}, [4]uint32{r, g, b, a})

	require.NoError(t, buf.Resize(8, 8))
	img = buf.Image()
	img.Set(7, 7, color.White)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, []byte(buf.mmap[buf.Len()-4:buf.Len()]))
}
