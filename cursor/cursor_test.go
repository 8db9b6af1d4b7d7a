package cursor

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testImage struct {
	size, w, h, xhot, yhot int
	delay                  uint32
	argb                   uint32
}

func encode(t *testing.T, comment string, imgs ...testImage) []byte {
	t.Helper()

	type chunk struct {
		typ, subtype uint32
		data         []byte
	}
	var chunks []chunk

	le := binary.LittleEndian
	if comment != "" {
		var buf bytes.Buffer
		for _, v := range []uint32{20, chunkComment, uint32(CommentSubtypeLicense), 1, uint32(len(comment))} {
			binary.Write(&buf, le, v)
		}
		buf.WriteString(comment)
		chunks = append(chunks, chunk{chunkComment, uint32(CommentSubtypeLicense), buf.Bytes()})
	}
	for _, img := range imgs {
		var buf bytes.Buffer
		for _, v := range []uint32{36, chunkImage, uint32(img.size), 1, uint32(img.w), uint32(img.h), uint32(img.xhot), uint32(img.yhot), img.delay} {
			binary.Write(&buf, le, v)
		}
		for range img.w * img.h {
			binary.Write(&buf, le, img.argb)
		}
		chunks = append(chunks, chunk{chunkImage, uint32(img.size), buf.Bytes()})
	}

	var out bytes.Buffer
	for _, v := range []uint32{fileMagic, 16, 0x10000, uint32(len(chunks))} {
		binary.Write(&out, le, v)
	}
	pos := 16 + 12*len(chunks)
	for _, c := range chunks {
		for _, v := range []uint32{c.typ, c.subtype, uint32(pos)} {
			binary.Write(&out, le, v)
		}
		pos += len(c.data)
	}
	for _, c := range chunks {
		out.Write(c.data)
	}
	return out.Bytes()
}

func TestDecode(t *testing.T) {
	data := encode(t, "MIT",
		testImage{size: 24, w: 2, h: 2, xhot: 1, yhot: 1, argb: 0xff0000ff},
		testImage{size: 32, w: 3, h: 3, xhot: 2, yhot: 0, delay: 50, argb: 0x80800000},
		testImage{size: 32, w: 3, h: 3, delay: 70, argb: 0xff00ff00},
	)

	cur, err := Decode(bytes.NewReader(data), 30)
	require.NoError(t, err)

	require.Len(t, cur.Comments, 1)
	assert.Equal(t, "MIT", cur.Comments[0].Comment)
	assert.Equal(t, CommentSubtypeLicense, cur.Comments[0].Subtype)

	require.Len(t, cur.Frames, 2, "nearest size is 32")
	first := cur.Frames[0]
	assert.Equal(t, 32, first.NominalSize)
	assert.Equal(t, image.Pt(2, 0), image.Pt(first.XHot, first.YHot))
	assert.Equal(t, 50*time.Millisecond, first.Delay)
	assert.Equal(t, color.RGBA{R: 0x80, A: 0x80}, first.Image.RGBAAt(1, 1))

	cur, err = Decode(bytes.NewReader(data), 16)
	require.NoError(t, err)
	require.Len(t, cur.Frames, 1)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, cur.Frames[0].Image.RGBAAt(0, 0))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a cursor file")), 24)
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Decode(bytes.NewReader(encode(t, "only a comment")), 24)
	assert.ErrorIs(t, err, ErrNoImages)

	data := encode(t, "", testImage{size: 24, w: 4, h: 4})
	_, err = Decode(bytes.NewReader(data[:len(data)-8]), 24)
	assert.Error(t, err)
}

func TestFrame(t *testing.T) {
	a := &Image{Delay: 50 * time.Millisecond}
	b := &Image{Delay: 70 * time.Millisecond}
	cur := Cursor{Frames: []*Image{a, b}}

	assert.Same(t, a, cur.Frame(0))
	assert.Same(t, a, cur.Frame(49*time.Millisecond))
	assert.Same(t, b, cur.Frame(50*time.Millisecond))
	assert.Same(t, a, cur.Frame(125*time.Millisecond))

	still := Cursor{Frames: []*Image{{}}}
	assert.Same(t, still.Frames[0], still.Frame(time.Hour))
}

func TestDraw(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	img := &Image{XHot: 2, YHot: 1, Image: src}

	same := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.Equal(t, image.Pt(2, 1), img.Draw(same))
	assert.Equal(t, src.Pix, same.Pix)

	double := image.NewRGBA(image.Rect(0, 0, 8, 8))
	assert.Equal(t, image.Pt(4, 2), img.Draw(double))
	assert.GreaterOrEqual(t, double.RGBAAt(7, 7).A, uint8(0xf0))
}

func TestTheme(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XCURSOR_PATH", root)

	write := func(path string, data []byte) {
		path = filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	write("base/cursors/left_ptr", encode(t, "", testImage{size: 24, w: 1, h: 1}))
	write("base/cursors/xterm", encode(t, "", testImage{size: 24, w: 2, h: 2}))
	write("custom/cursors/xterm", encode(t, "", testImage{size: 24, w: 3, h: 3}))
	write("custom/cursors/README", []byte("not a cursor"))
	write("custom/index.theme", []byte("[Icon Theme]\nName=Custom\nInherits=base,custom\n"))

	theme, err := LoadTheme("custom", 24)
	require.NoError(t, err)

	xterm, err := theme.Cursor("xterm")
	require.NoError(t, err)
	assert.Equal(t, 3, xterm.Frames[0].Image.Bounds().Dx(), "own cursor wins")

	ptr, err := theme.Cursor("left_ptr")
	require.NoError(t, err)
	assert.Equal(t, 1, ptr.Frames[0].Image.Bounds().Dx(), "inherited")

	again, err := theme.Cursor("left_ptr")
	require.NoError(t, err)
	assert.Same(t, ptr, again)

	_, err = theme.Cursor("README")
	assert.Error(t, err)

	_, err = LoadTheme("missing", 24)
	assert.Error(t, err)
}
