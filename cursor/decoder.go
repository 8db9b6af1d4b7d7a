package cursor

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"slices"
	"time"
)

// ErrBadMagic indicates an unrecognized magic number when attempting
// to load a cursor.
var ErrBadMagic = errors.New("bad magic")

// ErrNoImages is returned for cursor files that contain no images.
var ErrNoImages = errors.New("no images")

const (
	fileMagic = 0x72756358 // ASCII "Xcur"

	chunkComment = 0xfffe0001
	chunkImage   = 0xfffd0002

	maxImageSize = 0x7fff
)

type decoder struct {
	r    io.Reader
	br   *bufio.Reader
	n    int
	err  error
	size int
}

// DecodeFile decodes the Xcursor file at path. See Decode.
func DecodeFile(path string, size int) (*Cursor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	return Decode(file, size)
}

// Decode decodes an Xcursor file, keeping only the images whose
// nominal size is closest to size. If there are several, they are
// the frames of an animation.
func Decode(r io.Reader, size int) (*Cursor, error) {
	d := decoder{
		r:    r,
		br:   bufio.NewReader(r),
		size: size,
	}
	return d.Decode()
}

func (d *decoder) Decode() (c *Cursor, err error) {
	if d.err != nil {
		return nil, d.err
	}

	defer d.catch(&err)

	tocs := d.header()
	slices.SortStableFunc(tocs, func(t1, t2 fileToc) int {
		return cmp.Compare(t1.Position, t2.Position)
	})

	nominal, ok := d.nearestSize(tocs)
	if !ok {
		d.throw(ErrNoImages)
	}

	var cur Cursor
	for _, toc := range tocs {
		switch {
		case toc.Type == chunkComment:
			d.SeekTo(int(toc.Position))
			cur.Comments = append(cur.Comments, d.comment())

		case toc.Type == chunkImage && int(toc.Subtype) == nominal:
			d.SeekTo(int(toc.Position))
			cur.Frames = append(cur.Frames, d.image())
		}
	}

	return &cur, nil
}

func (d *decoder) nearestSize(tocs []fileToc) (int, bool) {
	best, found := 0, false
	for _, toc := range tocs {
		if toc.Type != chunkImage {
			continue
		}
		size := int(toc.Subtype)
		if !found || abs(size-d.size) < abs(best-d.size) {
			best, found = size, true
		}
	}
	return best, found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (d *decoder) header() []fileToc {
	magic := d.uint32()
	if magic != fileMagic {
		d.throw(ErrBadMagic)
	}
	hsize := d.uint32()
	d.uint32() // Version.
	ntoc := int(d.uint32())
	d.SeekTo(int(hsize))

	tocs := make([]fileToc, 0, ntoc)
	for i := 0; i < ntoc; i++ {
		tocs = append(tocs, fileToc{
			Type:     d.uint32(),
			Subtype:  d.uint32(),
			Position: d.uint32(),
		})
	}

	return tocs
}

// chunkHeader reads the fields common to every chunk. The returned
// end is the offset of the end of the header, which also includes
// the chunk type's own fields.
func (d *decoder) chunkHeader(typ uint32) (end int, subtype, version uint32) {
	start := d.n
	hsize := d.uint32()
	if t := d.uint32(); t != typ {
		d.throw(fmt.Errorf("chunk type %#x does not match table of contents %#x", t, typ))
	}
	subtype = d.uint32()
	version = d.uint32()
	return start + int(hsize), subtype, version
}

func (d *decoder) comment() *Comment {
	end, subtype, version := d.chunkHeader(chunkComment)
	length := d.uint32()
	d.SeekTo(end)

	buf := make([]byte, length)
	_, err := io.ReadFull(d, buf)
	d.throw(err)

	return &Comment{
		Subtype: CommentSubtype(subtype),
		Version: version,
		Comment: string(buf),
	}
}

func (d *decoder) image() *Image {
	end, nominal, version := d.chunkHeader(chunkImage)
	width, height := d.uint32(), d.uint32()
	xhot, yhot := d.uint32(), d.uint32()
	delay := d.uint32()
	d.SeekTo(end)

	if width > maxImageSize || height > maxImageSize {
		d.throw(fmt.Errorf("image too large: %vx%v", width, height))
	}
	if xhot > width || yhot > height {
		d.throw(fmt.Errorf("hotspot (%v, %v) outside of image", xhot, yhot))
	}

	// Pixels are stored as premultiplied ARGB in little-endian 32-bit
	// words.
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	raw := make([]byte, 4*width*height)
	_, err := io.ReadFull(d, raw)
	d.throw(err)
	for i := 0; i < len(raw); i += 4 {
		argb := binary.LittleEndian.Uint32(raw[i:])
		img.Pix[i+0] = uint8(argb >> 16)
		img.Pix[i+1] = uint8(argb >> 8)
		img.Pix[i+2] = uint8(argb)
		img.Pix[i+3] = uint8(argb >> 24)
	}

	return &Image{
		Version:     int(version),
		NominalSize: int(nominal),
		XHot:        int(xhot),
		YHot:        int(yhot),
		Delay:       time.Duration(delay) * time.Millisecond,
		Image:       img,
	}
}

func (d *decoder) uint32() (v uint32) {
	d.throw(binary.Read(d, binary.LittleEndian, &v))
	return v
}

func (d *decoder) Read(buf []byte) (int, error) {
	n, err := d.br.Read(buf)
	d.throw(err)
	d.n += n
	return n, err
}

func (d *decoder) Discard(n int) (int, error) {
	disc, err := d.br.Discard(n)
	d.throw(err)
	d.n += disc
	return disc, err
}

func (d *decoder) SeekTo(n int) error {
	diff := n - d.n
	if diff < 0 {
		d.throw(fmt.Errorf("chunk at %v overlaps previous data ending at %v", n, d.n))
	}
	if diff == 0 {
		return nil
	}

	s, ok := d.r.(io.Seeker)
	if !ok || (diff <= d.br.Buffered()) {
		_, err := d.Discard(diff)
		d.throw(err)
		return nil
	}

	_, err := s.Seek(int64(n), io.SeekStart)
	d.throw(err)
	d.br.Reset(d.r)
	d.n = n
	return nil
}

type fileToc struct {
	Type     uint32
	Subtype  uint32
	Position uint32
}

type decoderError struct {
	err error
}

func (d *decoder) throw(err error) {
	if err != nil {
		panic(decoderError{err: err})
	}
}

func (d *decoder) catch(err *error) {
	switch r := recover().(type) {
	case decoderError:
		*err = r.err
		d.err = r.err
	case nil:
		*err = d.err
	default:
		panic(r)
	}
}
